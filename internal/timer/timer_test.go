package timer

import "testing"

func TestTickValue(t *testing.T) {
	cases := []struct{ cntfrq, want uint64 }{
		{cntfrq: 62_500_000, want: 625_000},
		{cntfrq: 24_000_000, want: 240_000},
		{cntfrq: 100, want: 1},
	}
	for _, c := range cases {
		if got := TickValue(c.cntfrq); got != c.want {
			t.Fatalf("TickValue(%d) = %d, want %d", c.cntfrq, got, c.want)
		}
	}
}
