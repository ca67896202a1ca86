package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSleep(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		warn     int
		wantRem  int
		wantMins int
	}{
		{
			name:     "default thirty minute interval",
			interval: 30,
			warn:     10,
			wantRem:  50,
			wantMins: 29,
		},
		{
			name:     "one minute interval",
			interval: 1,
			warn:     10,
			wantRem:  50,
			wantMins: 0,
		},
		{
			name:     "warning consumes exactly one minute",
			interval: 2,
			warn:     60,
			wantRem:  0,
			wantMins: 1,
		},
		{
			name:     "no warning",
			interval: 5,
			warn:     0,
			wantRem:  0,
			wantMins: 5,
		},
		{
			name:     "short warning",
			interval: 1,
			warn:     2,
			wantRem:  58,
			wantMins: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rem, mins := SplitSleep(tt.interval, tt.warn)
			assert.Equal(t, tt.wantRem, rem)
			assert.Equal(t, tt.wantMins, mins)
		})
	}
}

func TestSplitSleep_RoundTripIdentity(t *testing.T) {
	// remainder + minutes*60 + warning must reconstruct the interval exactly
	// for every warning shorter than the interval.
	for interval := 1; interval <= 10; interval++ {
		for warn := 0; warn < interval*60; warn++ {
			rem, mins := SplitSleep(interval, warn)
			assert.Equal(t, interval*60, rem+mins*60+warn,
				"interval=%d warn=%d", interval, warn)
			assert.GreaterOrEqual(t, rem, 0)
			assert.Less(t, rem, 60)
		}
	}
}
