package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/gosoil/pkg/config"
	"github.com/itohio/gosoil/pkg/hal"
)

func TestNormalize(t *testing.T) {
	calib := CalibrationPair{Dry: 877, Wet: 441}

	tests := []struct {
		name string
		raw  uint16
		want int
	}{
		{
			name: "dry endpoint maps to zero",
			raw:  877,
			want: 0,
		},
		{
			name: "wet endpoint maps to hundred",
			raw:  441,
			want: 100,
		},
		{
			name: "midpoint maps to fifty",
			raw:  659, // (877+441)/2
			want: 50,
		},
		{
			name: "wetter than calibration exceeds hundred",
			raw:  400,
			want: 109, // not clamped
		},
		{
			name: "drier than calibration goes negative",
			raw:  920,
			want: -10, // not clamped
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, calib)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Monotonic(t *testing.T) {
	calib := CalibrationPair{Dry: 877, Wet: 441}

	// Smaller raw value means wetter soil, so the normalized value must not
	// decrease as raw decreases across the calibrated span.
	prev := Normalize(calib.Dry, calib)
	for raw := calib.Dry - 1; raw >= calib.Wet; raw-- {
		cur := Normalize(raw, calib)
		assert.GreaterOrEqual(t, cur, prev, "raw %d", raw)
		prev = cur
	}
}

func TestNormalize_DegenerateCalibration(t *testing.T) {
	// Equal endpoints would divide by zero; the mapping falls back to 0.
	assert.Equal(t, 0, Normalize(500, CalibrationPair{Dry: 500, Wet: 500}))
}

func TestReader_Read(t *testing.T) {
	src := &hal.StubAnalog{Values: map[int]uint16{
		0: 877, // bone dry
		1: 455, // fully wet
		2: 659,
		3: 661,
	}}
	calib := [NumChannels]CalibrationPair{
		{Dry: 877, Wet: 441},
		{Dry: 869, Wet: 455},
		{Dry: 875, Wet: 448},
		{Dry: 872, Wet: 450},
	}

	set := NewReader(src, calib).Read()

	assert.Equal(t, 0, set[0])
	assert.Equal(t, 100, set[1])
	assert.Equal(t, 51, set[2]) // (659-875)/(448-875)*100 = 50.6
	assert.Equal(t, 50, set[3]) // (661-872)/(450-872)*100 = 50.0
	assert.Equal(t, NumChannels, src.Reads)
}

func TestCalibrationFromConfig(t *testing.T) {
	channels := []config.ChannelConfig{
		{Dry: 900, Wet: 400},
		{Dry: 910, Wet: 410},
	}

	calib := CalibrationFromConfig(channels)

	assert.Equal(t, CalibrationPair{Dry: 900, Wet: 400}, calib[0])
	assert.Equal(t, CalibrationPair{Dry: 910, Wet: 410}, calib[1])
	// Missing channels fall back to the defaults.
	def := config.Default().Channels
	assert.Equal(t, CalibrationPair{Dry: def[2].Dry, Wet: def[2].Wet}, calib[2])
	assert.Equal(t, CalibrationPair{Dry: def[3].Dry, Wet: def[3].Wet}, calib[3])
}
