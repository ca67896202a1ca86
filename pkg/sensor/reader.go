// Package sensor samples the soil-moisture channels and rescales raw ADC
// values into moisture percentages.
package sensor

import (
	"github.com/chewxy/math32"

	"github.com/itohio/gosoil/pkg/config"
	"github.com/itohio/gosoil/pkg/hal"
)

// NumChannels is the number of soil-moisture probes.
const NumChannels = 4

// ReadingSet holds one cycle's normalized readings, nominally 0-100 percent.
// Raw values outside a channel's calibrated span produce values outside that
// range; they are reported as-is rather than clamped.
type ReadingSet [NumChannels]int

// CalibrationPair holds one channel's raw calibration endpoints. Dry maps to
// 0%, Wet to 100%. Capacitive probes read lower when wet, so Dry > Wet.
type CalibrationPair struct {
	Dry uint16
	Wet uint16
}

// Reader samples all channels from an analog source and applies per-channel
// calibration. The calibration table is fixed for the Reader's lifetime.
type Reader struct {
	src   hal.AnalogSource
	calib [NumChannels]CalibrationPair
}

// NewReader creates a Reader over src with the given calibration table.
func NewReader(src hal.AnalogSource, calib [NumChannels]CalibrationPair) *Reader {
	return &Reader{src: src, calib: calib}
}

// CalibrationFromConfig converts the configured channel list into a
// calibration table, padding missing channels with the defaults.
func CalibrationFromConfig(channels []config.ChannelConfig) [NumChannels]CalibrationPair {
	var calib [NumChannels]CalibrationPair
	def := config.Default().Channels
	for i := 0; i < NumChannels; i++ {
		ch := def[i]
		if i < len(channels) {
			ch = channels[i]
		}
		calib[i] = CalibrationPair{Dry: ch.Dry, Wet: ch.Wet}
	}
	return calib
}

// Read samples every channel once and returns the normalized reading set.
func (r *Reader) Read() ReadingSet {
	var set ReadingSet
	for ch := 0; ch < NumChannels; ch++ {
		raw := r.src.ReadChannel(ch)
		set[ch] = Normalize(raw, r.calib[ch])
	}
	return set
}

// Normalize linearly rescales a raw reading so that c.Dry maps to 0 and
// c.Wet to 100, rounding to the nearest integer. Float32 math keeps the
// result identical on 32-bit MCU targets.
func Normalize(raw uint16, c CalibrationPair) int {
	span := float32(c.Wet) - float32(c.Dry)
	if span == 0 {
		return 0
	}
	pct := (float32(raw) - float32(c.Dry)) / span * 100
	return int(math32.Round(pct))
}
