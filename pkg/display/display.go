// Package display renders logger status on a 16x2 character display.
package display

import (
	"fmt"

	"github.com/itohio/gosoil/pkg/hal"
	"github.com/itohio/gosoil/pkg/sensor"
)

// Display geometry.
const (
	Cols = 16
	Rows = 2
)

// Updater draws on the character display. It never reads back; the display
// is write-only and assumed infallible.
type Updater struct {
	d hal.Display
}

// New creates an Updater over d.
func New(d hal.Display) *Updater {
	return &Updater{d: d}
}

// ShowReadings clears the display and renders the four channels as a 2x2
// grid of "S<n>:<v>%" labels: S1 and S2 on the top row, S3 and S4 below.
func (u *Updater) ShowReadings(set sensor.ReadingSet) {
	u.d.Clear()
	for ch := 0; ch < sensor.NumChannels; ch++ {
		col := (ch % 2) * (Cols / 2)
		row := ch / 2
		u.d.SetCursor(col, row)
		u.d.Write(fmt.Sprintf("S%d:%d%%", ch+1, set[ch]))
	}
}

// ShowMessage clears the display and writes one line per row.
func (u *Updater) ShowMessage(top, bottom string) {
	u.d.Clear()
	u.d.SetCursor(0, 0)
	u.d.Write(top)
	if bottom != "" {
		u.d.SetCursor(0, 1)
		u.d.Write(bottom)
	}
}
