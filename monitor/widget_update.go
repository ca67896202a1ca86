package main

import (
	"fmt"

	"fyne.io/fyne/v2"

	"github.com/itohio/gosoil/pkg/link"
)

// UpdateWidgetOnMainThread schedules a widget update function to run on the
// main Fyne thread. This is required because Fyne widgets cannot be updated
// directly from goroutines. The callback should copy data quickly and return
// as fast as possible.
func UpdateWidgetOnMainThread(callback func()) {
	if callback == nil {
		return
	}
	fyne.Do(callback)
}

// applyRecord pushes one record into the channel bars and the status line.
// Called from the record consumer goroutine; the actual widget mutation is
// marshalled onto the main thread.
func applyRecord(state *appState, rec link.Record) {
	UpdateWidgetOnMainThread(func() {
		for ch, bar := range state.bars {
			// The device reports uncalibrated extremes as-is; pin the bar
			// inside its range but show the raw number in the status line.
			v := float64(rec.Values[ch])
			if v < 0 {
				v = 0
			}
			if v > 100 {
				v = 100
			}
			bar.SetValue(v)
		}
		state.status.SetText(fmt.Sprintf("Record %d: S1=%d%% S2=%d%% S3=%d%% S4=%d%%",
			rec.Seq, rec.Values[0], rec.Values[1], rec.Values[2], rec.Values[3]))
	})
}
