// Package hal defines the narrow hardware collaborator interfaces the logger
// core is written against. The firmware binds them to real peripherals; tests
// and the host-side tools use the in-memory implementations from mock.go.
package hal

import (
	"io"
	"time"
)

// File is an open, append-positioned handle on persistent storage.
type File interface {
	io.Writer
	Close() error
}

// Storage produces append handles on persistent storage. A failed open is the
// only storage error the core recognizes; writes and closes on a valid handle
// are expected to succeed.
type Storage interface {
	OpenAppend(path string) (File, error)
}

// Display is a 16x2 addressable character display. Writes never fail.
type Display interface {
	Clear()
	SetCursor(col, row int)
	Write(text string)
}

// AnalogSource reads raw values from fixed analog channels. Reads never fail.
type AnalogSource interface {
	ReadChannel(channel int) uint16
}

// Indicator is a single binary visual output (typically the status LED).
type Indicator interface {
	Set(on bool)
}

// Sleeper blocks the caller for a duration. The core issues every delay
// through this interface so tests can run cycles without wall time.
type Sleeper interface {
	Sleep(d time.Duration)
}

// TimeSleeper is the real Sleeper backed by time.Sleep.
type TimeSleeper struct{}

func (TimeSleeper) Sleep(d time.Duration) { time.Sleep(d) }

var _ Sleeper = TimeSleeper{}
