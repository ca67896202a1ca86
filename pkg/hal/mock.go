package hal

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// MemStorage is an in-memory Storage that appends into a per-path buffer.
// Open failures can be injected for testing the fatal and per-cycle error
// paths.
type MemStorage struct {
	files map[string]*bytes.Buffer

	// FailAll makes every open fail. FailNext makes the next n opens fail,
	// decrementing on each attempt.
	FailAll  bool
	FailNext int

	Opens int
}

// NewMemStorage creates an empty in-memory storage.
func NewMemStorage() *MemStorage {
	return &MemStorage{files: make(map[string]*bytes.Buffer)}
}

// OpenAppend returns an append handle for path, or an injected failure.
func (s *MemStorage) OpenAppend(path string) (File, error) {
	s.Opens++
	if s.FailAll {
		return nil, fmt.Errorf("open %s: storage not present", path)
	}
	if s.FailNext > 0 {
		s.FailNext--
		return nil, fmt.Errorf("open %s: storage not present", path)
	}
	buf, ok := s.files[path]
	if !ok {
		buf = &bytes.Buffer{}
		s.files[path] = buf
	}
	return &memFile{buf: buf}, nil
}

// Contents returns everything appended to path so far.
func (s *MemStorage) Contents(path string) string {
	buf, ok := s.files[path]
	if !ok {
		return ""
	}
	return buf.String()
}

type memFile struct {
	buf    *bytes.Buffer
	closed bool
}

func (f *memFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, fmt.Errorf("write on closed file")
	}
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	if f.closed {
		return fmt.Errorf("close on closed file")
	}
	f.closed = true
	return nil
}

// MemDisplay is an in-memory 16x2 character display.
type MemDisplay struct {
	cells    [2][16]byte
	col, row int

	Clears int
}

// NewMemDisplay creates a blank display.
func NewMemDisplay() *MemDisplay {
	d := &MemDisplay{}
	d.Clear()
	return d
}

func (d *MemDisplay) Clear() {
	for r := range d.cells {
		for c := range d.cells[r] {
			d.cells[r][c] = ' '
		}
	}
	d.col, d.row = 0, 0
	d.Clears++
}

func (d *MemDisplay) SetCursor(col, row int) {
	d.col, d.row = col, row
}

func (d *MemDisplay) Write(text string) {
	for i := 0; i < len(text); i++ {
		if d.row < 0 || d.row >= 2 || d.col < 0 || d.col >= 16 {
			return
		}
		d.cells[d.row][d.col] = text[i]
		d.col++
	}
}

// Row returns the contents of one display row, trailing spaces trimmed.
func (d *MemDisplay) Row(row int) string {
	return strings.TrimRight(string(d.cells[row][:]), " ")
}

// StubAnalog serves fixed raw values per channel and counts reads.
type StubAnalog struct {
	Values map[int]uint16
	Reads  int
}

func (s *StubAnalog) ReadChannel(channel int) uint16 {
	s.Reads++
	return s.Values[channel]
}

// RecIndicator records every state transition.
type RecIndicator struct {
	States []bool
}

func (r *RecIndicator) Set(on bool) {
	r.States = append(r.States, on)
}

// On reports the most recently set state.
func (r *RecIndicator) On() bool {
	if len(r.States) == 0 {
		return false
	}
	return r.States[len(r.States)-1]
}

// FakeSleeper records requested durations without sleeping. An optional
// AfterSleep hook runs after each recorded sleep, which tests use to cancel
// a context once enough of the cycle has executed.
type FakeSleeper struct {
	Slept      []time.Duration
	AfterSleep func(n int)
}

func (f *FakeSleeper) Sleep(d time.Duration) {
	f.Slept = append(f.Slept, d)
	if f.AfterSleep != nil {
		f.AfterSleep(len(f.Slept))
	}
}

// Total returns the sum of all recorded sleep durations.
func (f *FakeSleeper) Total() time.Duration {
	var total time.Duration
	for _, d := range f.Slept {
		total += d
	}
	return total
}

var (
	_ Storage      = (*MemStorage)(nil)
	_ Display      = (*MemDisplay)(nil)
	_ AnalogSource = (*StubAnalog)(nil)
	_ Indicator    = (*RecIndicator)(nil)
	_ Sleeper      = (*FakeSleeper)(nil)
)
