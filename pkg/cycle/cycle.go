// Package cycle drives the logger's read-display-log loop: bring up the
// card once, then warn, sample, display, persist, and sleep forever.
package cycle

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/itohio/gosoil/pkg/display"
	"github.com/itohio/gosoil/pkg/hal"
	"github.com/itohio/gosoil/pkg/logbook"
	"github.com/itohio/gosoil/pkg/sensor"
)

// Blink timings. The warning blink runs at two pulses per second before
// every card write; the fault pulse is the slow pattern of the dead-card
// halt state.
const (
	warnPulse = 250 * time.Millisecond
	faultOn   = 1000 * time.Millisecond
	faultOff  = 500 * time.Millisecond
)

// Config carries the logger's build-time constants into the scheduler.
type Config struct {
	IntervalMinutes int
	WarnSeconds     int
	LogPath         string
	Calibration     [sensor.NumChannels]sensor.CalibrationPair

	// Debug, when non-nil, receives one diagnostic line per notable event.
	// It changes nothing about sampling or logging.
	Debug io.Writer

	// OnRecord, when non-nil, is called after each successfully persisted
	// record. The firmware uses it to mirror records to the debug UART for
	// the host monitor.
	OnRecord func(seq uint64, set sensor.ReadingSet)
}

// Deps are the hardware collaborators the scheduler drives.
type Deps struct {
	Storage   hal.Storage
	Display   hal.Display
	Source    hal.AnalogSource
	Indicator hal.Indicator
	Sleeper   hal.Sleeper
}

// Scheduler owns the cycle loop and the record sequence counter. The counter
// starts at zero, is bumped once per cycle attempt, and is never persisted;
// it restarts from zero on every power cycle.
type Scheduler struct {
	cfg    Config
	book   *logbook.Book
	reader *sensor.Reader
	disp   *display.Updater
	ind    hal.Indicator
	sleep  hal.Sleeper
	debug  *log.Logger
	seq    uint64
}

// New creates a Scheduler from the configuration and collaborators.
func New(cfg Config, deps Deps) *Scheduler {
	w := cfg.Debug
	if w == nil {
		w = io.Discard
	}
	return &Scheduler{
		cfg:    cfg,
		book:   logbook.New(deps.Storage, cfg.LogPath),
		reader: sensor.NewReader(deps.Source, cfg.Calibration),
		disp:   display.New(deps.Display),
		ind:    deps.Indicator,
		sleep:  deps.Sleeper,
		debug:  log.New(w, "", 0),
	}
}

// Seq returns the current value of the sequence counter.
func (s *Scheduler) Seq() uint64 {
	return s.seq
}

// Run initializes storage and then loops cycles until ctx is cancelled. On
// the device ctx never is, so Run only returns after a storage-init failure
// has been signalled for as long as the context allowed.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Init(ctx); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.runCycle()
		s.sleepRest(ctx)
	}
}

// Init brings up the log file exactly once: it appends the header block and
// reports readiness on the display. On failure it shows the fault message
// and holds the slow indicator pulse until ctx is cancelled; the logger is
// useless without its card, so no sensor ever gets read on this path.
func (s *Scheduler) Init(ctx context.Context) error {
	if err := s.book.WriteHeader(s.cfg.IntervalMinutes); err != nil {
		s.debug.Printf("storage init failed: %v", err)
		s.disp.ShowMessage("Card failure", "halted")
		s.faultHalt(ctx)
		return fmt.Errorf("storage init: %w", err)
	}
	s.debug.Printf("card ready, logging every %d min", s.cfg.IntervalMinutes)
	s.disp.ShowMessage("Soil logger", "card ready")
	return nil
}

// runCycle performs one warn-sample-display-persist pass. A failed card
// open skips everything but still consumes a sequence number, so gaps in
// the log's numbering reveal skipped cycles.
func (s *Scheduler) runCycle() {
	s.warn()
	s.seq++

	tx, err := s.book.Begin()
	if err != nil {
		s.debug.Printf("cycle %d: %v", s.seq, err)
		s.disp.ShowMessage("Card error", "cycle skipped")
		return
	}
	defer tx.Close()

	set := s.reader.Read()
	s.disp.ShowReadings(set)

	if err := tx.Append(s.seq, set); err != nil {
		s.debug.Printf("cycle %d: %v", s.seq, err)
		return
	}
	s.debug.Printf("cycle %d: %d %d %d %d", s.seq, set[0], set[1], set[2], set[3])

	if s.cfg.OnRecord != nil {
		s.cfg.OnRecord(s.seq, set)
	}
}

// warn blinks the indicator for the full warning period before the card is
// touched: WarnSeconds*2 on/off pairs of 250ms each, indicator left off.
// The pause gives a human time to keep their hands off the card.
func (s *Scheduler) warn() {
	for i := 0; i < s.cfg.WarnSeconds*2; i++ {
		s.ind.Set(true)
		s.sleep.Sleep(warnPulse)
		s.ind.Set(false)
		s.sleep.Sleep(warnPulse)
	}
}

// sleepRest sleeps out the remainder of the cycle: the sub-minute remainder
// first, then whole minutes one at a time.
func (s *Scheduler) sleepRest(ctx context.Context) {
	rem, mins := SplitSleep(s.cfg.IntervalMinutes, s.cfg.WarnSeconds)
	if rem > 0 {
		s.sleep.Sleep(time.Duration(rem) * time.Second)
	}
	for i := 0; i < mins; i++ {
		if ctx.Err() != nil {
			return
		}
		s.sleep.Sleep(time.Minute)
	}
}

// faultHalt pulses the indicator slowly until ctx is cancelled. On the
// device this never ends.
func (s *Scheduler) faultHalt(ctx context.Context) {
	for ctx.Err() == nil {
		s.ind.Set(true)
		s.sleep.Sleep(faultOn)
		s.ind.Set(false)
		s.sleep.Sleep(faultOff)
	}
}
