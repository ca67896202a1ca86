// Package logbook owns the on-card log file: its header block, the record
// format, and the open-append-close transaction every write goes through.
package logbook

import (
	"fmt"

	"github.com/itohio/gosoil/pkg/hal"
	"github.com/itohio/gosoil/pkg/sensor"
)

const banner = "***********************\n"

const columnHeader = "num\tS1\tS2\tS3\tS4\n"

// Header returns the one-time header block written when the card comes up.
// The interval line runs straight into the column header with no newline
// between them; cards in the field already carry logs in this shape, so the
// byte layout stays as-is.
func Header(intervalMinutes int) string {
	return banner +
		fmt.Sprintf("Interval: %d minutes apart.", intervalMinutes) +
		columnHeader
}

// Record returns one log line for a sequence number and reading set:
// tab-delimited fields, newline-terminated, no escaping or quoting.
func Record(seq uint64, set sensor.ReadingSet) string {
	return fmt.Sprintf("%d\t%d\t%d\t%d\t%d\n", seq, set[0], set[1], set[2], set[3])
}

// Book appends to one log file on a Storage. Every write opens the file,
// appends, and closes it again; no handle survives between calls.
type Book struct {
	store hal.Storage
	path  string
}

// New creates a Book for path on store.
func New(store hal.Storage, path string) *Book {
	return &Book{store: store, path: path}
}

// WriteHeader appends the header block in a single transaction.
func (b *Book) WriteHeader(intervalMinutes int) error {
	tx, err := b.Begin()
	if err != nil {
		return err
	}
	defer tx.Close()

	return tx.write(Header(intervalMinutes))
}

// Begin opens the log file for appending. The caller must Close the
// transaction before the cycle's sleep phase begins.
func (b *Book) Begin() (*Tx, error) {
	f, err := b.store.OpenAppend(b.path)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", b.path, err)
	}
	return &Tx{f: f}, nil
}

// Tx is one open-append-close window on the log file.
type Tx struct {
	f      hal.File
	closed bool
}

// Append writes one record within the transaction.
func (t *Tx) Append(seq uint64, set sensor.ReadingSet) error {
	return t.write(Record(seq, set))
}

// Close releases the file. Safe to call more than once.
func (t *Tx) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.f.Close()
}

func (t *Tx) write(s string) error {
	if t.closed {
		return fmt.Errorf("write after close")
	}
	if _, err := t.f.Write([]byte(s)); err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	return nil
}
