// Package link tails a logger's debug UART from the host side. The firmware
// mirrors every persisted record to its debug serial port; this package
// parses that stream back into records for the monitor app.
package link

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"

	"go.bug.st/serial"

	"github.com/itohio/gosoil/pkg/sensor"
)

const (
	// DefaultBaudRate matches the firmware's debug UART configuration.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size for the records channel buffer.
	DefaultBufferSize = 100
)

// Record is one reading set as mirrored over the debug UART, in the same
// shape as a log-file line.
type Record struct {
	Seq    uint64
	Values [sensor.NumChannels]int
}

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Serial represents a connection to the logger over a serial port.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      serial.Port
	records   chan Record
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// New creates a new Serial instance with the specified port, baud rate, and
// buffer size.
func New(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		records:  make(chan Record, bufSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Connect opens the serial port and starts reading records.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	// Start reading records in a goroutine
	go d.readRecords()

	return nil
}

// Close closes the connection and stops reading records.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	d.cancel()

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}

	d.connected = false
	close(d.records)

	return nil
}

// Records returns the channel for reading records.
func (d *Serial) Records() <-chan Record {
	return d.records
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readRecords reads lines from the serial port and parses them into Records.
// The debug stream carries diagnostic text as well; anything that doesn't
// parse as a record line is skipped.
func (d *Serial) readRecords() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic in readRecords: %v", r)
		}
	}()

	scanner := bufio.NewScanner(d.conn)
	for {
		select {
		case <-d.ctx.Done():
			return
		default:
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil && err != io.EOF {
					log.Printf("Error reading from serial port: %v", err)
				}
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			rec, err := parseLine(line)
			if err != nil {
				// Diagnostic chatter, not a record.
				continue
			}

			select {
			case d.records <- rec:
			case <-d.ctx.Done():
				return
			default:
				log.Printf("Records channel full, dropping record")
			}
		}
	}
}

// parseLine parses a mirrored record line into a Record.
// Format: seq\ts1\ts2\ts3\ts4 (a log-file line without its newline).
// Example: 7\t42\t58\t13\t91
func parseLine(line string) (Record, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != sensor.NumChannels+1 {
		return Record{}, fmt.Errorf("invalid line format: expected %d tab-separated values, got %d", sensor.NumChannels+1, len(parts))
	}

	seq, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid sequence number: %w", err)
	}

	var rec Record
	rec.Seq = seq
	for i := 0; i < sensor.NumChannels; i++ {
		// Values may fall outside 0-100 when a probe reads beyond its
		// calibrated span; those pass through unchanged.
		v, err := strconv.Atoi(parts[i+1])
		if err != nil {
			return Record{}, fmt.Errorf("invalid value for S%d: %w", i+1, err)
		}
		rec.Values[i] = v
	}

	return rec, nil
}
