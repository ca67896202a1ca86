package link

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/itohio/gosoil/pkg/config"
	"github.com/itohio/gosoil/pkg/sensor"
)

// Mock simulates a logger for testing and development: each channel dries
// out slowly and gets "watered" back up on a fixed period, with a little
// noise on top.
type Mock struct {
	cfg *config.MockConfig

	records   chan Record
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	// Simulation state
	startTime   time.Time
	lastWatered time.Time
	seq         uint64
	moisture    [sensor.NumChannels]float64
}

// NewMock creates a new mocked logger instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		def := config.Default().Mock
		cfg = &def
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:     cfg,
		records: make(chan Record, DefaultBufferSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Connect simulates connecting to the device.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.startTime = time.Now()
	m.lastWatered = m.startTime
	m.seq = 0
	// Channels start at staggered moisture levels so the bars move apart.
	for ch := range m.moisture {
		m.moisture[ch] = 95 - float64(ch)*12
	}

	go m.generateRecords()

	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	close(m.records)

	return nil
}

// Records returns the channel for reading records.
func (m *Mock) Records() <-chan Record {
	return m.records
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generateRecords emits simulated records at the configured rate.
func (m *Mock) generateRecords() {
	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			rec := m.generateRecord()
			select {
			case m.records <- rec:
			case <-m.ctx.Done():
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// generateRecord advances the simulation by one step and returns the record.
func (m *Mock) generateRecord() Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if now.Sub(m.lastWatered) >= m.cfg.WaterPeriod {
		// Watering day: everything jumps back up.
		m.lastWatered = now
		for ch := range m.moisture {
			m.moisture[ch] = 90 + float64(ch)*2
		}
	}

	elapsed := now.Sub(m.startTime).Seconds()
	m.seq++

	var rec Record
	rec.Seq = m.seq
	for ch := range m.moisture {
		// Pots dry at slightly different speeds.
		m.moisture[ch] -= m.cfg.DryRate * (1 + 0.1*float64(ch))
		if m.moisture[ch] < 0 {
			m.moisture[ch] = 0
		}

		noise := math.Sin(elapsed*1.3+float64(ch)) * m.cfg.NoiseLevel
		rec.Values[ch] = int(math.Round(m.moisture[ch] + noise))
	}

	return rec
}
