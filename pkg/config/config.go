package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Device   DeviceConfig    `yaml:"device"`
	Channels []ChannelConfig `yaml:"channels"`
	Serial   SerialConfig    `yaml:"serial"`
	Mock     MockConfig      `yaml:"mock"`
}

// DeviceConfig contains the logger's build-time constants. The firmware
// compiles in Default(); there are no runtime knobs on the device itself.
type DeviceConfig struct {
	IntervalMinutes int    `yaml:"interval_minutes"` // Minutes between reading sets
	WarnSeconds     int    `yaml:"warn_seconds"`     // Blink duration before each card write
	LogPath         string `yaml:"log_path"`         // Log file path on the card
	Debug           bool   `yaml:"debug"`            // Mirror diagnostics to the debug UART
}

// ChannelConfig contains one sensor channel's calibration endpoints.
// Dry is the raw reading in open air, Wet the raw reading in water; Dry > Wet
// on capacitive probes, so the 0-100 mapping runs downhill.
type ChannelConfig struct {
	Dry uint16 `yaml:"dry"`
	Wet uint16 `yaml:"wet"`
}

// SerialConfig contains the host monitor's serial port configuration.
type SerialConfig struct {
	Port string `yaml:"port"`
}

// MockConfig contains the simulated device's parameters.
type MockConfig struct {
	SampleRate  time.Duration `yaml:"sample_rate"`  // Time between simulated records
	WaterPeriod time.Duration `yaml:"water_period"` // Time between simulated waterings
	DryRate     float64       `yaml:"dry_rate"`     // Percentage points lost per record
	NoiseLevel  float64       `yaml:"noise_level"`  // Noise amplitude in percentage points
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			IntervalMinutes: 30,
			WarnSeconds:     10,
			LogPath:         "/datalog.txt",
			Debug:           false,
		},
		Channels: []ChannelConfig{
			{Dry: 877, Wet: 441},
			{Dry: 869, Wet: 455},
			{Dry: 875, Wet: 448},
			{Dry: 872, Wet: 450},
		},
		Serial: SerialConfig{
			Port: "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
		},
		Mock: MockConfig{
			SampleRate:  200 * time.Millisecond,
			WaterPeriod: 20 * time.Second,
			DryRate:     0.8,
			NoiseLevel:  1.5,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Device.IntervalMinutes <= 0 {
		c.Device.IntervalMinutes = def.Device.IntervalMinutes
	}
	if c.Device.WarnSeconds <= 0 {
		c.Device.WarnSeconds = def.Device.WarnSeconds
	}
	if c.Device.LogPath == "" {
		c.Device.LogPath = def.Device.LogPath
	}

	if len(c.Channels) == 0 {
		c.Channels = def.Channels
	}

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}

	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
	if c.Mock.WaterPeriod == 0 {
		c.Mock.WaterPeriod = def.Mock.WaterPeriod
	}
	if c.Mock.DryRate == 0 {
		c.Mock.DryRate = def.Mock.DryRate
	}
	if c.Mock.NoiseLevel == 0 {
		c.Mock.NoiseLevel = def.Mock.NoiseLevel
	}
}
