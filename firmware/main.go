//go:build tinygo

//go:generate tinygo flash -target=xiao

package main

import (
	"context"
	"io"
	"machine"
	"os"

	"tinygo.org/x/drivers/hd44780i2c"
	"tinygo.org/x/drivers/sdcard"
	"tinygo.org/x/tinyfs/fatfs"

	"github.com/itohio/gosoil/pkg/config"
	"github.com/itohio/gosoil/pkg/cycle"
	"github.com/itohio/gosoil/pkg/hal"
	"github.com/itohio/gosoil/pkg/logbook"
	"github.com/itohio/gosoil/pkg/sensor"
)

func main() {
	// All device constants are compiled in; nothing is read at runtime.
	cfg := config.Default()

	// Soil probes
	machine.InitADC()
	var src adcSource
	for i, pin := range adcPins {
		adc := machine.ADC{Pin: pin}
		adc.Configure(machine.ADCConfig{})
		src.channels[i] = adc
	}

	// Status LED
	PIN_LED.Configure(machine.PinConfig{Mode: machine.PinOutput})

	// Character display
	machine.I2C0.Configure(machine.I2CConfig{})
	lcd := hd44780i2c.New(machine.I2C0, LCD_I2C_ADDR)
	lcd.Configure(hd44780i2c.Config{
		Width:  LCD_COLS,
		Height: LCD_ROWS,
	})

	// SD card. A dead or missing card surfaces on the first open; the cycle
	// initializer owns the fault signalling, so errors are not handled here.
	machine.SPI0.Configure(machine.SPIConfig{})
	sd := sdcard.New(&machine.SPI0, PIN_SD_SCK, PIN_SD_SDO, PIN_SD_SDI, PIN_SD_CS)
	_ = sd.Configure()
	filesystem := fatfs.New(&sd)
	filesystem.Configure(&fatfs.Config{SectorSize: 512})

	var debug io.Writer
	if cfg.Device.Debug {
		debug = machine.Serial
	}

	sched := cycle.New(cycle.Config{
		IntervalMinutes: cfg.Device.IntervalMinutes,
		WarnSeconds:     cfg.Device.WarnSeconds,
		LogPath:         cfg.Device.LogPath,
		Calibration:     sensor.CalibrationFromConfig(cfg.Channels),
		Debug:           debug,
		OnRecord: func(seq uint64, set sensor.ReadingSet) {
			// Mirror every persisted record to the debug UART so the host
			// monitor can tail the device live.
			machine.Serial.Write([]byte(logbook.Record(seq, set)))
		},
	}, cycle.Deps{
		Storage:   cardStorage{fs: filesystem},
		Display:   lcdDisplay{d: &lcd},
		Source:    &src,
		Indicator: ledIndicator{pin: PIN_LED},
		Sleeper:   hal.TimeSleeper{},
	})

	// Never returns on-device: a failed card init pulses the LED forever,
	// a healthy one loops cycles forever.
	_ = sched.Run(context.Background())
}

// adcSource reads the four probe channels.
type adcSource struct {
	channels [sensor.NumChannels]machine.ADC
}

func (a *adcSource) ReadChannel(channel int) uint16 {
	return a.channels[channel].Get()
}

// ledIndicator drives the status LED.
type ledIndicator struct {
	pin machine.Pin
}

func (l ledIndicator) Set(on bool) {
	if on {
		l.pin.High()
	} else {
		l.pin.Low()
	}
}

// lcdDisplay adapts the HD44780 driver to the display contract.
type lcdDisplay struct {
	d *hd44780i2c.Device
}

func (l lcdDisplay) Clear() {
	l.d.ClearDisplay()
}

func (l lcdDisplay) SetCursor(col, row int) {
	l.d.SetCursor(uint8(col), uint8(row))
}

func (l lcdDisplay) Write(text string) {
	l.d.Print([]byte(text))
}

// cardStorage opens append handles on the FAT filesystem.
type cardStorage struct {
	fs *fatfs.FATFS
}

func (c cardStorage) OpenAppend(path string) (hal.File, error) {
	return c.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}
