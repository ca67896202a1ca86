//go:build tinygo

package main

import "machine"

const (
	// Status LED, shared by the pre-write warning blink and the fault pulse
	PIN_LED = machine.LED

	// SD card on SPI0
	PIN_SD_SCK = machine.SPI0_SCK_PIN
	PIN_SD_SDO = machine.SPI0_SDO_PIN
	PIN_SD_SDI = machine.SPI0_SDI_PIN
	PIN_SD_CS  = machine.D2

	// HD44780 character display behind the common PCF8574 I2C backpack
	LCD_I2C_ADDR = 0x27
	LCD_COLS     = 16
	LCD_ROWS     = 2

	// Debug serial configuration
	// Baud rate calculation: mirrored record format "seq\ts1\ts2\ts3\ts4\n"
	// Example: "65535\t-10\t109\t100\t100\n" = ~25 bytes max per line
	// One record per cycle (minutes apart) plus a few diagnostic lines, so
	// throughput is negligible; 115200 is used for snappy interactive reads.
	UART_BAUD_RATE = 115200
)

// Soil probe ADC pins, channel order S1..S4.
var adcPins = [4]machine.Pin{machine.A0, machine.A1, machine.A2, machine.A3}
