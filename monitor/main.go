// Monitor is a desktop companion for the soil logger: it tails the device's
// debug UART over a serial port (or a mocked device) and shows the four
// moisture channels live.
package main

import (
	"flag"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gosoil/pkg/config"
	"github.com/itohio/gosoil/pkg/link"
	"github.com/itohio/gosoil/pkg/sensor"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked device instead of serial port")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.gosoil")

	// Create main window
	window := application.NewWindow("Soil Logger Monitor")
	window.Resize(fyne.NewSize(420, 300))
	window.CenterOnScreen()

	// Create application state
	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		window:     window,
		useMock:    *mockFlag,
	}

	// Create toolbar
	toolbar := createToolbar(state)

	// Create channel rows: one labeled progress bar per probe
	rows := make([]fyne.CanvasObject, 0, sensor.NumChannels)
	for ch := 0; ch < sensor.NumChannels; ch++ {
		bar := widget.NewProgressBar()
		bar.Min = 0
		bar.Max = 100
		state.bars[ch] = bar
		rows = append(rows, container.NewBorder(
			nil, nil,
			widget.NewLabel(fmt.Sprintf("S%d", ch+1)),
			nil,
			bar,
		))
	}

	state.status = widget.NewLabel("Not connected")

	content := container.NewBorder(
		toolbar,
		state.status,
		nil,
		nil,
		container.NewVBox(rows...),
	)

	window.SetContent(content)
	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configPath string
	device     link.Device
	window     fyne.Window
	connectBtn *widget.Button
	bars       [sensor.NumChannels]*widget.ProgressBar
	status     *widget.Label
	useMock    bool

	// readerDone closes when the record consumer goroutine exits.
	readerDone chan struct{}
}

// createToolbar creates the application toolbar with Connect and Settings buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	return container.NewHBox(connectBtn, settingsBtn)
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.device != nil && state.device.IsConnected() {
		// Disconnect - close the device, then wait for the consumer to drain
		state.device.Close()
		if state.readerDone != nil {
			<-state.readerDone
			state.readerDone = nil
		}
		state.device = nil
		state.status.SetText("Not connected")
		if state.useMock {
			fmt.Println("Disconnected from mocked device")
		} else {
			fmt.Println("Disconnected from serial port")
		}
		return
	}

	// Connect
	var device link.Device
	if state.useMock {
		device = link.NewMock(&state.cfg.Mock)
		fmt.Println("Using mocked device")
	} else {
		device = link.New(state.cfg.Serial.Port, link.DefaultBaudRate, link.DefaultBufferSize)
	}

	if err := device.Connect(); err != nil {
		if state.useMock {
			dialog.ShowError(fmt.Errorf("failed to connect to mocked device: %w", err), state.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
		}
		return
	}
	state.device = device
	if state.useMock {
		fmt.Printf("Connected to mocked device\n")
	} else {
		fmt.Printf("Connected to serial port: %s\n", state.cfg.Serial.Port)
	}
	state.status.SetText("Connected, waiting for records")

	// Consume records until the device closes its channel
	done := make(chan struct{})
	state.readerDone = done
	records := device.Records()
	go func() {
		defer close(done)
		for rec := range records {
			applyRecord(state, rec)
		}
	}()
}
