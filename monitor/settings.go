package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gosoil/pkg/config"
	"github.com/itohio/gosoil/pkg/link"
	"github.com/itohio/gosoil/pkg/sensor"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createCalibrationTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(500, 400))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// saveConfig persists the configuration next to the running app.
func saveConfig(state *appState) bool {
	if err := state.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
		return false
	}
	return true
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	// Get available serial ports
	ports, err := link.Ports()
	portOptions := []string{}
	if err == nil {
		for _, port := range ports {
			portOptions = append(portOptions, port.Name)
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	found := false
	for _, opt := range portOptions {
		if opt == currentPort {
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentPort != "" {
		portSelect.SetSelected(currentPort)
	}

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
		},
		OnSubmit: func() {
			if portSelect.Selected == "" {
				return
			}
			portChanged := state.cfg.Serial.Port != portSelect.Selected
			wasConnected := state.device != nil && state.device.IsConnected()

			state.cfg.Serial.Port = portSelect.Selected
			if !saveConfig(state) {
				return
			}

			// If port changed and device was connected, reconnect on the new port
			if portChanged && wasConnected {
				handleConnect(state) // disconnect
				handleConnect(state) // reconnect
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createCalibrationTab creates the per-channel calibration endpoints tab.
// Edits only affect the saved config; the device itself compiles its
// calibration in, so this is for preparing values before a reflash.
func createCalibrationTab(state *appState) *container.TabItem {
	items := make([]*widget.FormItem, 0, sensor.NumChannels*2)
	dryEntries := make([]*widget.Entry, sensor.NumChannels)
	wetEntries := make([]*widget.Entry, sensor.NumChannels)

	for ch := 0; ch < sensor.NumChannels; ch++ {
		pair := config.ChannelConfig{}
		if ch < len(state.cfg.Channels) {
			pair = state.cfg.Channels[ch]
		}

		dry := widget.NewEntry()
		dry.SetText(strconv.Itoa(int(pair.Dry)))
		dryEntries[ch] = dry

		wet := widget.NewEntry()
		wet.SetText(strconv.Itoa(int(pair.Wet)))
		wetEntries[ch] = wet

		items = append(items,
			&widget.FormItem{Text: fmt.Sprintf("S%d dry raw", ch+1), Widget: dry},
			&widget.FormItem{Text: fmt.Sprintf("S%d wet raw", ch+1), Widget: wet},
		)
	}

	form := &widget.Form{
		Items: items,
		OnSubmit: func() {
			channels := make([]config.ChannelConfig, sensor.NumChannels)
			for ch := 0; ch < sensor.NumChannels; ch++ {
				dry, err := strconv.ParseUint(dryEntries[ch].Text, 10, 16)
				if err != nil {
					dialog.ShowError(fmt.Errorf("invalid S%d dry value: %w", ch+1, err), state.window)
					return
				}
				wet, err := strconv.ParseUint(wetEntries[ch].Text, 10, 16)
				if err != nil {
					dialog.ShowError(fmt.Errorf("invalid S%d wet value: %w", ch+1, err), state.window)
					return
				}
				if wet >= dry {
					dialog.ShowError(fmt.Errorf("S%d: dry raw must exceed wet raw on capacitive probes", ch+1), state.window)
					return
				}
				channels[ch] = config.ChannelConfig{Dry: uint16(dry), Wet: uint16(wet)}
			}
			state.cfg.Channels = channels
			saveConfig(state)
		},
	}

	return container.NewTabItem("Calibration", form)
}

// createMockTab creates the mocked-device simulation tab.
func createMockTab(state *appState) *container.TabItem {
	sampleRate := widget.NewEntry()
	sampleRate.SetText(state.cfg.Mock.SampleRate.String())

	waterPeriod := widget.NewEntry()
	waterPeriod.SetText(state.cfg.Mock.WaterPeriod.String())

	dryRate := widget.NewEntry()
	dryRate.SetText(fmt.Sprintf("%g", state.cfg.Mock.DryRate))

	noiseLevel := widget.NewEntry()
	noiseLevel.SetText(fmt.Sprintf("%g", state.cfg.Mock.NoiseLevel))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Sample Rate", Widget: sampleRate},
			{Text: "Water Period", Widget: waterPeriod},
			{Text: "Dry Rate (%/record)", Widget: dryRate},
			{Text: "Noise Level (%)", Widget: noiseLevel},
		},
		OnSubmit: func() {
			sr, err := time.ParseDuration(sampleRate.Text)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid sample rate: %w", err), state.window)
				return
			}
			wp, err := time.ParseDuration(waterPeriod.Text)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid water period: %w", err), state.window)
				return
			}
			dr, err := strconv.ParseFloat(dryRate.Text, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid dry rate: %w", err), state.window)
				return
			}
			nl, err := strconv.ParseFloat(noiseLevel.Text, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid noise level: %w", err), state.window)
				return
			}

			state.cfg.Mock.SampleRate = sr
			state.cfg.Mock.WaterPeriod = wp
			state.cfg.Mock.DryRate = dr
			state.cfg.Mock.NoiseLevel = nl
			saveConfig(state)
		},
	}

	return container.NewTabItem("Mock", form)
}
