package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/app4dog/game-play/internal/bridge"
	"github.com/app4dog/game-play/internal/config"
	"github.com/app4dog/game-play/internal/protocol"
	"github.com/app4dog/game-play/internal/sim"
	"github.com/app4dog/game-play/internal/storage"
)

const eventLogSize = 8

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	soundStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model is the Bubble Tea model for an interactive play session. It stands
// in for the host runtime: keys become gestures and interactions, outbound
// audio requests are answered as a browser's audio stack would answer them.
type Model struct {
	logger *log.Logger
	cfg    config.Config
	bridge *bridge.Bridge
	engine *sim.Engine
	store  *storage.Store
	keys   *KeyMapper

	width, height int
	showDevices   bool
	devices       table.Model

	settings   protocol.SharedSettings
	critterIDs []string
	critterIdx int

	nowPlaying   string
	playingTicks int
	eventLog     []string

	gestureSeq   uint64
	quitting     bool
	sessionSaved bool
}

// NewModel creates a play-session model. The virtual device fleet from the
// configuration is registered and enabled before the first tick.
func NewModel(logger *log.Logger, cfg config.Config, store *storage.Store, startCritter string) Model {
	b := bridge.New(logger)
	engine := sim.New(logger, b, sim.Config{
		Sounds:         cfg.Sounds,
		Templates:      cfg.Critters,
		Backoff:        cfg.Backoff.Tuning(),
		CameraThrottle: cfg.Engine.CameraThrottle(),
	})

	engine.Bluetooth.Handle(protocol.EnableVirtualNetwork{})
	for _, dev := range cfg.Fleet {
		engine.Bluetooth.Handle(protocol.RegisterVirtualDevice{Device: dev.Device()})
	}

	ids := make([]string, 0, len(cfg.Critters))
	idx := 0
	for i, t := range cfg.Critters {
		ids = append(ids, t.ID)
		if t.ID == startCritter {
			idx = i
		}
	}
	if startCritter != "" {
		b.SubmitLoadCritter(startCritter)
	}

	columns := []table.Column{
		{Title: "Device", Width: 22},
		{Title: "Type", Width: 16},
		{Title: "RSSI", Width: 6},
		{Title: "State", Width: 12},
	}
	devices := table.New(
		table.WithColumns(columns),
		table.WithHeight(6),
	)

	return Model{
		logger:     logger.WithPrefix("host"),
		cfg:        cfg,
		bridge:     b,
		engine:     engine,
		store:      store,
		keys:       NewKeyMapper(),
		settings:   protocol.DefaultSharedSettings(),
		critterIDs: ids,
		critterIdx: idx,
		devices:    devices,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.Engine.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey turns a key press into host-side bridge traffic.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case ActionQuit:
		m.saveSession()
		m.quitting = true
		return m, tea.Quit

	case ActionGesture:
		m.gestureSeq++
		m.bridge.SubmitHostEvent(protocol.UserGesture{
			RequestID: fmt.Sprintf("gesture-%d", m.gestureSeq),
			Timestamp: float64(time.Now().UnixMilli()),
		})

	case ActionTap:
		m.bridge.SubmitInteraction(bridge.InteractionTap, 0.5, 0.5, 0, 0)

	case ActionSwipeLeft:
		m.bridge.SubmitInteraction(bridge.InteractionSwipe, 0.5, 0.5, -1, 0)

	case ActionSwipeRight:
		m.bridge.SubmitInteraction(bridge.InteractionSwipe, 0.5, 0.5, 1, 0)

	case ActionHold:
		m.bridge.SubmitInteraction(bridge.InteractionHold, 0.5, 0.5, 0, 0)

	case ActionScan:
		m.engine.Bluetooth.Handle(protocol.StartScan{})

	case ActionBeep:
		m.commandDevice(protocol.DeviceSmartCollar, "beep")

	case ActionFeed:
		m.commandDevice(protocol.DeviceFeedingStation, "dispense treat")

	case ActionToggleDevices:
		m.showDevices = !m.showDevices

	case ActionToggleMusic:
		m.settings.MusicEnabled = !m.settings.MusicEnabled
		m.pushSettings()

	case ActionVolumeUp:
		m.settings.SFXVolume = clamp01(m.settings.SFXVolume + 0.1)
		m.pushSettings()

	case ActionVolumeDown:
		m.settings.SFXVolume = clamp01(m.settings.SFXVolume - 0.1)
		m.pushSettings()

	case ActionCritterNext:
		if len(m.critterIDs) > 0 {
			m.critterIdx = (m.critterIdx + 1) % len(m.critterIDs)
			m.bridge.SubmitLoadCritter(m.critterIDs[m.critterIdx])
		}
	}
	return m, nil
}

// commandDevice sends a command to the first known device of the given
// type, connecting first when needed. Virtual devices connect instantly,
// so one press connects and commands in the same frame.
func (m *Model) commandDevice(devType protocol.DeviceType, command string) {
	for _, info := range m.engine.Bluetooth.Discovered() {
		if info.Type != devType {
			continue
		}
		state := m.engine.Bluetooth.State(info.ID)
		if state != protocol.StateConnected && state != protocol.StatePaired {
			m.engine.Bluetooth.Handle(protocol.Connect{DeviceID: info.ID})
			m.logEvent(fmt.Sprintf("connecting to %s", info.Name))
			state = m.engine.Bluetooth.State(info.ID)
		}
		if state == protocol.StateConnected || state == protocol.StatePaired {
			m.engine.Bluetooth.Handle(protocol.SendCommand{DeviceID: info.ID, Command: command})
		}
		return
	}
	m.logEvent("no matching device")
}

func (m *Model) pushSettings() {
	m.bridge.SubmitHostEvent(protocol.SettingsUpdated{
		RequestID: fmt.Sprintf("settings-%d", time.Now().UnixMilli()),
		Settings:  m.settings,
	})
}

// handleTick steps the engine and then services the outbound queues the way
// the host runtime would.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, ev := range m.engine.Step(now) {
		m.logSimEvent(ev)
	}

	m.serviceAudio()
	m.serviceBluetooth()
	m.drainEngineEvents()
	m.refreshDevices()

	if m.playingTicks > 0 {
		m.playingTicks--
		if m.playingTicks == 0 {
			m.nowPlaying = ""
		}
	}

	return m, tickCmd(m.cfg.Engine.TickRate)
}

// serviceAudio answers every queued audio request instantly, as a decoded
// browser audio stack would on a warmed-up cache.
func (m *Model) serviceAudio() {
	for _, frame := range m.bridge.PollAudioRequests() {
		req, err := protocol.DecodeAudioRequest(frame)
		if err != nil {
			m.logger.Warn("undecodable audio request", "err", err)
			continue
		}
		switch r := req.(type) {
		case protocol.AudioPlay:
			m.nowPlaying = r.SoundID
			m.playingTicks = m.cfg.Engine.TickRate // flash for about a second
			m.bridge.SubmitAudioResponse(protocol.AudioPlayCompleted{
				RequestID:       r.RequestID,
				Success:         true,
				DurationSeconds: 0.8,
			})
		case protocol.AudioStop:
			m.nowPlaying = ""
			m.bridge.SubmitAudioResponse(protocol.AudioStopped{RequestID: r.RequestID, Success: true})
		case protocol.AudioSetVolume:
			m.bridge.SubmitAudioResponse(protocol.AudioVolumeChanged{RequestID: r.RequestID, NewVolume: r.Volume})
		case protocol.AudioTest:
			m.bridge.SubmitAudioResponse(protocol.AudioTestCompleted{RequestID: r.RequestID, Result: "ok"})
		}
	}
}

// serviceBluetooth rejects requests destined for real hardware; the
// terminal has no adapter, everything should ride the virtual network.
func (m *Model) serviceBluetooth() {
	for _, frame := range m.bridge.PollBluetoothRequests() {
		if _, err := protocol.DecodeBluetoothRequest(frame); err != nil {
			m.logger.Warn("undecodable bluetooth request", "err", err)
			continue
		}
		m.bridge.SubmitBluetoothResponse(protocol.BluetoothError{Error: "no bluetooth adapter in terminal host"})
	}
}

func (m *Model) drainEngineEvents() {
	for _, frame := range m.bridge.PollEngineEvents() {
		ev, err := protocol.DecodeEngineEvent(frame)
		if err != nil {
			continue
		}
		if t, ok := ev.(protocol.TestEvent); ok {
			m.bridge.SubmitHostEvent(protocol.TestEventResponse{RequestID: t.RequestID, ResponseData: t.Message})
		}
	}
}

func (m *Model) refreshDevices() {
	infos := m.engine.Bluetooth.Discovered()
	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, table.Row{
			string(info.ID),
			string(info.Type),
			fmt.Sprintf("%d", info.RSSI),
			m.engine.Bluetooth.State(info.ID).String(),
		})
	}
	m.devices.SetRows(rows)
}

func (m *Model) logSimEvent(ev sim.Event) {
	switch e := ev.(type) {
	case sim.CritterLoaded:
		m.logEvent(fmt.Sprintf("%s joined the play area", e.CritterID))
	case sim.CritterRejected:
		m.logEvent(fmt.Sprintf("%s unavailable: %s", e.CritterID, e.Reason))
	case sim.InteractionApplied:
		m.logEvent(fmt.Sprintf("%s  happiness %.2f  energy %.2f", e.Kind, e.Happiness, e.Energy))
	case sim.LevelUp:
		m.logEvent(fmt.Sprintf("level up! now level %d", e.Level))
	}
}

func (m *Model) logEvent(line string) {
	m.eventLog = append(m.eventLog, line)
	if len(m.eventLog) > eventLogSize {
		m.eventLog = m.eventLog[len(m.eventLog)-eventLogSize:]
	}
}

// saveSession persists the session and the device command log, best effort.
func (m *Model) saveSession() {
	if m.store == nil || m.sessionSaved {
		return
	}
	critterID := ""
	if c := m.engine.Current(); c != nil {
		critterID = c.Template.ID
	}
	if critterID != "" && m.engine.Score() > 0 {
		//nolint:errcheck // Best-effort save on the way out
		m.store.SaveSession(critterID, m.engine.Stats())
	}
	//nolint:errcheck // Best-effort save on the way out
	m.store.ArchiveCommands(m.engine.Bluetooth.Simulator().CommandLog())
	m.sessionSaved = true
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(" P E T S I M ") + "\n\n")
	b.WriteString(m.critterPanel())
	b.WriteString("\n")

	if m.showDevices {
		b.WriteString(panelStyle.Render(m.devices.View()))
		b.WriteString("\n")
		b.WriteString(m.commandLogPanel())
	} else {
		b.WriteString(m.eventPanel())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		"space/g gesture · t tap · ←/→ swipe · h hold · c critter · n scan · b beep · f feed · d devices · q quit"))
	return b.String()
}

func (m Model) critterPanel() string {
	var b strings.Builder

	if c := m.engine.Current(); c != nil {
		b.WriteString(fmt.Sprintf("%s the %s\n",
			valueStyle.Render(c.Template.Name), c.Template.Species))
		b.WriteString(labelStyle.Render("happiness ") + bar(c.Happiness) + "\n")
		b.WriteString(labelStyle.Render("energy    ") + bar(c.Energy) + "\n")
	} else {
		b.WriteString(labelStyle.Render("no critter loaded (press c)") + "\n")
	}

	b.WriteString(fmt.Sprintf("%s %d   %s %d\n",
		labelStyle.Render("score"), m.engine.Score(),
		labelStyle.Render("level"), m.engine.Level()))

	if m.engine.Audio.Gate().Unlocked() {
		b.WriteString(openStyle.Render("audio unlocked"))
	} else {
		b.WriteString(lockedStyle.Render("audio locked, press space"))
	}
	if m.nowPlaying != "" {
		b.WriteString(soundStyle.Render("  ♪ " + m.nowPlaying))
	}
	b.WriteString("\n")

	return panelStyle.Render(b.String())
}

func (m Model) eventPanel() string {
	if len(m.eventLog) == 0 {
		return panelStyle.Render(labelStyle.Render("waiting for something to happen"))
	}
	return panelStyle.Render(strings.Join(m.eventLog, "\n"))
}

func (m Model) commandLogPanel() string {
	entries := m.engine.Bluetooth.Simulator().CommandLog()
	if len(entries) == 0 {
		return panelStyle.Render(labelStyle.Render("no device commands yet"))
	}
	start := 0
	if len(entries) > 5 {
		start = len(entries) - 5
	}
	var b strings.Builder
	for _, e := range entries[start:] {
		b.WriteString(fmt.Sprintf("%s  %s → %s\n", e.DeviceID, e.Command, e.Response))
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func bar(v float64) string {
	const width = 20
	filled := int(v*width + 0.5)
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Run starts an interactive play session.
func Run(logger *log.Logger, cfg config.Config, store *storage.Store, startCritter string) error {
	model := NewModel(logger, cfg, store, startCritter)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
