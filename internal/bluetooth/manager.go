// Package bluetooth routes device operations between the simulation and the
// platform layer. With the virtual network enabled, requests touching a
// registered virtual device are served in process; their responses still go
// through the bridge and surface on the next tick, same as host responses.
package bluetooth

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/app4dog/game-play/internal/backoff"
	"github.com/app4dog/game-play/internal/bridge"
	"github.com/app4dog/game-play/internal/protocol"
)

// Service is the name this manager reports failures under.
const Service = "bluetooth"

// Commands forwarded to real hardware are abandoned after this long with no
// device answer.
const defaultCommandTimeout = 5 * time.Second

// Manager tracks discovery, connection lifecycle, and in-flight commands
// for the Bluetooth channel. Tick-owned: no locking.
type Manager struct {
	logger  *log.Logger
	bridge  *bridge.Bridge
	policy  *backoff.Policy
	sim     *Simulator
	pending *bridge.PendingTable[protocol.SendCommand]

	virtualEnabled bool
	scanning       bool
	discovered     map[protocol.DeviceID]protocol.DeviceInfo
	states         map[protocol.DeviceID]protocol.ConnectionState
}

// NewManager creates a Bluetooth manager over the given bridge.
func NewManager(logger *log.Logger, b *bridge.Bridge, policy *backoff.Policy) *Manager {
	return &Manager{
		logger:     logger.WithPrefix("bluetooth"),
		bridge:     b,
		policy:     policy,
		sim:        NewSimulator(),
		pending:    bridge.NewPendingTable[protocol.SendCommand](),
		discovered: make(map[protocol.DeviceID]protocol.DeviceInfo),
		states:     make(map[protocol.DeviceID]protocol.ConnectionState),
	}
}

// Simulator exposes the virtual fleet.
func (m *Manager) Simulator() *Simulator { return m.sim }

// VirtualEnabled reports whether requests are served by the simulator.
func (m *Manager) VirtualEnabled() bool { return m.virtualEnabled }

// Scanning reports whether discovery is active.
func (m *Manager) Scanning() bool { return m.scanning }

// Discovered lists every device seen by the current process.
func (m *Manager) Discovered() []protocol.DeviceInfo {
	out := make([]protocol.DeviceInfo, 0, len(m.discovered))
	for _, info := range m.discovered {
		out = append(out, info)
	}
	return out
}

// State returns the connection state for a device. Unknown devices are
// disconnected.
func (m *Manager) State(id protocol.DeviceID) protocol.ConnectionState {
	return m.states[id]
}

// ConnectedDevices lists devices currently connected or paired.
func (m *Manager) ConnectedDevices() []protocol.DeviceID {
	var out []protocol.DeviceID
	for id, st := range m.states {
		if st == protocol.StateConnected || st == protocol.StatePaired {
			out = append(out, id)
		}
	}
	return out
}

// Handle routes one request. Fleet management requests always run in
// process. Device operations run against the simulator when the virtual
// network is on and the target is registered there; everything else is
// forwarded to the host for real hardware.
func (m *Manager) Handle(req protocol.BluetoothRequest) {
	switch r := req.(type) {
	case protocol.EnableVirtualNetwork:
		m.virtualEnabled = true
		m.logger.Info("virtual network enabled", "fleet", m.sim.Len())
		m.respond(protocol.VirtualNetworkEnabled{})

	case protocol.DisableVirtualNetwork:
		m.virtualEnabled = false
		m.respond(protocol.VirtualNetworkDisabled{})

	case protocol.RegisterVirtualDevice:
		m.sim.Register(r.Device)
		// Registration also publishes the device's static info, so it is
		// discoverable before any scan runs.
		m.discovered[r.Device.Info.ID] = r.Device.Info
		m.logger.Info("virtual device registered",
			"device", r.Device.Info.ID, "type", r.Device.Info.Type)
		m.respond(protocol.VirtualDeviceRegistered{DeviceID: r.Device.Info.ID})

	case protocol.RemoveVirtualDevice:
		if !m.sim.Remove(r.DeviceID) {
			m.respond(protocol.BluetoothError{Error: "unknown virtual device: " + string(r.DeviceID)})
			return
		}
		delete(m.discovered, r.DeviceID)
		delete(m.states, r.DeviceID)

	case protocol.SimulateDeviceCommand:
		resp, _, err := m.sim.ExecuteCommand(r.DeviceID, r.Command)
		if err != nil {
			m.respond(protocol.BluetoothError{Error: err.Error()})
			return
		}
		m.respond(protocol.VirtualCommandExecuted{DeviceID: r.DeviceID, Command: r.Command, Response: resp})

	case protocol.StartScan:
		m.handleStartScan(r)

	case protocol.StopScan:
		m.scanning = false
		if !m.virtualEnabled {
			m.forward(req)
			return
		}
		m.respond(protocol.ScanStopped{})

	case protocol.Connect:
		m.handleConnect(r)

	case protocol.Disconnect:
		m.states[r.DeviceID] = protocol.StateDisconnected
		if m.servedVirtually(r.DeviceID) {
			m.respond(protocol.Disconnected{DeviceID: r.DeviceID, Reason: "requested"})
			return
		}
		m.forward(req)

	case protocol.Pair:
		m.handlePair(r)

	case protocol.SendCommand:
		m.handleSendCommand(r)
	}
}

func (m *Manager) handleStartScan(r protocol.StartScan) {
	m.scanning = true
	if !m.virtualEnabled {
		m.forward(r)
		return
	}
	m.respond(protocol.ScanStarted{})
	for _, info := range m.sim.Devices() {
		if !matchesFilter(info, r.Filter) {
			continue
		}
		m.respond(protocol.DeviceDiscovered{Device: info})
	}
	m.scanning = false
	m.respond(protocol.ScanStopped{})
}

// Virtual devices go straight to Connected, with no Connecting
// intermediate: a command sent in the same tick as the connect already
// finds the device usable. Real devices sit in Connecting until the host
// reports back.
func (m *Manager) handleConnect(r protocol.Connect) {
	if m.servedVirtually(r.DeviceID) {
		m.states[r.DeviceID] = protocol.StateConnected
		if info, ok := m.discovered[r.DeviceID]; ok {
			info.Connected = true
			m.discovered[r.DeviceID] = info
		}
		m.respond(protocol.Connected{DeviceID: r.DeviceID})
		return
	}
	if _, ok := m.discovered[r.DeviceID]; !ok {
		err := protocol.NewError(protocol.ErrNotFound, string(r.DeviceID), "device not discovered")
		m.policy.RecordError(Service, err)
		m.respond(protocol.BluetoothError{Error: err.Error()})
		return
	}
	m.states[r.DeviceID] = protocol.StateConnecting
	m.forward(r)
}

func (m *Manager) handlePair(r protocol.Pair) {
	if m.servedVirtually(r.DeviceID) {
		m.states[r.DeviceID] = protocol.StatePairing
		m.respond(protocol.Paired{DeviceID: r.DeviceID})
		return
	}
	m.states[r.DeviceID] = protocol.StatePairing
	m.forward(r)
}

func (m *Manager) handleSendCommand(r protocol.SendCommand) {
	if m.servedVirtually(r.DeviceID) {
		st := m.states[r.DeviceID]
		if st != protocol.StateConnected && st != protocol.StatePaired {
			m.respond(protocol.CommandFailed{
				DeviceID: r.DeviceID, Command: r.Command, Error: "device not connected",
			})
			return
		}
		resp, delayMS, err := m.sim.ExecuteCommand(r.DeviceID, r.Command)
		if err != nil {
			m.respond(protocol.CommandFailed{DeviceID: r.DeviceID, Command: r.Command, Error: err.Error()})
			return
		}
		m.respond(protocol.CommandResponse{
			DeviceID: r.DeviceID, Command: r.Command, Response: resp, LatencyMS: delayMS,
		})
		return
	}
	m.pending.Track(string(r.DeviceID), r)
	m.forward(r)
}

// HandleResponse folds one response into the manager's view. Responses
// arrive on the tick after the layer that produced them, whether host or
// simulator.
func (m *Manager) HandleResponse(resp protocol.BluetoothResponse) {
	switch r := resp.(type) {
	case protocol.ScanStarted:
		m.scanning = true

	case protocol.ScanStopped:
		m.scanning = false

	case protocol.DeviceDiscovered:
		m.discovered[r.Device.ID] = r.Device
		m.logger.Info("device discovered",
			"device", r.Device.ID, "name", r.Device.Name, "rssi", r.Device.RSSI)

	case protocol.Connected:
		m.states[r.DeviceID] = protocol.StateConnected
		m.policy.RecordSuccess(Service)
		if info, ok := m.discovered[r.DeviceID]; ok {
			info.Connected = true
			m.discovered[r.DeviceID] = info
		}

	case protocol.Disconnected:
		m.states[r.DeviceID] = protocol.StateDisconnected
		if info, ok := m.discovered[r.DeviceID]; ok {
			info.Connected = false
			m.discovered[r.DeviceID] = info
		}

	case protocol.Paired:
		m.states[r.DeviceID] = protocol.StatePaired
		m.policy.RecordSuccess(Service)

	case protocol.PairingFailed:
		m.states[r.DeviceID] = protocol.StateError
		m.policy.RecordError(Service,
			protocol.NewError(protocol.ErrPairingFailed, string(r.DeviceID), r.Error))

	case protocol.CommandResponse:
		m.pending.Resolve(string(r.DeviceID))
		m.policy.RecordSuccess(Service)
		m.logger.Debug("command answered",
			"device", r.DeviceID, "command", r.Command, "latency_ms", r.LatencyMS)

	case protocol.CommandFailed:
		m.pending.Resolve(string(r.DeviceID))
		m.policy.RecordError(Service,
			protocol.NewError(protocol.ErrOperationFailed, string(r.DeviceID), r.Error))

	case protocol.BluetoothError:
		m.policy.RecordError(Service,
			protocol.NewError(protocol.ErrPlatform, "", r.Error))

	case protocol.VirtualNetworkEnabled, protocol.VirtualNetworkDisabled,
		protocol.VirtualDeviceRegistered, protocol.VirtualCommandExecuted:
		// Informational acks from the simulator path.
	}
}

// SweepTimeouts abandons commands that real hardware never answered and
// records a timeout error per abandoned command. A command that carries its
// own timeout_ms is swept on that deadline instead of the default. Virtual
// commands answer within a tick and never appear here.
func (m *Manager) SweepTimeouts() int {
	expired := m.pending.ExpireFunc(func(cmd protocol.SendCommand) time.Duration {
		if cmd.TimeoutMS > 0 {
			return time.Duration(cmd.TimeoutMS) * time.Millisecond
		}
		return defaultCommandTimeout
	})
	for _, p := range expired {
		m.policy.RecordError(Service,
			protocol.NewError(protocol.ErrCommandTimeout, string(p.Payload.DeviceID), p.Payload.Command))
		m.logger.Warn("command timed out",
			"device", p.Payload.DeviceID, "command", p.Payload.Command)
	}
	return len(expired)
}

func (m *Manager) servedVirtually(id protocol.DeviceID) bool {
	if !m.virtualEnabled {
		return false
	}
	_, ok := m.sim.Device(id)
	return ok
}

func (m *Manager) respond(resp protocol.BluetoothResponse) {
	m.bridge.SubmitBluetoothResponse(resp)
}

func (m *Manager) forward(req protocol.BluetoothRequest) {
	m.bridge.DispatchBluetoothRequest(req)
}

func matchesFilter(info protocol.DeviceInfo, f *protocol.DeviceFilter) bool {
	if f == nil {
		return true
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if info.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinRSSI != 0 && info.RSSI < f.MinRSSI {
		return false
	}
	if len(f.NamePatterns) > 0 {
		found := false
		name := strings.ToLower(info.Name)
		for _, p := range f.NamePatterns {
			if strings.Contains(name, strings.ToLower(p)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
