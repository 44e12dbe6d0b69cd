package bluetooth

import (
	"strings"
	"time"

	"github.com/app4dog/game-play/internal/protocol"
)

// CommandLogEntry records one command executed against a virtual device.
// Entries are appended when execution starts and back-filled with the
// response once dispatch resolves, so the log also shows in-flight commands.
type CommandLogEntry struct {
	DeviceID protocol.DeviceID
	Command  string
	Response string
	At       time.Time
}

// Simulator hosts the virtual device fleet. It lives inside the tick
// context: no locking, deterministic dispatch, no real latency. Handler
// delays are recorded in the response metadata instead of being slept.
type Simulator struct {
	devices map[protocol.DeviceID]*protocol.VirtualDevice
	order   []protocol.DeviceID
	log     []CommandLogEntry
}

// NewSimulator returns an empty simulator.
func NewSimulator() *Simulator {
	return &Simulator{devices: make(map[protocol.DeviceID]*protocol.VirtualDevice)}
}

// Register adds a device to the fleet, replacing any previous registration
// under the same ID. Registration order is preserved for scans.
func (s *Simulator) Register(dev protocol.VirtualDevice) {
	id := dev.Info.ID
	if _, exists := s.devices[id]; !exists {
		s.order = append(s.order, id)
	}
	s.devices[id] = &dev
}

// Remove drops a device from the fleet.
func (s *Simulator) Remove(id protocol.DeviceID) bool {
	if _, ok := s.devices[id]; !ok {
		return false
	}
	delete(s.devices, id)
	for i, d := range s.order {
		if d == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Device returns the registered device for id.
func (s *Simulator) Device(id protocol.DeviceID) (*protocol.VirtualDevice, bool) {
	dev, ok := s.devices[id]
	return dev, ok
}

// Devices lists the fleet in registration order.
func (s *Simulator) Devices() []protocol.DeviceInfo {
	out := make([]protocol.DeviceInfo, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.devices[id].Info)
	}
	return out
}

// Len reports the fleet size.
func (s *Simulator) Len() int { return len(s.order) }

// ExecuteCommand runs a command against one virtual device. Handlers are
// tried in declaration order and the first whose pattern is a substring of
// the command wins; with no match the device answers "OK". There is no
// unknown-command failure path. The returned delay is the matched
// handler's configured latency, reported but never slept.
func (s *Simulator) ExecuteCommand(id protocol.DeviceID, command string) (response string, delayMS int, err error) {
	dev, ok := s.devices[id]
	if !ok {
		return "", 0, protocol.NewError(protocol.ErrNotFound, string(id), "virtual device not registered")
	}

	entry := len(s.log)
	s.log = append(s.log, CommandLogEntry{DeviceID: id, Command: command, At: time.Now()})

	for _, h := range dev.Handlers {
		if strings.Contains(command, h.Pattern) {
			s.log[entry].Response = h.Response
			return h.Response, h.DelayMS, nil
		}
	}
	s.log[entry].Response = "OK"
	return "OK", 0, nil
}

// CommandLog returns the append-only execution history.
func (s *Simulator) CommandLog() []CommandLogEntry { return s.log }
