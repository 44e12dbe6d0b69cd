package protocol

// DeviceID uniquely identifies a Bluetooth LE device, real or virtual.
type DeviceID string

// DeviceType describes what kind of pet hardware a device is.
type DeviceType string

const (
	DeviceSmartCollar     DeviceType = "smart_collar"
	DeviceFeedingStation  DeviceType = "feeding_station"
	DeviceToyDispenser    DeviceType = "toy_dispenser"
	DeviceActivityTracker DeviceType = "activity_tracker"
	DeviceVirtual         DeviceType = "virtual"
	DeviceUnknown         DeviceType = "unknown"
)

// DeviceInfo is the static description of a discovered device.
type DeviceInfo struct {
	ID               DeviceID   `json:"id"`
	Name             string     `json:"name"`
	Type             DeviceType `json:"device_type"`
	RSSI             int        `json:"rssi"`
	Services         []string   `json:"services,omitempty"`
	ManufacturerData string     `json:"manufacturer_data,omitempty"`
	Connected        bool       `json:"is_connected"`
	BatteryLevel     int        `json:"battery_level,omitempty"`
}

// ConnectionState tracks where a device is in its connection lifecycle.
// Transitions are driven exclusively by Bluetooth request/response handling;
// a device holds exactly one state at any tick.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StatePairing
	StatePaired
	StateError
)

// String returns a human-readable name for the state.
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StatePairing:
		return "pairing"
	case StatePaired:
		return "paired"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// DeviceFilter narrows scan results.
type DeviceFilter struct {
	Types        []DeviceType `json:"device_types,omitempty"`
	MinRSSI      int          `json:"min_rssi,omitempty"`
	ServiceUUIDs []string     `json:"service_uuids,omitempty"`
	NamePatterns []string     `json:"name_patterns,omitempty"`
}

// CommandHandler is one entry in a virtual device's dispatch table.
// Matching is substring containment against the incoming command text;
// handlers are tried in declaration order and the first match wins.
type CommandHandler struct {
	Pattern  string `json:"command_pattern" yaml:"pattern"`
	Response string `json:"response_template" yaml:"response"`
	DelayMS  int    `json:"delay_ms" yaml:"delay_ms"`
}

// VirtualDevice is an in-process stand-in for networked pet hardware.
type VirtualDevice struct {
	Info          DeviceInfo        `json:"info"`
	Handlers      []CommandHandler  `json:"command_handlers"`
	State         map[string]string `json:"state,omitempty"`
	AutoResponses bool              `json:"auto_responses"`
}
