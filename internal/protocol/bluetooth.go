package protocol

// BluetoothRequest is an operation the engine sends toward the Bluetooth
// platform layer (the host runtime, or the virtual simulator in testing).
type BluetoothRequest interface {
	bluetoothRequest()
}

// StartScan begins device discovery.
type StartScan struct {
	DurationMS int           `json:"duration_ms,omitempty"`
	Filter     *DeviceFilter `json:"device_filter,omitempty"`
}

func (StartScan) bluetoothRequest() {}

// StopScan ends device discovery.
type StopScan struct{}

func (StopScan) bluetoothRequest() {}

// Connect opens a connection to a discovered device.
type Connect struct {
	DeviceID DeviceID `json:"device_id"`
}

func (Connect) bluetoothRequest() {}

// Disconnect closes the connection to a device.
type Disconnect struct {
	DeviceID DeviceID `json:"device_id"`
}

func (Disconnect) bluetoothRequest() {}

// Pair bonds with a device, optionally using a PIN.
type Pair struct {
	DeviceID DeviceID `json:"device_id"`
	PIN      string   `json:"pin,omitempty"`
}

func (Pair) bluetoothRequest() {}

// SendCommand transmits a command string to a connected device.
type SendCommand struct {
	DeviceID  DeviceID `json:"device_id"`
	Command   string   `json:"command"`
	TimeoutMS int      `json:"timeout_ms,omitempty"`
}

func (SendCommand) bluetoothRequest() {}

// EnableVirtualNetwork switches the Bluetooth layer onto the in-process
// device simulator.
type EnableVirtualNetwork struct{}

func (EnableVirtualNetwork) bluetoothRequest() {}

// DisableVirtualNetwork switches the simulator back off.
type DisableVirtualNetwork struct{}

func (DisableVirtualNetwork) bluetoothRequest() {}

// RegisterVirtualDevice adds a device to the simulated fleet.
type RegisterVirtualDevice struct {
	Device VirtualDevice `json:"device"`
}

func (RegisterVirtualDevice) bluetoothRequest() {}

// RemoveVirtualDevice removes a device from the simulated fleet.
type RemoveVirtualDevice struct {
	DeviceID DeviceID `json:"device_id"`
}

func (RemoveVirtualDevice) bluetoothRequest() {}

// SimulateDeviceCommand runs a command directly against a virtual device,
// bypassing the connection lifecycle. Testing hook.
type SimulateDeviceCommand struct {
	DeviceID DeviceID `json:"device_id"`
	Command  string   `json:"command"`
}

func (SimulateDeviceCommand) bluetoothRequest() {}

// BluetoothResponse is an event the Bluetooth platform layer reports back.
type BluetoothResponse interface {
	bluetoothResponse()
}

// ScanStarted confirms discovery has begun.
type ScanStarted struct{}

func (ScanStarted) bluetoothResponse() {}

// ScanStopped confirms discovery has ended.
type ScanStopped struct{}

func (ScanStopped) bluetoothResponse() {}

// DeviceDiscovered reports one device found during a scan.
type DeviceDiscovered struct {
	Device DeviceInfo `json:"device"`
}

func (DeviceDiscovered) bluetoothResponse() {}

// Connected reports a successful connection.
type Connected struct {
	DeviceID DeviceID `json:"device_id"`
}

func (Connected) bluetoothResponse() {}

// Disconnected reports a closed connection.
type Disconnected struct {
	DeviceID DeviceID `json:"device_id"`
	Reason   string   `json:"reason,omitempty"`
}

func (Disconnected) bluetoothResponse() {}

// Paired reports successful bonding.
type Paired struct {
	DeviceID DeviceID `json:"device_id"`
}

func (Paired) bluetoothResponse() {}

// PairingFailed reports failed bonding.
type PairingFailed struct {
	DeviceID DeviceID `json:"device_id"`
	Error    string   `json:"error"`
}

func (PairingFailed) bluetoothResponse() {}

// CommandResponse carries a device's answer to a SendCommand.
type CommandResponse struct {
	DeviceID  DeviceID `json:"device_id"`
	Command   string   `json:"command"`
	Response  string   `json:"response"`
	LatencyMS int      `json:"latency_ms"`
}

func (CommandResponse) bluetoothResponse() {}

// CommandFailed reports a command that the device could not serve.
type CommandFailed struct {
	DeviceID DeviceID `json:"device_id"`
	Command  string   `json:"command"`
	Error    string   `json:"error"`
}

func (CommandFailed) bluetoothResponse() {}

// VirtualNetworkEnabled confirms the simulator is active.
type VirtualNetworkEnabled struct{}

func (VirtualNetworkEnabled) bluetoothResponse() {}

// VirtualNetworkDisabled confirms the simulator is inactive.
type VirtualNetworkDisabled struct{}

func (VirtualNetworkDisabled) bluetoothResponse() {}

// VirtualDeviceRegistered confirms a fleet registration.
type VirtualDeviceRegistered struct {
	DeviceID DeviceID `json:"device_id"`
}

func (VirtualDeviceRegistered) bluetoothResponse() {}

// VirtualCommandExecuted reports the result of a SimulateDeviceCommand.
type VirtualCommandExecuted struct {
	DeviceID DeviceID `json:"device_id"`
	Command  string   `json:"command"`
	Response string   `json:"response"`
}

func (VirtualCommandExecuted) bluetoothResponse() {}

// BluetoothError reports a failure not tied to a single command.
type BluetoothError struct {
	Error string `json:"error"`
}

func (BluetoothError) bluetoothResponse() {}
