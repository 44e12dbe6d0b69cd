package protocol

import (
	"encoding/json"
	"fmt"
)

// Every wire message is a JSON object with a "type" discriminant naming one
// variant of the channel's closed set. Encoding re-marshals the variant's
// fields and splices the discriminant in; decoding reads the discriminant and
// unmarshals into the matching variant. Unknown discriminants and malformed
// payloads surface as ErrDecode and never reach the correlation table.

type envelope struct {
	Type string `json:"type"`
}

func encodeTagged(typ string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", typ, err)
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encode %s: %w", typ, err)
	}
	tag, err := json.Marshal(typ)
	if err != nil {
		return nil, err
	}
	fields["type"] = tag
	return json.Marshal(fields)
}

func decodeErr(channel string, err error) *ServiceError {
	return NewError(ErrDecode, channel, err.Error())
}

func unknownVariant(channel, typ string) *ServiceError {
	return NewError(ErrDecode, channel, "unknown variant "+typ)
}

// EncodeAudioRequest serializes an audio request for the host.
func EncodeAudioRequest(r AudioRequest) ([]byte, error) {
	switch v := r.(type) {
	case AudioPlay:
		return encodeTagged("Play", v)
	case AudioStop:
		return encodeTagged("Stop", v)
	case AudioSetVolume:
		return encodeTagged("SetVolume", v)
	case AudioTest:
		return encodeTagged("Test", v)
	default:
		return nil, fmt.Errorf("encode audio request: unhandled variant %T", r)
	}
}

// DecodeAudioRequest parses an audio request received from the engine side.
func DecodeAudioRequest(data []byte) (AudioRequest, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, decodeErr("audio_request", err)
	}
	switch env.Type {
	case "Play":
		var v AudioPlay
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("audio_request", err)
		}
		return v, nil
	case "Stop":
		var v AudioStop
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("audio_request", err)
		}
		return v, nil
	case "SetVolume":
		var v AudioSetVolume
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("audio_request", err)
		}
		return v, nil
	case "Test":
		var v AudioTest
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("audio_request", err)
		}
		return v, nil
	default:
		return nil, unknownVariant("audio_request", env.Type)
	}
}

// EncodeAudioResponse serializes an audio response for the engine.
func EncodeAudioResponse(r AudioResponse) ([]byte, error) {
	switch v := r.(type) {
	case AudioPlayCompleted:
		return encodeTagged("PlayCompleted", v)
	case AudioStopped:
		return encodeTagged("Stopped", v)
	case AudioVolumeChanged:
		return encodeTagged("VolumeChanged", v)
	case AudioTestCompleted:
		return encodeTagged("TestCompleted", v)
	default:
		return nil, fmt.Errorf("encode audio response: unhandled variant %T", r)
	}
}

// DecodeAudioResponse parses an audio response received from the host.
func DecodeAudioResponse(data []byte) (AudioResponse, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, decodeErr("audio_response", err)
	}
	switch env.Type {
	case "PlayCompleted":
		var v AudioPlayCompleted
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("audio_response", err)
		}
		return v, nil
	case "Stopped":
		var v AudioStopped
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("audio_response", err)
		}
		return v, nil
	case "VolumeChanged":
		var v AudioVolumeChanged
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("audio_response", err)
		}
		return v, nil
	case "TestCompleted":
		var v AudioTestCompleted
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("audio_response", err)
		}
		return v, nil
	default:
		return nil, unknownVariant("audio_response", env.Type)
	}
}

// EncodeBluetoothRequest serializes a Bluetooth request.
func EncodeBluetoothRequest(r BluetoothRequest) ([]byte, error) {
	switch v := r.(type) {
	case StartScan:
		return encodeTagged("StartScan", v)
	case StopScan:
		return encodeTagged("StopScan", v)
	case Connect:
		return encodeTagged("Connect", v)
	case Disconnect:
		return encodeTagged("Disconnect", v)
	case Pair:
		return encodeTagged("Pair", v)
	case SendCommand:
		return encodeTagged("SendCommand", v)
	case EnableVirtualNetwork:
		return encodeTagged("EnableVirtualNetwork", v)
	case DisableVirtualNetwork:
		return encodeTagged("DisableVirtualNetwork", v)
	case RegisterVirtualDevice:
		return encodeTagged("RegisterVirtualDevice", v)
	case RemoveVirtualDevice:
		return encodeTagged("RemoveVirtualDevice", v)
	case SimulateDeviceCommand:
		return encodeTagged("SimulateDeviceCommand", v)
	default:
		return nil, fmt.Errorf("encode bluetooth request: unhandled variant %T", r)
	}
}

// DecodeBluetoothRequest parses a Bluetooth request.
func DecodeBluetoothRequest(data []byte) (BluetoothRequest, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, decodeErr("bluetooth_request", err)
	}
	switch env.Type {
	case "StartScan":
		var v StartScan
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_request", err)
		}
		return v, nil
	case "StopScan":
		return StopScan{}, nil
	case "Connect":
		var v Connect
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_request", err)
		}
		return v, nil
	case "Disconnect":
		var v Disconnect
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_request", err)
		}
		return v, nil
	case "Pair":
		var v Pair
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_request", err)
		}
		return v, nil
	case "SendCommand":
		var v SendCommand
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_request", err)
		}
		return v, nil
	case "EnableVirtualNetwork":
		return EnableVirtualNetwork{}, nil
	case "DisableVirtualNetwork":
		return DisableVirtualNetwork{}, nil
	case "RegisterVirtualDevice":
		var v RegisterVirtualDevice
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_request", err)
		}
		return v, nil
	case "RemoveVirtualDevice":
		var v RemoveVirtualDevice
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_request", err)
		}
		return v, nil
	case "SimulateDeviceCommand":
		var v SimulateDeviceCommand
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_request", err)
		}
		return v, nil
	default:
		return nil, unknownVariant("bluetooth_request", env.Type)
	}
}

// EncodeBluetoothResponse serializes a Bluetooth response.
func EncodeBluetoothResponse(r BluetoothResponse) ([]byte, error) {
	switch v := r.(type) {
	case ScanStarted:
		return encodeTagged("ScanStarted", v)
	case ScanStopped:
		return encodeTagged("ScanStopped", v)
	case DeviceDiscovered:
		return encodeTagged("DeviceDiscovered", v)
	case Connected:
		return encodeTagged("Connected", v)
	case Disconnected:
		return encodeTagged("Disconnected", v)
	case Paired:
		return encodeTagged("Paired", v)
	case PairingFailed:
		return encodeTagged("PairingFailed", v)
	case CommandResponse:
		return encodeTagged("CommandResponse", v)
	case CommandFailed:
		return encodeTagged("CommandFailed", v)
	case VirtualNetworkEnabled:
		return encodeTagged("VirtualNetworkEnabled", v)
	case VirtualNetworkDisabled:
		return encodeTagged("VirtualNetworkDisabled", v)
	case VirtualDeviceRegistered:
		return encodeTagged("VirtualDeviceRegistered", v)
	case VirtualCommandExecuted:
		return encodeTagged("VirtualCommandExecuted", v)
	case BluetoothError:
		return encodeTagged("Error", v)
	default:
		return nil, fmt.Errorf("encode bluetooth response: unhandled variant %T", r)
	}
}

// DecodeBluetoothResponse parses a Bluetooth response.
func DecodeBluetoothResponse(data []byte) (BluetoothResponse, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, decodeErr("bluetooth_response", err)
	}
	switch env.Type {
	case "ScanStarted":
		return ScanStarted{}, nil
	case "ScanStopped":
		return ScanStopped{}, nil
	case "DeviceDiscovered":
		var v DeviceDiscovered
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_response", err)
		}
		return v, nil
	case "Connected":
		var v Connected
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_response", err)
		}
		return v, nil
	case "Disconnected":
		var v Disconnected
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_response", err)
		}
		return v, nil
	case "Paired":
		var v Paired
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_response", err)
		}
		return v, nil
	case "PairingFailed":
		var v PairingFailed
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_response", err)
		}
		return v, nil
	case "CommandResponse":
		var v CommandResponse
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_response", err)
		}
		return v, nil
	case "CommandFailed":
		var v CommandFailed
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_response", err)
		}
		return v, nil
	case "VirtualNetworkEnabled":
		return VirtualNetworkEnabled{}, nil
	case "VirtualNetworkDisabled":
		return VirtualNetworkDisabled{}, nil
	case "VirtualDeviceRegistered":
		var v VirtualDeviceRegistered
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_response", err)
		}
		return v, nil
	case "VirtualCommandExecuted":
		var v VirtualCommandExecuted
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_response", err)
		}
		return v, nil
	case "Error":
		var v BluetoothError
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("bluetooth_response", err)
		}
		return v, nil
	default:
		return nil, unknownVariant("bluetooth_response", env.Type)
	}
}

// EncodeEngineEvent serializes a generic engine-to-host event.
func EncodeEngineEvent(e EngineEvent) ([]byte, error) {
	switch v := e.(type) {
	case PlayAudio:
		return encodeTagged("PlayAudio", v)
	case BluetoothScan:
		return encodeTagged("BluetoothScan", v)
	case TestEvent:
		return encodeTagged("TestEvent", v)
	default:
		return nil, fmt.Errorf("encode engine event: unhandled variant %T", e)
	}
}

// DecodeEngineEvent parses a generic engine-to-host event.
func DecodeEngineEvent(data []byte) (EngineEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, decodeErr("engine_event", err)
	}
	switch env.Type {
	case "PlayAudio":
		var v PlayAudio
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("engine_event", err)
		}
		return v, nil
	case "BluetoothScan":
		var v BluetoothScan
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("engine_event", err)
		}
		return v, nil
	case "TestEvent":
		var v TestEvent
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("engine_event", err)
		}
		return v, nil
	default:
		return nil, unknownVariant("engine_event", env.Type)
	}
}

// EncodeHostEvent serializes a generic host-to-engine event.
func EncodeHostEvent(e HostEvent) ([]byte, error) {
	switch v := e.(type) {
	case AudioCompleted:
		return encodeTagged("AudioCompleted", v)
	case BluetoothScanCompleted:
		return encodeTagged("BluetoothScanCompleted", v)
	case TestEventResponse:
		return encodeTagged("TestEventResponse", v)
	case UserGesture:
		return encodeTagged("UserGesture", v)
	case SettingsUpdated:
		return encodeTagged("SettingsUpdated", v)
	default:
		return nil, fmt.Errorf("encode host event: unhandled variant %T", e)
	}
}

// DecodeHostEvent parses a generic host-to-engine event.
func DecodeHostEvent(data []byte) (HostEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, decodeErr("host_event", err)
	}
	switch env.Type {
	case "AudioCompleted":
		var v AudioCompleted
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("host_event", err)
		}
		return v, nil
	case "BluetoothScanCompleted":
		var v BluetoothScanCompleted
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("host_event", err)
		}
		return v, nil
	case "TestEventResponse":
		var v TestEventResponse
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("host_event", err)
		}
		return v, nil
	case "UserGesture":
		var v UserGesture
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("host_event", err)
		}
		return v, nil
	case "SettingsUpdated":
		var v SettingsUpdated
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, decodeErr("host_event", err)
		}
		return v, nil
	default:
		return nil, unknownVariant("host_event", env.Type)
	}
}
