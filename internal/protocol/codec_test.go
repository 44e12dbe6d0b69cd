package protocol

import (
	"reflect"
	"testing"
)

func TestAudioRoundTrip(t *testing.T) {
	requests := []AudioRequest{
		AudioPlay{RequestID: "a1", SoundID: "yipee", Context: ContextTest, Volume: 0.8},
		AudioStop{RequestID: "a2", SoundID: "enter_area"},
		AudioStop{RequestID: "a3"}, // stop all
		AudioSetVolume{RequestID: "a4", Volume: 0.5},
		AudioTest{RequestID: "a5", TestType: "latency"},
	}
	for _, req := range requests {
		data, err := EncodeAudioRequest(req)
		if err != nil {
			t.Fatalf("encode %T: %v", req, err)
		}
		got, err := DecodeAudioRequest(data)
		if err != nil {
			t.Fatalf("decode %T: %v", req, err)
		}
		if !reflect.DeepEqual(got, req) {
			t.Errorf("round trip %T: got %+v, want %+v", req, got, req)
		}
	}

	responses := []AudioResponse{
		AudioPlayCompleted{RequestID: "a1", Success: true, DurationSeconds: 1.2},
		AudioPlayCompleted{RequestID: "a2", Success: false, ErrorMessage: "codec unavailable"},
		AudioStopped{RequestID: "a3", Success: true},
		AudioVolumeChanged{RequestID: "a4", NewVolume: 0.5},
		AudioTestCompleted{RequestID: "a5", Result: "ok"},
	}
	for _, resp := range responses {
		data, err := EncodeAudioResponse(resp)
		if err != nil {
			t.Fatalf("encode %T: %v", resp, err)
		}
		got, err := DecodeAudioResponse(data)
		if err != nil {
			t.Fatalf("decode %T: %v", resp, err)
		}
		if !reflect.DeepEqual(got, resp) {
			t.Errorf("round trip %T: got %+v, want %+v", resp, got, resp)
		}
	}
}

func TestBluetoothRoundTrip(t *testing.T) {
	requests := []BluetoothRequest{
		StartScan{DurationMS: 5000, Filter: &DeviceFilter{Types: []DeviceType{DeviceSmartCollar}, MinRSSI: -70}},
		StartScan{},
		StopScan{},
		Connect{DeviceID: "virtual_collar_001"},
		Disconnect{DeviceID: "virtual_collar_001"},
		Pair{DeviceID: "virtual_collar_001", PIN: "1234"},
		SendCommand{DeviceID: "virtual_collar_001", Command: "GetBatteryLevel", TimeoutMS: 5000},
		EnableVirtualNetwork{},
		DisableVirtualNetwork{},
		RegisterVirtualDevice{Device: VirtualDevice{
			Info:     DeviceInfo{ID: "virtual_feeder_001", Name: "Test Feeder", Type: DeviceFeedingStation, RSSI: -38},
			Handlers: []CommandHandler{{Pattern: "GetFoodLevel", Response: "1200g/2000g", DelayMS: 75}},
		}},
		RemoveVirtualDevice{DeviceID: "virtual_feeder_001"},
		SimulateDeviceCommand{DeviceID: "virtual_collar_001", Command: "Vibrate"},
	}
	for _, req := range requests {
		data, err := EncodeBluetoothRequest(req)
		if err != nil {
			t.Fatalf("encode %T: %v", req, err)
		}
		got, err := DecodeBluetoothRequest(data)
		if err != nil {
			t.Fatalf("decode %T: %v", req, err)
		}
		if !reflect.DeepEqual(got, req) {
			t.Errorf("round trip %T: got %+v, want %+v", req, got, req)
		}
	}

	responses := []BluetoothResponse{
		ScanStarted{},
		ScanStopped{},
		DeviceDiscovered{Device: DeviceInfo{ID: "virtual_collar_001", Name: "Test Smart Collar", Type: DeviceSmartCollar, RSSI: -45, BatteryLevel: 85}},
		Connected{DeviceID: "virtual_collar_001"},
		Disconnected{DeviceID: "virtual_collar_001", Reason: "requested"},
		Paired{DeviceID: "virtual_collar_001"},
		PairingFailed{DeviceID: "virtual_collar_001", Error: "pin rejected"},
		CommandResponse{DeviceID: "virtual_collar_001", Command: "GetBatteryLevel", Response: "85%", LatencyMS: 100},
		CommandFailed{DeviceID: "virtual_collar_001", Command: "Vibrate", Error: "not connected"},
		VirtualNetworkEnabled{},
		VirtualNetworkDisabled{},
		VirtualDeviceRegistered{DeviceID: "virtual_feeder_001"},
		VirtualCommandExecuted{DeviceID: "virtual_feeder_001", Command: "DispenseFood", Response: "Food dispensed"},
		BluetoothError{Error: "adapter not found"},
	}
	for _, resp := range responses {
		data, err := EncodeBluetoothResponse(resp)
		if err != nil {
			t.Fatalf("encode %T: %v", resp, err)
		}
		got, err := DecodeBluetoothResponse(data)
		if err != nil {
			t.Fatalf("decode %T: %v", resp, err)
		}
		if !reflect.DeepEqual(got, resp) {
			t.Errorf("round trip %T: got %+v, want %+v", resp, got, resp)
		}
	}
}

func TestHostChannelRoundTrip(t *testing.T) {
	engineEvents := []EngineEvent{
		PlayAudio{RequestID: "e1", SoundID: "yipee", Volume: 0.8},
		BluetoothScan{RequestID: "e2", DeviceFilter: "collar"},
		TestEvent{RequestID: "e3", Message: "ping"},
	}
	for _, ev := range engineEvents {
		data, err := EncodeEngineEvent(ev)
		if err != nil {
			t.Fatalf("encode %T: %v", ev, err)
		}
		got, err := DecodeEngineEvent(data)
		if err != nil {
			t.Fatalf("decode %T: %v", ev, err)
		}
		if !reflect.DeepEqual(got, ev) {
			t.Errorf("round trip %T: got %+v, want %+v", ev, got, ev)
		}
	}

	hostEvents := []HostEvent{
		AudioCompleted{RequestID: "e1", Success: true, DurationSeconds: 2.5},
		BluetoothScanCompleted{RequestID: "e2", Success: true, DevicesFound: []string{"virtual_collar_001"}},
		TestEventResponse{RequestID: "e3", ResponseData: "pong"},
		UserGesture{RequestID: "g1", Timestamp: 1234.5},
		SettingsUpdated{RequestID: "s1", Settings: SharedSettings{MusicEnabled: true, BGMVolume: 0.6, SFXVolume: 0.8}},
	}
	for _, ev := range hostEvents {
		data, err := EncodeHostEvent(ev)
		if err != nil {
			t.Fatalf("encode %T: %v", ev, err)
		}
		got, err := DecodeHostEvent(data)
		if err != nil {
			t.Fatalf("decode %T: %v", ev, err)
		}
		if !reflect.DeepEqual(got, ev) {
			t.Errorf("round trip %T: got %+v, want %+v", ev, got, ev)
		}
	}
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	cases := []string{
		`not json`,
		`{"type":"NoSuchVariant"}`,
		`{"missing":"discriminant"}`,
	}
	for _, raw := range cases {
		if _, err := DecodeHostEvent([]byte(raw)); err == nil {
			t.Errorf("DecodeHostEvent(%q) succeeded, want decode error", raw)
		} else if !IsKind(err, ErrDecode) {
			t.Errorf("DecodeHostEvent(%q) error kind = %v, want ErrDecode", raw, err)
		}
	}
}
