package bridge

import (
	"github.com/charmbracelet/log"

	"github.com/app4dog/game-play/internal/protocol"
)

// InteractionKind is how the player touched the play surface.
type InteractionKind string

const (
	InteractionTap   InteractionKind = "tap"
	InteractionSwipe InteractionKind = "swipe"
	InteractionHold  InteractionKind = "hold"
)

// Interaction is one pointer interaction submitted by the host.
type Interaction struct {
	Kind InteractionKind
	X, Y float64
	DirX float64
	DirY float64
}

// LoadCritter asks the simulation to load a critter by its canonical ID.
type LoadCritter struct {
	CritterID string
}

// Channel tags the inbound event categories accepted by SubmitEvent.
type Channel string

const (
	ChannelAudioResponse     Channel = "audio_response"
	ChannelBluetoothResponse Channel = "bluetooth_response"
	ChannelHostEvent         Channel = "host_event"
)

// Bridge owns one FIFO per message category and is the single object shared
// between the host-facing boundary functions and the tick scheduler. It is
// constructed once at startup and passed by reference to both sides; there
// is no package-global state.
type Bridge struct {
	logger *log.Logger

	// host → engine
	loadCritter    Queue[LoadCritter]
	interactions   Queue[Interaction]
	audioResponses Queue[protocol.AudioResponse]
	btResponses    Queue[protocol.BluetoothResponse]
	hostEvents     Queue[protocol.HostEvent]
	cameraFrames   Queue[protocol.CameraFrame]
	cameraPreview  Queue[protocol.PreviewRequest]

	// engine → host
	audioRequests Queue[protocol.AudioRequest]
	btRequests    Queue[protocol.BluetoothRequest]
	engineEvents  Queue[protocol.EngineEvent]
}

// New creates a bridge. The logger is used only for fail-soft diagnostics;
// the bridge never fails hard.
func New(logger *log.Logger) *Bridge {
	return &Bridge{logger: logger.WithPrefix("bridge")}
}

// --- host-facing submit side (any call context) ---

// SubmitEvent decodes a serialized message for the given channel and queues
// it for the next tick. On decode failure it returns the error and mutates
// nothing; malformed input never reaches the simulation.
func (b *Bridge) SubmitEvent(ch Channel, data []byte) error {
	switch ch {
	case ChannelAudioResponse:
		resp, err := protocol.DecodeAudioResponse(data)
		if err != nil {
			b.logger.Warn("discarding malformed audio response", "err", err)
			return err
		}
		b.audioResponses.Enqueue(resp)
	case ChannelBluetoothResponse:
		resp, err := protocol.DecodeBluetoothResponse(data)
		if err != nil {
			b.logger.Warn("discarding malformed bluetooth response", "err", err)
			return err
		}
		b.btResponses.Enqueue(resp)
	case ChannelHostEvent:
		ev, err := protocol.DecodeHostEvent(data)
		if err != nil {
			b.logger.Warn("discarding malformed host event", "err", err)
			return err
		}
		b.hostEvents.Enqueue(ev)
	default:
		err := protocol.NewError(protocol.ErrDecode, string(ch), "unknown channel")
		b.logger.Warn("discarding event for unknown channel", "channel", ch)
		return err
	}
	return nil
}

// SubmitAudioResponse queues an already-decoded audio response.
func (b *Bridge) SubmitAudioResponse(resp protocol.AudioResponse) {
	b.audioResponses.Enqueue(resp)
}

// SubmitBluetoothResponse queues an already-decoded Bluetooth response.
func (b *Bridge) SubmitBluetoothResponse(resp protocol.BluetoothResponse) {
	b.btResponses.Enqueue(resp)
}

// SubmitHostEvent queues an already-decoded host event.
func (b *Bridge) SubmitHostEvent(ev protocol.HostEvent) {
	b.hostEvents.Enqueue(ev)
}

// SubmitLoadCritter queues a critter load.
func (b *Bridge) SubmitLoadCritter(critterID string) {
	b.loadCritter.Enqueue(LoadCritter{CritterID: critterID})
}

// SubmitInteraction queues a pointer interaction.
func (b *Bridge) SubmitInteraction(kind InteractionKind, x, y, dirX, dirY float64) {
	b.interactions.Enqueue(Interaction{Kind: kind, X: x, Y: y, DirX: dirX, DirY: dirY})
}

// SubmitCameraFrame queues a raw camera frame.
func (b *Bridge) SubmitCameraFrame(frame protocol.CameraFrame) {
	b.cameraFrames.Enqueue(frame)
}

// SubmitCameraPreview queues a preview control request.
func (b *Bridge) SubmitCameraPreview(req protocol.PreviewRequest) {
	b.cameraPreview.Enqueue(req)
}

// --- host-facing poll side (once per frame per channel) ---

// PollAudioRequests drains and serializes every audio request the engine has
// dispatched since the last poll. Requests that fail to encode are logged
// and skipped, never redelivered.
func (b *Bridge) PollAudioRequests() [][]byte {
	var out [][]byte
	b.audioRequests.Drain(func(req protocol.AudioRequest) {
		data, err := protocol.EncodeAudioRequest(req)
		if err != nil {
			b.logger.Warn("dropping unencodable audio request", "err", err)
			return
		}
		out = append(out, data)
	})
	return out
}

// PollBluetoothRequests drains and serializes outbound Bluetooth requests.
func (b *Bridge) PollBluetoothRequests() [][]byte {
	var out [][]byte
	b.btRequests.Drain(func(req protocol.BluetoothRequest) {
		data, err := protocol.EncodeBluetoothRequest(req)
		if err != nil {
			b.logger.Warn("dropping unencodable bluetooth request", "err", err)
			return
		}
		out = append(out, data)
	})
	return out
}

// PollEngineEvents drains and serializes outbound generic engine events.
func (b *Bridge) PollEngineEvents() [][]byte {
	var out [][]byte
	b.engineEvents.Drain(func(ev protocol.EngineEvent) {
		data, err := protocol.EncodeEngineEvent(ev)
		if err != nil {
			b.logger.Warn("dropping unencodable engine event", "err", err)
			return
		}
		out = append(out, data)
	})
	return out
}

// --- engine-facing side (tick context only) ---

// DispatchAudioRequest queues an audio request for the host.
func (b *Bridge) DispatchAudioRequest(req protocol.AudioRequest) {
	b.audioRequests.Enqueue(req)
}

// DispatchBluetoothRequest queues a Bluetooth request for the host.
func (b *Bridge) DispatchBluetoothRequest(req protocol.BluetoothRequest) {
	b.btRequests.Enqueue(req)
}

// DispatchEngineEvent queues a generic event for the host.
func (b *Bridge) DispatchEngineEvent(ev protocol.EngineEvent) {
	b.engineEvents.Enqueue(ev)
}

// DrainLoadCritter feeds queued critter loads to sink in FIFO order.
func (b *Bridge) DrainLoadCritter(sink func(LoadCritter)) { b.loadCritter.Drain(sink) }

// DrainInteractions feeds queued interactions to sink in FIFO order.
func (b *Bridge) DrainInteractions(sink func(Interaction)) { b.interactions.Drain(sink) }

// DrainAudioResponses feeds queued audio responses to sink in FIFO order.
func (b *Bridge) DrainAudioResponses(sink func(protocol.AudioResponse)) {
	b.audioResponses.Drain(sink)
}

// DrainBluetoothResponses feeds queued Bluetooth responses to sink in FIFO order.
func (b *Bridge) DrainBluetoothResponses(sink func(protocol.BluetoothResponse)) {
	b.btResponses.Drain(sink)
}

// DrainHostEvents feeds queued host events to sink in FIFO order.
func (b *Bridge) DrainHostEvents(sink func(protocol.HostEvent)) { b.hostEvents.Drain(sink) }

// DrainCameraFrames feeds queued camera frames to sink in FIFO order.
func (b *Bridge) DrainCameraFrames(sink func(protocol.CameraFrame)) { b.cameraFrames.Drain(sink) }

// DrainCameraPreview feeds queued preview requests to sink in FIFO order.
func (b *Bridge) DrainCameraPreview(sink func(protocol.PreviewRequest)) { b.cameraPreview.Drain(sink) }

// QueueStats is a point-in-time snapshot of queue depths, for diagnostics.
type QueueStats struct {
	LoadCritter        int
	Interactions       int
	AudioResponses     int
	BluetoothResponses int
	HostEvents         int
	CameraFrames       int
	CameraPreview      int
	AudioRequests      int
	BluetoothRequests  int
	EngineEvents       int
}

// Stats reports current queue depths.
func (b *Bridge) Stats() QueueStats {
	return QueueStats{
		LoadCritter:        b.loadCritter.Len(),
		Interactions:       b.interactions.Len(),
		AudioResponses:     b.audioResponses.Len(),
		BluetoothResponses: b.btResponses.Len(),
		HostEvents:         b.hostEvents.Len(),
		CameraFrames:       b.cameraFrames.Len(),
		CameraPreview:      b.cameraPreview.Len(),
		AudioRequests:      b.audioRequests.Len(),
		BluetoothRequests:  b.btRequests.Len(),
		EngineEvents:       b.engineEvents.Len(),
	}
}
