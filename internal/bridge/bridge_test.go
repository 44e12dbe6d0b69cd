package bridge

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/app4dog/game-play/internal/protocol"
)

func testBridge() *Bridge {
	return New(log.New(io.Discard))
}

func TestSubmitEventRoutesToMatchingQueue(t *testing.T) {
	b := testBridge()

	raw, err := protocol.EncodeAudioResponse(protocol.AudioPlayCompleted{
		RequestID: "a1", Success: true, DurationSeconds: 1.2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SubmitEvent(ChannelAudioResponse, raw); err != nil {
		t.Fatalf("SubmitEvent: %v", err)
	}

	var got []protocol.AudioResponse
	b.DrainAudioResponses(func(r protocol.AudioResponse) { got = append(got, r) })
	if len(got) != 1 {
		t.Fatalf("drained %d responses, want 1", len(got))
	}
	done, ok := got[0].(protocol.AudioPlayCompleted)
	if !ok || done.RequestID != "a1" {
		t.Errorf("drained %+v, want AudioPlayCompleted for a1", got[0])
	}
}

func TestSubmitEventMalformedPayloadMutatesNothing(t *testing.T) {
	b := testBridge()

	err := b.SubmitEvent(ChannelHostEvent, []byte(`{"type":"NoSuchVariant"}`))
	if err == nil {
		t.Fatal("SubmitEvent accepted an unknown variant")
	}
	if !protocol.IsKind(err, protocol.ErrDecode) {
		t.Errorf("error = %v, want decode error", err)
	}

	stats := b.Stats()
	if stats.HostEvents != 0 {
		t.Errorf("host event queue depth = %d after rejected submit, want 0", stats.HostEvents)
	}
}

func TestSubmitEventUnknownChannel(t *testing.T) {
	b := testBridge()
	if err := b.SubmitEvent(Channel("telemetry"), []byte(`{}`)); err == nil {
		t.Fatal("SubmitEvent accepted an unknown channel")
	}
}

func TestPollEncodesDispatchedRequests(t *testing.T) {
	b := testBridge()

	b.DispatchAudioRequest(protocol.AudioPlay{RequestID: "a1", SoundID: "yipee", Context: protocol.ContextTest, Volume: 0.8})
	b.DispatchAudioRequest(protocol.AudioStop{RequestID: "a2"})

	frames := b.PollAudioRequests()
	if len(frames) != 2 {
		t.Fatalf("polled %d frames, want 2", len(frames))
	}

	// FIFO across poll: first dispatched comes out first.
	first, err := protocol.DecodeAudioRequest(frames[0])
	if err != nil {
		t.Fatal(err)
	}
	if first.AudioRequestID() != "a1" {
		t.Errorf("first polled request = %s, want a1", first.AudioRequestID())
	}

	if again := b.PollAudioRequests(); len(again) != 0 {
		t.Errorf("second poll returned %d frames, want 0", len(again))
	}
}

func TestInteractionAndLoadCritterFlow(t *testing.T) {
	b := testBridge()

	b.SubmitLoadCritter("chirpy_bird")
	b.SubmitInteraction(InteractionSwipe, 10, 20, 1, 0)

	var loads []LoadCritter
	b.DrainLoadCritter(func(l LoadCritter) { loads = append(loads, l) })
	if len(loads) != 1 || loads[0].CritterID != "chirpy_bird" {
		t.Errorf("loads = %+v, want one load of chirpy_bird", loads)
	}

	var acts []Interaction
	b.DrainInteractions(func(i Interaction) { acts = append(acts, i) })
	if len(acts) != 1 || acts[0].Kind != InteractionSwipe || acts[0].DirX != 1 {
		t.Errorf("interactions = %+v, want one swipe with DirX=1", acts)
	}
}
