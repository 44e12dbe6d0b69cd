package protocol

// PreviewAnchor names the screen corner the camera preview docks to.
type PreviewAnchor string

const (
	AnchorTopLeft     PreviewAnchor = "top-left"
	AnchorTopRight    PreviewAnchor = "top-right"
	AnchorBottomLeft  PreviewAnchor = "bottom-left"
	AnchorBottomRight PreviewAnchor = "bottom-right"
)

// PreviewRequest controls the camera preview overlay.
type PreviewRequest interface {
	previewRequest()
}

// PreviewEnable shows the preview at the given scale and anchor.
type PreviewEnable struct {
	Scale  float64       `json:"scale"`
	Anchor PreviewAnchor `json:"anchor"`
}

func (PreviewEnable) previewRequest() {}

// PreviewDisable hides the preview.
type PreviewDisable struct{}

func (PreviewDisable) previewRequest() {}

// CameraFrame is one raw frame submitted by the host capture pipeline.
// Data is RGB bytes; decoding and posture inference are the consumer's
// problem, not the bridge's.
type CameraFrame struct {
	Width     int
	Height    int
	Data      []byte
	Timestamp float64 // host clock, milliseconds
}
