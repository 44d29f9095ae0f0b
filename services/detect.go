package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/parcelshield/shieldkit/core"
	"go.uber.org/zap"
)

// DetectionState tracks the detection view's lifecycle. Selecting a
// new file restarts the cycle from any state.
type DetectionState int

const (
	StateIdle DetectionState = iota
	StateFileSelected
	StatePreviewing
	StateDetecting
	StateResolved
	StateFailed
)

func (s DetectionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFileSelected:
		return "file-selected"
	case StatePreviewing:
		return "previewing"
	case StateDetecting:
		return "detecting"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("DetectionState(%d)", int(s))
	}
}

// DetectionController runs the AI-image check: pick a file, preview
// it, submit it, show the verdict. Detection works logged in or out;
// the token rides along when present.
type DetectionController struct {
	api    *APIClient
	render core.Renderer
	notify core.Notifier
	log    *zap.SugaredLogger

	mu    sync.Mutex
	state DetectionState
	file  *core.FileRef
}

func NewDetectionController(api *APIClient, render core.Renderer, notify core.Notifier, log *zap.SugaredLogger) *DetectionController {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &DetectionController{
		api:    api,
		render: render,
		notify: notify,
		log:    log,
	}
}

func (c *DetectionController) State() DetectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SelectFile stages a file and shows its preview. A nil file is
// ignored.
func (c *DetectionController) SelectFile(file *core.FileRef) {
	if file == nil {
		return
	}

	c.mu.Lock()
	c.file = file
	c.state = StateFileSelected
	c.mu.Unlock()

	c.render.Preview(core.TargetPreview, file.Name, file.Size)

	c.mu.Lock()
	c.state = StatePreviewing
	c.mu.Unlock()
}

// Detect submits the staged file and renders the verdict. The result
// target shows the loading state before the request leaves.
func (c *DetectionController) Detect(ctx context.Context) error {
	c.mu.Lock()
	file := c.file
	if file == nil {
		c.mu.Unlock()
		c.notify.Alert("Please select an image first")
		return core.ErrNoFileSelected
	}
	c.state = StateDetecting
	c.mu.Unlock()

	c.render.Loading(core.TargetDetection)

	content, err := file.Open()
	if err != nil {
		c.fail()
		c.render.Error(core.TargetDetection, "Could not read the selected file")
		return fmt.Errorf("open detection file %q: %w", file.Name, err)
	}
	defer content.Close()

	reply, err := c.api.PostMultipart(ctx, "/detect-ai-image", nil, &FormFile{
		Field:   "image",
		Name:    file.Name,
		Content: content,
	})
	if err != nil {
		c.fail()
		c.render.Error(core.TargetDetection, "Network error: "+err.Error())
		return err
	}
	if !reply.OK() {
		c.fail()
		c.render.Error(core.TargetDetection, reply.MessageOr("Detection failed"))
		return reply.DomainError("Detection failed")
	}

	var result core.DetectionResult
	if err := reply.Decode(&result); err != nil {
		c.fail()
		c.render.Error(core.TargetDetection, "Detection failed")
		return fmt.Errorf("decode detection result: %w", err)
	}

	c.mu.Lock()
	c.state = StateResolved
	c.mu.Unlock()

	c.render.Verdict(core.TargetDetection, &result)
	c.log.Infow("detection complete", "file", file.Name, "verdict", result.Label())
	return nil
}

func (c *DetectionController) fail() {
	c.mu.Lock()
	c.state = StateFailed
	c.mu.Unlock()
}
