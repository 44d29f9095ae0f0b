package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/parcelshield/shieldkit/core"
	"go.uber.org/zap"
)

// uploadFlashClear is how long the upload outcome flash stays visible.
const uploadFlashClear = 5 * time.Second

// UploadController validates and submits admin content uploads. At
// most one upload is in flight at a time; the submit control is
// disabled for the duration and re-enabled on every exit path.
type UploadController struct {
	api      *APIClient
	sessions *SessionStore
	notify   core.Notifier
	log      *zap.SugaredLogger

	inFlight atomic.Bool
}

func NewUploadController(api *APIClient, sessions *SessionStore, notify core.Notifier, log *zap.SugaredLogger) *UploadController {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &UploadController{
		api:      api,
		sessions: sessions,
		notify:   notify,
		log:      log,
	}
}

// ValidateDraft checks a draft without side effects. Checks run in a
// fixed order: kind, file presence, title, file extension. The first
// failure wins.
func ValidateDraft(draft *core.UploadDraft) (*core.Resource, error) {
	res, err := core.ResourceFor(draft.Kind)
	if err != nil {
		return nil, err
	}
	if draft.File == nil {
		return nil, core.ErrFileRequired
	}
	if strings.TrimSpace(draft.Title) == "" {
		return nil, core.ErrTitleRequired
	}
	if err := res.ValidateExtension(draft.File.Name); err != nil {
		return nil, err
	}
	return res, nil
}

// Submit validates and uploads one draft. Validation and auth failures
// alert and return before any request is sent.
func (c *UploadController) Submit(ctx context.Context, draft *core.UploadDraft) error {
	// Step 1: pure validation, no side effects beyond the alert.
	res, err := ValidateDraft(draft)
	if err != nil {
		c.notify.Alert(err.Error())
		return err
	}

	// Step 2: uploads require a session.
	if c.sessions.Token() == "" {
		c.notify.Alert("You must be logged in to upload content")
		return core.ErrAuthRequired
	}

	// Step 3: claim the single upload slot.
	if !c.inFlight.CompareAndSwap(false, true) {
		return core.ErrUploadInFlight
	}
	c.notify.SetBusy(core.ControlUploadSubmit, true)
	defer func() {
		c.notify.SetBusy(core.ControlUploadSubmit, false)
		c.inFlight.Store(false)
	}()

	// Step 4: assemble the form. The title doubles as the headline so
	// the server accepts either field name.
	title := strings.TrimSpace(draft.Title)
	fields := map[string]string{
		"title":    title,
		"headline": title,
	}
	if res.AllowsNewsLink && strings.TrimSpace(draft.NewsLink) != "" {
		fields["news_link"] = strings.TrimSpace(draft.NewsLink)
	}

	content, err := draft.File.Open()
	if err != nil {
		c.notify.Alert("Could not read the selected file")
		return fmt.Errorf("open upload file %q: %w", draft.File.Name, err)
	}
	defer content.Close()

	// Step 5: submit and report the outcome on both channels.
	c.notify.Flash(core.AreaAdminMsg, core.ToneInfo, "Uploading... Please wait", 0)

	reply, err := c.api.PostMultipart(ctx, fmt.Sprintf("/admin/%s", draft.Kind), fields, &FormFile{
		Field:   res.MultipartField,
		Name:    draft.File.Name,
		Content: content,
	})
	if err != nil {
		msg := "Network error during upload. Please check your connection and try again."
		c.notify.Flash(core.AreaAdminMsg, core.ToneError, msg, 0)
		c.notify.Alert(msg)
		return err
	}
	if !reply.OK() {
		msg := reply.MessageOr("Upload failed")
		c.notify.Flash(core.AreaAdminMsg, core.ToneError, msg, 0)
		c.notify.Alert(msg)
		return reply.DomainError("Upload failed")
	}

	msg := reply.MessageOr("Upload successful!")
	c.notify.Flash(core.AreaAdminMsg, core.ToneSuccess, msg, uploadFlashClear)
	c.notify.Alert(msg)
	c.log.Infow("upload complete", "kind", draft.Kind, "file", draft.File.Name)
	return nil
}
