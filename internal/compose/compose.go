package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/orgball2608/insta-feed/pkg/delay"
	"github.com/orgball2608/insta-feed/pkg/errors"
	"github.com/orgball2608/insta-feed/pkg/logger"
)

// MaxCaption is the longest caption a post may carry, in characters.
const MaxCaption = 2200

// Draft is the post being composed.
type Draft struct {
	ID        string `validate:"required,uuid4"`
	ImagePath string `validate:"required,file"`
	ImageMIME string `validate:"required,startswith=image/"`
	Caption   string `validate:"max=2200"`
}

// Composer owns the create-post draft. It is driven from the UI loop.
type Composer struct {
	delays   *delay.Scheduler
	submit   time.Duration
	validate *validator.Validate
	logger   logger.Logger

	draft      Draft
	submitting bool
	pending    *delay.Handle
}

func New(delays *delay.Scheduler, submitDelay time.Duration, log logger.Logger) *Composer {
	c := &Composer{
		delays:   delays,
		submit:   submitDelay,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   log.WithComponent("Compose"),
	}
	c.reset()
	return c
}

func (c *Composer) Draft() Draft      { return c.draft }
func (c *Composer) Submitting() bool  { return c.submitting }
func (c *Composer) HasImage() bool    { return c.draft.ImagePath != "" }
func (c *Composer) CanSubmit() bool   { return c.HasImage() && !c.submitting }
func (c *Composer) CanCancel() bool   { return !c.submitting }
func (c *Composer) Caption() string   { return c.draft.Caption }
func (c *Composer) ImagePath() string { return c.draft.ImagePath }

// SelectImage attaches the file at path if its content is an image. Anything
// else is rejected and the draft keeps its current image.
func (c *Composer) SelectImage(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.Wrap(errors.ErrInvalidInput, "no file selected")
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeCompose, "failed to read file")
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		c.logger.Info("Rejected non-image file", "path", path, "mime", mt.String())
		return errors.WrapWithCode(errors.ErrInvalidInput, errors.CodeCompose, fmt.Sprintf("%s is not an image", mt.String()))
	}

	c.draft.ImagePath = path
	c.draft.ImageMIME = mt.String()
	c.logger.Debug("Image selected", "draftID", c.draft.ID, "mime", mt.String())
	return nil
}

// ClearImage drops the selected image and keeps the caption.
func (c *Composer) ClearImage() {
	c.draft.ImagePath = ""
	c.draft.ImageMIME = ""
}

func (c *Composer) SetCaption(caption string) {
	c.draft.Caption = caption
}

// Submit validates the draft and starts the submit delay. The caller waits
// on the handle and then calls Finish. There is no failure branch after the
// delay starts.
func (c *Composer) Submit() (*delay.Handle, error) {
	if c.submitting {
		return nil, errors.Wrap(errors.ErrInvalidInput, "already submitting")
	}
	if err := c.validate.Struct(c.draft); err != nil {
		return nil, errors.WrapWithCode(fmt.Errorf("%w: %w", errors.ErrInvalidInput, err), errors.CodeCompose, "invalid draft")
	}

	h, err := c.delays.After("submit-post", c.submit, nil)
	if err != nil {
		return nil, err
	}

	c.submitting = true
	c.pending = h
	c.logger.Info("Submitting post", "draftID", c.draft.ID, "captionLength", len([]rune(c.draft.Caption)))
	return h, nil
}

// Finish ends a submission: the draft is cleared unconditionally.
func (c *Composer) Finish() {
	c.logger.Info("Post submitted", "draftID", c.draft.ID)
	c.reset()
}

// Teardown invalidates a pending submit so it never lands on a gone view.
func (c *Composer) Teardown() {
	if c.pending != nil && c.pending.Cancel() {
		c.logger.Debug("Pending submit cancelled", "draftID", c.draft.ID)
	}
	c.reset()
}

func (c *Composer) reset() {
	c.draft = Draft{ID: uuid.NewString()}
	c.submitting = false
	c.pending = nil
}
