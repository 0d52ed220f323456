package leaveform

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/caaaae/E-Leave/internal/api"
	"github.com/caaaae/E-Leave/internal/debounce"
	"github.com/caaaae/E-Leave/internal/draft"

	"go.uber.org/zap"
)

const defaultSaveDelay = 500 * time.Millisecond

// SaveStatus is reported to the presentation layer after each autosave
// attempt.
type SaveStatus string

const (
	SaveStatusSaved  SaveStatus = "saved"
	SaveStatusFailed SaveStatus = "save failed"
)

// ProfileSource is the remote collaborator the controller patches the
// read-only fields from.
type ProfileSource interface {
	GetProfile(ctx context.Context) (*api.Profile, error)
}

// Controller mediates between user input, the debouncer and the draft
// store. One controller per form instance; it exclusively owns the draft
// key while alive.
type Controller struct {
	mu     sync.Mutex
	state  FormState
	edited bool

	// saveMu serializes draft writes against Reset so a save that already
	// passed its edited check cannot land after the draft was cleared.
	saveMu sync.Mutex

	drafts    *draft.Store
	deb       *debounce.Debouncer[FormState]
	saveDelay time.Duration
	onSave    func(SaveStatus)
	logger    *zap.Logger

	submitting atomic.Bool
}

type Option func(*Controller)

// WithSaveDelay bounds write amplification: at most one draft write per
// delay window regardless of keystroke rate.
func WithSaveDelay(d time.Duration) Option {
	return func(c *Controller) { c.saveDelay = d }
}

// WithSaveNotify registers the transient saved / save-failed indicator.
func WithSaveNotify(fn func(SaveStatus)) Option {
	return func(c *Controller) { c.onSave = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController hydrates from an existing draft when one is stored,
// otherwise starts from defaults. Attachments always start empty.
func NewController(ctx context.Context, drafts *draft.Store, opts ...Option) *Controller {
	c := &Controller{
		drafts:    drafts,
		saveDelay: defaultSaveDelay,
		logger:    zap.L().Named("leaveform.controller"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if rec, err := drafts.Load(ctx); err == nil && rec != nil {
		c.state = stateFromRecord(*rec)
		c.logger.Debug("hydrated form from saved draft")
	} else {
		c.state = DefaultState()
	}

	c.deb = debounce.New(c.saveDelay, c.persist)
	return c
}

// LoadProfile fetches the user profile and patches the read-only fields.
// Runs independently of user edits; last-write-wins for the profile fields
// only.
func (c *Controller) LoadProfile(ctx context.Context, src ProfileSource) error {
	p, err := src.GetProfile(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state = MergeProfile(c.state, *p)
	c.mu.Unlock()
	return nil
}

// State returns a copy of the current form state.
func (c *Controller) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller) Edited() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.edited
}

func (c *Controller) TotalDays() int {
	return c.State().TotalDays()
}

// SetField is the only write path for the scalar fields. Every accepted
// edit marks the form edited and reschedules the autosave.
func (c *Controller) SetField(f Field, v string) error {
	c.mu.Lock()
	if err := c.state.set(f, v); err != nil {
		c.mu.Unlock()
		return err
	}
	c.edited = true
	snap := c.state.Clone()
	c.mu.Unlock()

	c.deb.Trigger(snap)
	return nil
}

// AddFiles appends to the attachment sequence; it never replaces prior
// entries.
func (c *Controller) AddFiles(files ...api.Attachment) {
	if len(files) == 0 {
		return
	}
	c.mu.Lock()
	c.state.Attachments = append(c.state.Attachments, files...)
	c.edited = true
	snap := c.state.Clone()
	c.mu.Unlock()

	c.deb.Trigger(snap)
}

// persist runs on the debounce timer with the settled snapshot. A failed
// save is downgraded to a status indicator; it never escapes.
func (c *Controller) persist(s FormState) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	edited := c.edited
	c.mu.Unlock()
	if !edited {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.drafts.Save(ctx, s.Record()); err != nil {
		c.logger.Warn("draft autosave failed", zap.Error(err))
		c.notify(SaveStatusFailed)
		return
	}
	c.notify(SaveStatusSaved)
}

// Flush writes the current draft immediately, skipping the debounce
// window. Callers use it on the way out of an editing session so a
// pending save is not lost to Close.
func (c *Controller) Flush(ctx context.Context) error {
	c.deb.Cancel()

	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	if !c.edited {
		c.mu.Unlock()
		return nil
	}
	rec := c.state.Record()
	c.mu.Unlock()

	return c.drafts.Save(ctx, rec)
}

func (c *Controller) notify(st SaveStatus) {
	if c.onSave != nil {
		c.onSave(st)
	}
}

// Reset restores defaults, keeping the profile-derived fields, clears the
// attachments and the edited flag, drops any pending autosave and removes
// the stored draft. Called only after a confirmed submission.
func (c *Controller) Reset(ctx context.Context) error {
	c.deb.Cancel()

	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	next := DefaultState()
	next.EmployeeName = c.state.EmployeeName
	next.EmployeeID = c.state.EmployeeID
	next.Email = c.state.Email
	next.PhoneNumber = c.state.PhoneNumber
	c.state = next
	c.edited = false
	c.mu.Unlock()

	return c.drafts.Clear(ctx)
}

// Close cancels any pending autosave permanently; the unmount analog. No
// write fires after Close.
func (c *Controller) Close() {
	c.deb.Stop()
}

func (c *Controller) beginSubmit() bool {
	return c.submitting.CompareAndSwap(false, true)
}

func (c *Controller) endSubmit() {
	c.submitting.Store(false)
}

// Submitting reports whether a submission is in flight; the presentation
// layer disables the submit affordance while true.
func (c *Controller) Submitting() bool {
	return c.submitting.Load()
}
