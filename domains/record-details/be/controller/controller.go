package controller

import (
	"context"
	"errors"

	renewalsservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/renewals/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// Mode is the controller's interaction state for the selected record.
type Mode string

const (
	ModeView  Mode = "view"
	ModeEdit  Mode = "edit"
	ModeRenew Mode = "renew"
)

// Kind tags which collection the selected record lives in. The routing of an
// edit is decided by this tag alone, never by inspecting display text.
type Kind string

const (
	KindCurrent  Kind = "current"
	KindArchived Kind = "archived"
	KindRenewed  Kind = "renewed"
)

// Ref identifies a selected record and its collection. Month is set only for
// archived records.
type Ref struct {
	Kind     Kind
	Month    string
	RecordID string
}

// Transition and guard errors.
var (
	ErrNoSelection       = errors.New("no record selected")
	ErrInvalidTransition = errors.New("invalid mode transition")
	ErrNotArchived       = errors.New("renew is only available for archived records")
	ErrBusy              = errors.New("operation already in flight")
)

// RecordUpdater updates a record in the current collection.
type RecordUpdater interface {
	Update(ctx context.Context, id string, patch record.Patch) (record.Record, error)
}

// ArchiveUpdater updates an archived copy inside its month.
type ArchiveUpdater interface {
	UpdateRecord(ctx context.Context, month, id string, patch record.Patch) (record.Record, error)
}

// Renewer performs the renewal transition.
type Renewer interface {
	Renew(ctx context.Context, old record.Record, patch record.Patch) (renewalsservice.RenewResult, error)
}

// Controller orchestrates view/edit/renew for one selected record. It mirrors
// a single-user detail pane: not safe for concurrent use; the busy flag only
// guards against duplicate submission of the same in-flight confirm.
type Controller struct {
	records  RecordUpdater
	archives ArchiveUpdater
	renewals Renewer

	selected *Ref
	rec      record.Record
	mode     Mode
	busy     bool
}

// New constructs a Controller instance.
func New(records RecordUpdater, archives ArchiveUpdater, renewals Renewer) *Controller {
	if records == nil {
		panic("record updater is required")
	}
	if archives == nil {
		panic("archive updater is required")
	}
	if renewals == nil {
		panic("renewer is required")
	}
	return &Controller{records: records, archives: archives, renewals: renewals, mode: ModeView}
}

// Select loads a record into the controller. Selection always resets to view,
// discarding any pending edit.
func (c *Controller) Select(ref Ref, rec record.Record) {
	c.selected = &ref
	c.rec = rec
	c.mode = ModeView
	c.busy = false
}

// Clear drops the selection.
func (c *Controller) Clear() {
	c.selected = nil
	c.rec = record.Record{}
	c.mode = ModeView
	c.busy = false
}

// Mode returns the current interaction state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Selected returns the selection tag, or false when nothing is selected.
func (c *Controller) Selected() (Ref, bool) {
	if c.selected == nil {
		return Ref{}, false
	}
	return *c.selected, true
}

// Record returns the currently loaded record.
func (c *Controller) Record() record.Record {
	return c.rec
}

// BeginEdit enters edit mode. Allowed only from view with a selection.
func (c *Controller) BeginEdit() error {
	if c.selected == nil {
		return ErrNoSelection
	}
	if c.mode != ModeView {
		return ErrInvalidTransition
	}
	c.mode = ModeEdit
	return nil
}

// BeginRenew enters renew mode. Allowed only from view and only when the
// selected record is archived.
func (c *Controller) BeginRenew() error {
	if c.selected == nil {
		return ErrNoSelection
	}
	if c.mode != ModeView {
		return ErrInvalidTransition
	}
	if c.selected.Kind != KindArchived {
		return ErrNotArchived
	}
	c.mode = ModeRenew
	return nil
}

// Cancel discards the pending edit or renew and returns to view.
func (c *Controller) Cancel() {
	if !c.busy {
		c.mode = ModeView
	}
}

// ConfirmEdit persists the patch, routed by the selection's kind: a current
// record goes through the record store, an archived record edits the archived
// copy in its month. Returns to view on success.
func (c *Controller) ConfirmEdit(ctx context.Context, patch record.Patch) (record.Record, error) {
	if c.selected == nil {
		return record.Record{}, ErrNoSelection
	}
	if c.mode != ModeEdit {
		return record.Record{}, ErrInvalidTransition
	}
	if c.busy {
		return record.Record{}, ErrBusy
	}
	c.busy = true
	defer func() { c.busy = false }()

	var (
		updated record.Record
		err     error
	)
	switch c.selected.Kind {
	case KindArchived:
		updated, err = c.archives.UpdateRecord(ctx, c.selected.Month, c.selected.RecordID, patch)
	default:
		updated, err = c.records.Update(ctx, c.selected.RecordID, patch)
	}
	if err != nil {
		return record.Record{}, err
	}

	c.rec = updated
	c.mode = ModeView
	return updated, nil
}

// ConfirmRenew runs the renewal for the selected archived record and returns
// to view. The archived copy stays in its month.
func (c *Controller) ConfirmRenew(ctx context.Context, patch record.Patch) (renewalsservice.RenewResult, error) {
	if c.selected == nil {
		return renewalsservice.RenewResult{}, ErrNoSelection
	}
	if c.mode != ModeRenew {
		return renewalsservice.RenewResult{}, ErrInvalidTransition
	}
	if c.busy {
		return renewalsservice.RenewResult{}, ErrBusy
	}
	c.busy = true
	defer func() { c.busy = false }()

	res, err := c.renewals.Renew(ctx, c.rec, patch)
	if err != nil {
		return renewalsservice.RenewResult{}, err
	}

	c.mode = ModeView
	return res, nil
}
