package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	archivesrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/repo"
	archivesservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/service"
	recordsrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/repo"
	recordsservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/service"
	renewalsrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/renewals/be/repo"
	renewalsservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/renewals/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

type stores struct {
	records  *recordsservice.Service
	archives *archivesservice.Service
	renewals *renewalsservice.Service
}

func newStores() stores {
	current := recordsrepo.NewMemoryRepository()
	return stores{
		records:  recordsservice.New(current),
		archives: archivesservice.New(archivesrepo.NewMemoryRepository(current)),
		renewals: renewalsservice.New(renewalsrepo.NewMemoryRepository(current)),
	}
}

func newController(s stores) *Controller {
	return New(s.records, s.archives, s.renewals)
}

func TestSelectionResetsToView(t *testing.T) {
	c := newController(newStores())

	c.Select(Ref{Kind: KindCurrent, RecordID: "a"}, record.Record{ID: "a"})
	require.NoError(t, c.BeginEdit())
	require.Equal(t, ModeEdit, c.Mode())

	c.Select(Ref{Kind: KindCurrent, RecordID: "b"}, record.Record{ID: "b"})
	require.Equal(t, ModeView, c.Mode())
}

func TestEditRequiresSelection(t *testing.T) {
	c := newController(newStores())
	require.ErrorIs(t, c.BeginEdit(), ErrNoSelection)
}

func TestRenewOnlyForArchivedRecords(t *testing.T) {
	c := newController(newStores())

	c.Select(Ref{Kind: KindCurrent, RecordID: "a"}, record.Record{ID: "a"})
	require.ErrorIs(t, c.BeginRenew(), ErrNotArchived)

	c.Select(Ref{Kind: KindArchived, Month: "2026-01", RecordID: "a"}, record.Record{ID: "a"})
	require.NoError(t, c.BeginRenew())
	require.Equal(t, ModeRenew, c.Mode())
}

func TestCancelDiscardsAndReturnsToView(t *testing.T) {
	c := newController(newStores())
	c.Select(Ref{Kind: KindCurrent, RecordID: "a"}, record.Record{ID: "a"})
	require.NoError(t, c.BeginEdit())

	c.Cancel()
	require.Equal(t, ModeView, c.Mode())
}

func TestConfirmEditRoutesByKind(t *testing.T) {
	s := newStores()
	ctx := context.Background()

	created, err := s.records.Create(ctx, record.Record{
		OwnerName:         "Juan Dela Cruz",
		EstablishmentName: "Dela Cruz Bakery",
	})
	require.NoError(t, err)

	c := newController(s)
	c.Select(Ref{Kind: KindCurrent, RecordID: created.ID}, created)
	require.NoError(t, c.BeginEdit())

	remarks := "for reinspection"
	updated, err := c.ConfirmEdit(ctx, record.Patch{Remarks: &remarks})
	require.NoError(t, err)
	require.Equal(t, "for reinspection", updated.Remarks)
	require.Equal(t, ModeView, c.Mode())

	// Archive the record, then edit the archived copy; the current
	// collection must stay empty.
	current, err := s.records.List(ctx)
	require.NoError(t, err)
	_, err = s.archives.CloseMonth(ctx, "2026-01", current)
	require.NoError(t, err)

	archived, err := s.archives.LoadMonth(ctx, "2026-01")
	require.NoError(t, err)
	require.Len(t, archived, 1)

	c.Select(Ref{Kind: KindArchived, Month: "2026-01", RecordID: archived[0].ID}, archived[0])
	require.NoError(t, c.BeginEdit())

	remarks = "complied"
	updated, err = c.ConfirmEdit(ctx, record.Patch{Remarks: &remarks})
	require.NoError(t, err)
	require.Equal(t, "complied", updated.Remarks)

	live, err := s.records.List(ctx)
	require.NoError(t, err)
	require.Empty(t, live, "editing an archived copy must not touch the current collection")
}

func TestConfirmEditOutsideEditMode(t *testing.T) {
	c := newController(newStores())
	c.Select(Ref{Kind: KindCurrent, RecordID: "a"}, record.Record{ID: "a"})

	_, err := c.ConfirmEdit(context.Background(), record.Patch{})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

// TestLifecycleScenario walks a record through the full lifecycle: create,
// derive, close the month, renew from the archive.
func TestLifecycleScenario(t *testing.T) {
	s := newStores()
	ctx := context.Background()

	created, err := s.records.Create(ctx, record.Record{
		OwnerName:         "Juan Dela Cruz",
		EstablishmentName: "Dela Cruz Bakery",
		FSICAppNo:         "2026-00123",
		DateInspected:     "2026-01-15",
	})
	require.NoError(t, err)
	require.Equal(t, "2027-01-15", created.FSICValidity)
	require.Equal(t, "2026_00123", created.EntityKey)

	current, err := s.records.List(ctx)
	require.NoError(t, err)
	res, err := s.archives.CloseMonth(ctx, "2026-01", current)
	require.NoError(t, err)
	require.Equal(t, 1, res.ArchivedCount)

	live, err := s.records.List(ctx)
	require.NoError(t, err)
	require.Empty(t, live)

	archived, err := s.archives.LoadMonth(ctx, "2026-01")
	require.NoError(t, err)
	require.Len(t, archived, 1)

	c := newController(s)
	c.Select(Ref{Kind: KindArchived, Month: "2026-01", RecordID: archived[0].ID}, archived[0])
	require.NoError(t, c.BeginRenew())

	renewed, err := c.ConfirmRenew(ctx, record.Patch{})
	require.NoError(t, err)
	require.Equal(t, "2026_00123", renewed.NewRecord.EntityKey)
	require.Equal(t, created.ID, renewed.NewRecord.RenewedFromID)
	require.Equal(t, ModeView, c.Mode())

	// The establishment now has both a historical archived entry and a
	// live current entry.
	archivedAfter, err := s.archives.LoadMonth(ctx, "2026-01")
	require.NoError(t, err)
	require.Len(t, archivedAfter, 1)

	liveAfter, err := s.records.List(ctx)
	require.NoError(t, err)
	require.Len(t, liveAfter, 1)
	require.Equal(t, renewed.NewRecord.ID, liveAfter[0].ID)

	latest, err := s.renewals.GetLatest(ctx, "2026_00123")
	require.NoError(t, err)
	require.Equal(t, created.ID, latest.Record.RenewedFromID)
}
