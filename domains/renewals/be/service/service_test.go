package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// inMemoryRepo is a minimal in-memory impl of Repository for tests. Inserted
// current records are collected so tests can assert the copy-forward side.
type inMemoryRepo struct {
	mu       sync.Mutex
	byKey    map[string]record.Renewal
	inserted []record.Record
}

func newInMemoryRepo() *inMemoryRepo {
	return &inMemoryRepo{byKey: make(map[string]record.Renewal)}
}

func (r *inMemoryRepo) GetLatest(ctx context.Context, entityKey string) (record.Renewal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ren, ok := r.byKey[entityKey]
	if !ok {
		return record.Renewal{}, persistence.ErrRenewalNotFound
	}
	return ren, nil
}

func (r *inMemoryRepo) Renew(ctx context.Context, renewal record.Renewal, newRecord record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[renewal.EntityKey] = renewal
	r.inserted = append(r.inserted, newRecord)
	return nil
}

func archivedRecord() record.Record {
	archived := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return record.Record{
		ID:                "old-1",
		OwnerName:         "Juan Dela Cruz",
		EstablishmentName: "Dela Cruz Bakery",
		FSICAppNo:         "2026-00123",
		DateInspected:     "2026-01-15",
		FSICValidity:      "2027-01-15",
		Inspector1:        "FO1 Reyes",
		Inspectors:        "FO1 Reyes",
		CreatedAt:         time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		ArchivedAt:        &archived,
	}
}

func TestRenewRequiresDerivableEntityKey(t *testing.T) {
	svc := New(newInMemoryRepo())

	_, err := svc.Renew(context.Background(), record.Record{ID: "old"}, record.Patch{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestRenewBuildsSnapshotAndNewRecord(t *testing.T) {
	repo := newInMemoryRepo()
	svc := New(repo)
	old := archivedRecord()

	newDate := "2027-01-20"
	res, err := svc.Renew(context.Background(), old, record.Patch{DateInspected: &newDate})
	require.NoError(t, err)

	snap := res.Snapshot
	require.Equal(t, "2026_00123", snap.EntityKey)
	require.Equal(t, "old-1", snap.Record.RenewedFromID)
	require.Equal(t, record.StatusRenewed, snap.Record.Status)
	require.NotNil(t, snap.Record.RenewedAt)
	require.Equal(t, "2027-01-20", snap.Record.DateInspected)
	require.Equal(t, "2028-01-20", snap.Record.FSICValidity, "validity recomputed before persisting")

	fresh := res.NewRecord
	require.NotEmpty(t, fresh.ID)
	require.NotEqual(t, old.ID, fresh.ID)
	require.Equal(t, "2026_00123", fresh.EntityKey)
	require.Equal(t, "old-1", fresh.RenewedFromID)
	require.Nil(t, fresh.ArchivedAt, "the new record lives in the current collection")
	require.False(t, fresh.CreatedAt.IsZero())

	require.Len(t, repo.inserted, 1)
	require.Equal(t, fresh.ID, repo.inserted[0].ID)
}

func TestRenewTwiceOverwritesSnapshotKeepsBothRecords(t *testing.T) {
	repo := newInMemoryRepo()
	svc := New(repo)
	old := archivedRecord()

	first, err := svc.Renew(context.Background(), old, record.Patch{})
	require.NoError(t, err)
	second, err := svc.Renew(context.Background(), old, record.Patch{})
	require.NoError(t, err)

	// One renewal document, overwritten; two new current records.
	require.Len(t, repo.byKey, 1)
	require.Len(t, repo.inserted, 2)
	require.NotEqual(t, first.NewRecord.ID, second.NewRecord.ID)

	latest, err := svc.GetLatest(context.Background(), "2026_00123")
	require.NoError(t, err)
	require.Equal(t, second.Snapshot.UpdatedAt, latest.UpdatedAt)
}

func TestGetLatestValidation(t *testing.T) {
	svc := New(newInMemoryRepo())

	_, err := svc.GetLatest(context.Background(), "  ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.GetLatest(context.Background(), "UNKNOWN")
	require.ErrorIs(t, err, ErrNotFound)
}
