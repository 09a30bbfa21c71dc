package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// inMemoryRepo is a minimal in-memory impl of Repository for tests.
type inMemoryRepo struct {
	mu   sync.Mutex
	data map[string]record.Record
}

func newInMemoryRepo() *inMemoryRepo {
	return &inMemoryRepo{data: make(map[string]record.Record)}
}

func (r *inMemoryRepo) List(ctx context.Context) ([]record.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]record.Record, 0, len(r.data))
	for _, rec := range r.data {
		items = append(items, rec)
	}
	return items, nil
}

func (r *inMemoryRepo) Get(ctx context.Context, id string) (record.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.data[id]
	if !ok {
		return record.Record{}, persistence.ErrRecordNotFound
	}
	return rec, nil
}

func (r *inMemoryRepo) Create(ctx context.Context, rec record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.ID] = rec
	return nil
}

func (r *inMemoryRepo) Put(ctx context.Context, rec record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.ID] = rec
	return nil
}

func (r *inMemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}

func TestCreateRequiresOwnerAndEstablishment(t *testing.T) {
	svc := New(newInMemoryRepo())

	_, err := svc.Create(context.Background(), record.Record{EstablishmentName: "Bakery"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Reason, "ownerName")

	_, err = svc.Create(context.Background(), record.Record{OwnerName: "Juan"})
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Reason, "establishmentName")
}

func TestCreateAssignsIDAndDerivesFields(t *testing.T) {
	svc := New(newInMemoryRepo())

	created, err := svc.Create(context.Background(), record.Record{
		OwnerName:         "Juan Dela Cruz",
		EstablishmentName: "Dela Cruz Bakery",
		FSICAppNo:         "2026-00123",
		DateInspected:     "2026-01-15",
		Inspector1:        "FO1 Reyes",
		Inspector2:        " ",
		Inspector3:        "FO3 Santos",
	})
	require.NoError(t, err)

	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, "2026_00123", created.EntityKey)
	require.Equal(t, "2027-01-15", created.FSICValidity)
	require.Equal(t, "FO1 Reyes, FO3 Santos", created.Inspectors)
}

func TestListAnnotatesMissingEntityKey(t *testing.T) {
	repo := newInMemoryRepo()
	repo.data["r1"] = record.Record{
		ID:                "r1",
		OwnerName:         "Maria Santos",
		EstablishmentName: "Santos Hardware",
		BusinessAddress:   "Purok 5",
	}

	svc := New(repo)
	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "SANTOS_HARDWARE_PUROK_5_MARIA_SANTOS", items[0].EntityKey)

	// Annotation is in-memory only; the stored document keeps its shape.
	require.Empty(t, repo.data["r1"].EntityKey)
}

func TestUpdateMergesAndRecomputes(t *testing.T) {
	repo := newInMemoryRepo()
	svc := New(repo)
	created, err := svc.Create(context.Background(), record.Record{
		OwnerName:         "Juan Dela Cruz",
		EstablishmentName: "Dela Cruz Bakery",
		DateInspected:     "2026-01-15",
	})
	require.NoError(t, err)

	newDate := "2026-03-01"
	updated, err := svc.Update(context.Background(), created.ID, record.Patch{DateInspected: &newDate})
	require.NoError(t, err)

	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Juan Dela Cruz", updated.OwnerName)
	require.Equal(t, "2027-03-01", updated.FSICValidity)
	require.NotNil(t, updated.UpdatedAt)
}

func TestUpdateUnknownRecord(t *testing.T) {
	svc := New(newInMemoryRepo())
	_, err := svc.Update(context.Background(), "missing", record.Patch{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesPermanently(t *testing.T) {
	repo := newInMemoryRepo()
	svc := New(repo)
	created, err := svc.Create(context.Background(), record.Record{
		OwnerName:         "Juan Dela Cruz",
		EstablishmentName: "Dela Cruz Bakery",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.Empty(t, repo.data)
}
