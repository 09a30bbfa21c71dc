package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// fakeRepo is an in-memory impl of Repository that records the order of
// mutating operations and can fail a chosen batch.
type fakeRepo struct {
	months  map[string]record.ArchiveMonth
	records map[string]map[string]record.Record
	current map[string]record.Record

	ops          []string
	batchCount   int
	failAtBatch  int // 1-based; 0 disables
	batchSizes   []int
	deleteMonths []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		months:  make(map[string]record.ArchiveMonth),
		records: make(map[string]map[string]record.Record),
		current: make(map[string]record.Record),
	}
}

func (r *fakeRepo) ListMonths(ctx context.Context) ([]record.ArchiveMonth, error) {
	months := make([]record.ArchiveMonth, 0, len(r.months))
	for _, m := range r.months {
		months = append(months, m)
	}
	return months, nil
}

func (r *fakeRepo) GetMonth(ctx context.Context, month string) (record.ArchiveMonth, error) {
	m, ok := r.months[month]
	if !ok {
		return record.ArchiveMonth{}, persistence.ErrMonthNotFound
	}
	return m, nil
}

func (r *fakeRepo) CreateMonth(ctx context.Context, month string) error {
	r.ops = append(r.ops, "createMonth")
	now := time.Now().UTC()
	r.months[month] = record.ArchiveMonth{Month: month, ClosedAt: &now}
	r.records[month] = make(map[string]record.Record)
	return nil
}

func (r *fakeRepo) DeleteMonth(ctx context.Context, month string) error {
	r.ops = append(r.ops, "deleteMonth")
	r.deleteMonths = append(r.deleteMonths, month)
	delete(r.months, month)
	delete(r.records, month)
	return nil
}

func (r *fakeRepo) LoadMonth(ctx context.Context, month string) ([]record.Record, error) {
	items := make([]record.Record, 0, len(r.records[month]))
	for _, rec := range r.records[month] {
		items = append(items, rec)
	}
	return items, nil
}

func (r *fakeRepo) ArchiveBatch(ctx context.Context, month string, records []record.Record) error {
	r.ops = append(r.ops, "archiveBatch")
	r.batchCount++
	r.batchSizes = append(r.batchSizes, len(records))
	if r.failAtBatch > 0 && r.batchCount == r.failAtBatch {
		return &persistence.StoreError{Op: "archives.archiveBatch", Err: errors.New("unavailable")}
	}
	if _, ok := r.records[month]; !ok {
		r.records[month] = make(map[string]record.Record)
	}
	for _, rec := range records {
		r.records[month][rec.ID] = rec
		delete(r.current, rec.ID)
	}
	return nil
}

func (r *fakeRepo) GetRecord(ctx context.Context, month, id string) (record.Record, error) {
	rec, ok := r.records[month][id]
	if !ok {
		return record.Record{}, persistence.ErrRecordNotFound
	}
	return rec, nil
}

func (r *fakeRepo) PutRecord(ctx context.Context, month string, rec record.Record) error {
	r.ops = append(r.ops, "putRecord")
	r.records[month][rec.ID] = rec
	return nil
}

func seedCurrent(r *fakeRepo, n int) []record.Record {
	recs := make([]record.Record, 0, n)
	for i := 0; i < n; i++ {
		rec := record.Record{
			ID:                fmt.Sprintf("rec-%03d", i),
			OwnerName:         "Owner",
			EstablishmentName: fmt.Sprintf("Shop %d", i),
			EntityKey:         fmt.Sprintf("SHOP_%d", i),
			CreatedAt:         time.Now().UTC(),
		}
		r.current[rec.ID] = rec
		recs = append(recs, rec)
	}
	return recs
}

func TestCloseMonthRejectsInvalidKey(t *testing.T) {
	svc := New(newFakeRepo())
	for _, month := range []string{"2026-13", "202601", "2026-1", "garbage", ""} {
		_, err := svc.CloseMonth(context.Background(), month, []record.Record{{ID: "x"}})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "month %q", month)
	}
}

func TestCloseMonthNothingToArchive(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)

	_, err := svc.CloseMonth(context.Background(), "2026-01", nil)
	require.ErrorIs(t, err, ErrNothingToArchive)
	require.Empty(t, repo.ops, "guard must fire before any write")
}

func TestCloseMonthAlreadyClosed(t *testing.T) {
	repo := newFakeRepo()
	now := time.Now().UTC()
	repo.months["2026-01"] = record.ArchiveMonth{Month: "2026-01", ClosedAt: &now}
	svc := New(repo)

	_, err := svc.CloseMonth(context.Background(), "2026-01", seedCurrent(repo, 3))
	require.ErrorIs(t, err, ErrMonthAlreadyClosed)
	require.Empty(t, repo.ops, "guard must fire before any write")
}

func TestCloseMonthMovesRecords(t *testing.T) {
	repo := newFakeRepo()
	current := seedCurrent(repo, 3)
	svc := New(repo)

	res, err := svc.CloseMonth(context.Background(), "2026-01", current)
	require.NoError(t, err)
	require.Equal(t, 3, res.ArchivedCount)
	require.Equal(t, "2026-01", res.Month)

	// The container claim lands before any record moves.
	require.Equal(t, []string{"createMonth", "archiveBatch"}, repo.ops)

	require.Empty(t, repo.current, "current collection must be emptied")
	require.Len(t, repo.records["2026-01"], 3)
	for _, rec := range repo.records["2026-01"] {
		require.NotNil(t, rec.ArchivedAt)
	}
	require.True(t, repo.months["2026-01"].Closed())
}

func TestCloseMonthBatchesSequentially(t *testing.T) {
	repo := newFakeRepo()
	current := seedCurrent(repo, 250)
	svc := New(repo)

	res, err := svc.CloseMonth(context.Background(), "2026-02", current)
	require.NoError(t, err)
	require.Equal(t, 250, res.ArchivedCount)

	// 250 records at two ops each means three batches of at most 100 records.
	require.Equal(t, []int{100, 100, 50}, repo.batchSizes)
	require.Len(t, repo.records["2026-02"], 250)
	require.Empty(t, repo.current)
}

func TestCloseMonthPartialFailureLeavesClaim(t *testing.T) {
	repo := newFakeRepo()
	current := seedCurrent(repo, 150)
	repo.failAtBatch = 2
	svc := New(repo)

	_, err := svc.CloseMonth(context.Background(), "2026-03", current)
	require.True(t, persistence.IsStoreError(err))

	// First batch landed, second did not: the partially archived state is kept.
	require.Len(t, repo.records["2026-03"], 100)
	require.Len(t, repo.current, 50)

	// The claim blocks a retry; recovery is manual by design.
	repo.failAtBatch = 0
	_, err = svc.CloseMonth(context.Background(), "2026-03", remaining(repo))
	require.ErrorIs(t, err, ErrMonthAlreadyClosed)
}

func remaining(r *fakeRepo) []record.Record {
	recs := make([]record.Record, 0, len(r.current))
	for _, rec := range r.current {
		recs = append(recs, rec)
	}
	return recs
}

func TestLoadMonthSelfHealsEmptyMonth(t *testing.T) {
	repo := newFakeRepo()
	now := time.Now().UTC()
	repo.months["2026-04"] = record.ArchiveMonth{Month: "2026-04", ClosedAt: &now}
	repo.records["2026-04"] = make(map[string]record.Record)
	svc := New(repo)

	items, err := svc.LoadMonth(context.Background(), "2026-04")
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, []string{"2026-04"}, repo.deleteMonths)

	months, err := svc.ListMonths(context.Background())
	require.NoError(t, err)
	require.Empty(t, months)

	// The month can be closed again after the cleanup.
	_, err = svc.CloseMonth(context.Background(), "2026-04", seedCurrent(repo, 1))
	require.NoError(t, err)
}

func TestLoadMonthAnnotatesEntityKey(t *testing.T) {
	repo := newFakeRepo()
	repo.records["2026-05"] = map[string]record.Record{
		"r1": {ID: "r1", OwnerName: "Juan", EstablishmentName: "Bakery", FSICAppNo: "2026-00123"},
	}
	svc := New(repo)

	items, err := svc.LoadMonth(context.Background(), "2026-05")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "2026_00123", items[0].EntityKey)
}

func TestListMonthsSortedDescending(t *testing.T) {
	repo := newFakeRepo()
	for _, m := range []string{"2025-11", "2026-02", "2026-01"} {
		repo.months[m] = record.ArchiveMonth{Month: m}
	}
	svc := New(repo)

	months, err := svc.ListMonths(context.Background())
	require.NoError(t, err)
	keys := make([]string, 0, len(months))
	for _, m := range months {
		keys = append(keys, m.Month)
	}
	require.Equal(t, []string{"2026-02", "2026-01", "2025-11"}, keys)
}

func TestUpdateRecordEditsArchivedCopy(t *testing.T) {
	repo := newFakeRepo()
	repo.records["2026-06"] = map[string]record.Record{
		"r1": {ID: "r1", OwnerName: "Juan", EstablishmentName: "Bakery", DateInspected: "2026-06-10"},
	}
	svc := New(repo)

	remarks := "complied"
	updated, err := svc.UpdateRecord(context.Background(), "2026-06", "r1", record.Patch{Remarks: &remarks})
	require.NoError(t, err)
	require.Equal(t, "complied", updated.Remarks)
	require.Equal(t, "2027-06-10", updated.FSICValidity)
	require.NotNil(t, updated.UpdatedAt)

	_, err = svc.UpdateRecord(context.Background(), "2026-06", "missing", record.Patch{Remarks: &remarks})
	require.ErrorIs(t, err, ErrRecordNotFound)
}
