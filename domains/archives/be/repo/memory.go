package repo

import (
	"context"
	"sync"
	"time"

	"github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/service"
	recordsrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/repo"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// MemoryRepository is an in-memory archive store for tests and single-node
// development. Deleting archived originals requires access to the current
// collection, so it is constructed over the records MemoryRepository.
type MemoryRepository struct {
	mu      sync.RWMutex
	months  map[string]record.ArchiveMonth
	records map[string]map[string]record.Record
	current *recordsrepo.MemoryRepository
}

// NewMemoryRepository constructs a MemoryRepository over the given current
// records store.
func NewMemoryRepository(current *recordsrepo.MemoryRepository) *MemoryRepository {
	if current == nil {
		panic("archives memory repository requires the current records repository")
	}
	return &MemoryRepository{
		months:  make(map[string]record.ArchiveMonth),
		records: make(map[string]map[string]record.Record),
		current: current,
	}
}

func (r *MemoryRepository) ListMonths(ctx context.Context) ([]record.ArchiveMonth, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	months := make([]record.ArchiveMonth, 0, len(r.months))
	for _, m := range r.months {
		months = append(months, m)
	}
	return months, nil
}

func (r *MemoryRepository) GetMonth(ctx context.Context, month string) (record.ArchiveMonth, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.months[month]
	if !ok {
		return record.ArchiveMonth{}, persistence.ErrMonthNotFound
	}
	return m, nil
}

func (r *MemoryRepository) CreateMonth(ctx context.Context, month string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	r.months[month] = record.ArchiveMonth{Month: month, ClosedAt: &now}
	if _, ok := r.records[month]; !ok {
		r.records[month] = make(map[string]record.Record)
	}
	return nil
}

func (r *MemoryRepository) DeleteMonth(ctx context.Context, month string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.months, month)
	delete(r.records, month)
	return nil
}

func (r *MemoryRepository) LoadMonth(ctx context.Context, month string) ([]record.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]record.Record, 0, len(r.records[month]))
	for _, rec := range r.records[month] {
		items = append(items, rec)
	}
	return items, nil
}

func (r *MemoryRepository) ArchiveBatch(ctx context.Context, month string, records []record.Record) error {
	r.mu.Lock()
	if _, ok := r.records[month]; !ok {
		r.records[month] = make(map[string]record.Record)
	}
	for _, rec := range records {
		r.records[month][rec.ID] = rec
	}
	r.mu.Unlock()

	for _, rec := range records {
		if err := r.current.Delete(ctx, rec.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) GetRecord(ctx context.Context, month, id string) (record.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[month][id]
	if !ok {
		return record.Record{}, persistence.ErrRecordNotFound
	}
	return rec, nil
}

func (r *MemoryRepository) PutRecord(ctx context.Context, month string, rec record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[month]; !ok {
		r.records[month] = make(map[string]record.Record)
	}
	r.records[month][rec.ID] = rec
	return nil
}

var _ service.Repository = (*MemoryRepository)(nil)
