package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// MemoryRepository is a simple in-memory implementation suitable for tests
// and single-node development.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]record.Record
}

// NewMemoryRepository constructs a MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]record.Record)}
}

func (r *MemoryRepository) List(ctx context.Context) ([]record.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]record.Record, 0, len(r.byID))
	for _, rec := range r.byID {
		items = append(items, rec)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (record.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return record.Record{}, persistence.ErrRecordNotFound
	}
	return rec, nil
}

func (r *MemoryRepository) Create(ctx context.Context, rec record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[rec.ID] = rec
	return nil
}

func (r *MemoryRepository) Put(ctx context.Context, rec record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[rec.ID] = rec
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}

var _ service.Repository = (*MemoryRepository)(nil)
