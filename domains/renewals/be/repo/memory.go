package repo

import (
	"context"
	"sync"

	recordsrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/repo"
	"github.com/Ashhiii/BFPSYSTEM-sub000/domains/renewals/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// MemoryRepository is an in-memory renewals store for tests and single-node
// development. The renew write also inserts into the current collection, so
// it is constructed over the records MemoryRepository.
type MemoryRepository struct {
	mu      sync.RWMutex
	byKey   map[string]record.Renewal
	current *recordsrepo.MemoryRepository
}

// NewMemoryRepository constructs a MemoryRepository over the given current
// records store.
func NewMemoryRepository(current *recordsrepo.MemoryRepository) *MemoryRepository {
	if current == nil {
		panic("renewals memory repository requires the current records repository")
	}
	return &MemoryRepository{byKey: make(map[string]record.Renewal), current: current}
}

func (r *MemoryRepository) GetLatest(ctx context.Context, entityKey string) (record.Renewal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ren, ok := r.byKey[entityKey]
	if !ok {
		return record.Renewal{}, persistence.ErrRenewalNotFound
	}
	return ren, nil
}

func (r *MemoryRepository) Renew(ctx context.Context, renewal record.Renewal, newRecord record.Record) error {
	r.mu.Lock()
	r.byKey[renewal.EntityKey] = renewal
	r.mu.Unlock()

	return r.current.Create(ctx, newRecord)
}

var _ service.Repository = (*MemoryRepository)(nil)
