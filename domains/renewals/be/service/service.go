package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// ValidationError reports an entity key that cannot be resolved.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// ErrNotFound is returned when no renewal exists for the entity key.
var ErrNotFound = errors.New("renewal not found")

// Repository is the renewals collection keyed by entity key, plus the atomic
// renew write into the current collection.
type Repository interface {
	GetLatest(ctx context.Context, entityKey string) (record.Renewal, error)
	// Renew atomically upserts the renewal snapshot and inserts the new
	// current record in a single batch.
	Renew(ctx context.Context, renewal record.Renewal, newRecord record.Record) error
}

// RenewResult carries both sides of a completed renewal.
type RenewResult struct {
	NewRecord record.Record  `json:"newRecord"`
	Snapshot  record.Renewal `json:"snapshot"`
}

// Service owns the renew transition: copy-forward of the old record plus
// creation of a fresh current record.
type Service struct {
	repo Repository
}

// New constructs a Service instance.
func New(repo Repository) *Service {
	if repo == nil {
		panic("renewals repository is required")
	}
	return &Service{repo: repo}
}

// GetLatest returns the most recent renewal snapshot for the entity key.
func (s *Service) GetLatest(ctx context.Context, entityKey string) (record.Renewal, error) {
	if strings.TrimSpace(entityKey) == "" {
		return record.Renewal{}, &ValidationError{Reason: "entityKey is required"}
	}
	ren, err := s.repo.GetLatest(ctx, entityKey)
	if errors.Is(err, persistence.ErrRenewalNotFound) {
		return record.Renewal{}, ErrNotFound
	}
	if err != nil {
		return record.Renewal{}, err
	}
	return ren, nil
}

// Renew overlays the edits on the old record, stamps the renewal markers, and
// in one atomic batch overwrites renewals/{entityKey} while inserting a
// brand-new current record carrying the snapshot fields. The old record is
// left wherever it lives; renewing an archived record keeps its archive copy.
func (s *Service) Renew(ctx context.Context, old record.Record, patch record.Patch) (RenewResult, error) {
	entityKey := record.DeriveEntityKey(old)
	if entityKey == "" {
		return RenewResult{}, &ValidationError{Reason: "entity key cannot be derived: record has no FSIC number, establishment, address, or owner"}
	}

	now := time.Now().UTC()

	snapshot := old
	patch.Apply(&snapshot)
	snapshot.EntityKey = entityKey
	snapshot.RenewedFromID = old.ID
	snapshot.RenewedAt = &now
	snapshot.Status = record.StatusRenewed

	newRecord := snapshot
	newRecord.ID = uuid.NewString()
	newRecord.CreatedAt = now
	newRecord.UpdatedAt = nil
	newRecord.ArchivedAt = nil

	renewal := record.Renewal{
		EntityKey: entityKey,
		Record:    snapshot,
		UpdatedAt: now,
	}

	if err := s.repo.Renew(ctx, renewal, newRecord); err != nil {
		return RenewResult{}, err
	}
	return RenewResult{NewRecord: newRecord, Snapshot: renewal}, nil
}
