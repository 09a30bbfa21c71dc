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

// ValidationError reports a missing or unusable required field.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// ErrNotFound is returned when the requested record is not in the current
// collection.
var ErrNotFound = errors.New("record not found")

// Repository is the current-records collection. Implementations never touch
// the archive or renewal collections.
type Repository interface {
	List(ctx context.Context) ([]record.Record, error)
	Get(ctx context.Context, id string) (record.Record, error)
	Create(ctx context.Context, r record.Record) error
	Put(ctx context.Context, r record.Record) error
	Delete(ctx context.Context, id string) error
}

// Service exposes CRUD over the current-records collection with derived
// fields refreshed at every mutation boundary.
type Service struct {
	repo Repository
}

// New constructs a Service instance.
func New(repo Repository) *Service {
	if repo == nil {
		panic("records repository is required")
	}
	return &Service{repo: repo}
}

// List returns every current record, each annotated with its derived entity
// key when the stored document lacks one.
func (s *Service) List(ctx context.Context) ([]record.Record, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	for i := range items {
		if strings.TrimSpace(items[i].EntityKey) == "" {
			items[i].EntityKey = record.DeriveEntityKey(items[i])
		}
	}
	return items, nil
}

// Create validates required fields, assigns a fresh id and creation
// timestamp, derives the entity key, and persists the record.
func (s *Service) Create(ctx context.Context, r record.Record) (record.Record, error) {
	if strings.TrimSpace(r.OwnerName) == "" {
		return record.Record{}, &ValidationError{Reason: "ownerName is required"}
	}
	if strings.TrimSpace(r.EstablishmentName) == "" {
		return record.Record{}, &ValidationError{Reason: "establishmentName is required"}
	}

	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = nil
	r.ArchivedAt = nil
	record.Refresh(&r)
	r.EntityKey = record.DeriveEntityKey(r)

	if err := s.repo.Create(ctx, r); err != nil {
		return record.Record{}, translateError(err)
	}
	return r, nil
}

// Update merges the patch into the stored record, refreshes derived fields,
// and stamps the update time. The id and collection membership never change.
func (s *Service) Update(ctx context.Context, id string, patch record.Patch) (record.Record, error) {
	if strings.TrimSpace(id) == "" {
		return record.Record{}, &ValidationError{Reason: "record id is required"}
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return record.Record{}, translateError(err)
	}

	patch.Apply(&current)
	now := time.Now().UTC()
	current.UpdatedAt = &now

	if err := s.repo.Put(ctx, current); err != nil {
		return record.Record{}, translateError(err)
	}
	return current, nil
}

// Delete removes the record permanently. There is no soft-delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Reason: "record id is required"}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateError(err)
	}
	return nil
}

func translateError(err error) error {
	if errors.Is(err, persistence.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
