package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// ValidationError reports a malformed month key or missing identifier.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// Domain-level errors surfaced by the service.
var (
	ErrMonthAlreadyClosed = errors.New("archive month already closed")
	ErrNothingToArchive   = errors.New("no current records to archive")
	ErrRecordNotFound     = errors.New("archived record not found")
)

// maxBatchOps bounds the write operations per underlying batch. Archiving a
// record costs two operations (copy into the month plus delete of the
// original), so each batch carries at most recordsPerBatch records.
const (
	maxBatchOps     = 200
	recordsPerBatch = maxBatchOps / 2
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Repository is the archive side of the store: month containers plus one
// records sub-collection per month, with batched moves out of the current
// collection.
type Repository interface {
	ListMonths(ctx context.Context) ([]record.ArchiveMonth, error)
	GetMonth(ctx context.Context, month string) (record.ArchiveMonth, error)
	// CreateMonth writes the container with a server-assigned closedAt stamp.
	CreateMonth(ctx context.Context, month string) error
	DeleteMonth(ctx context.Context, month string) error
	LoadMonth(ctx context.Context, month string) ([]record.Record, error)
	// ArchiveBatch atomically copies the records into the month's
	// sub-collection and deletes the originals from the current collection.
	ArchiveBatch(ctx context.Context, month string, records []record.Record) error
	GetRecord(ctx context.Context, month, id string) (record.Record, error)
	PutRecord(ctx context.Context, month string, rec record.Record) error
}

// CloseResult reports the outcome of a month close.
type CloseResult struct {
	Month         string `json:"month"`
	ArchivedCount int    `json:"archivedCount"`
}

// Service owns the month-close transition and the empty-month cleanup rule.
type Service struct {
	repo Repository
}

// New constructs a Service instance.
func New(repo Repository) *Service {
	if repo == nil {
		panic("archives repository is required")
	}
	return &Service{repo: repo}
}

// ListMonths returns the known archive months, newest first.
func (s *Service) ListMonths(ctx context.Context) ([]record.ArchiveMonth, error) {
	months, err := s.repo.ListMonths(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month > months[j].Month })
	return months, nil
}

// LoadMonth fetches the archived records for a month, annotating each with
// its entity key when missing. A month whose sub-collection turns out empty
// has its container deleted so a later close of the same month is not
// rejected as already closed; the cleanup is silent.
func (s *Service) LoadMonth(ctx context.Context, month string) ([]record.Record, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	items, err := s.repo.LoadMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		// Best-effort self-healing; a failed cleanup only delays the next one.
		_ = s.repo.DeleteMonth(ctx, month)
		return []record.Record{}, nil
	}

	for i := range items {
		if strings.TrimSpace(items[i].EntityKey) == "" {
			items[i].EntityKey = record.DeriveEntityKey(items[i])
		}
	}
	return items, nil
}

// CloseMonth migrates every given current record into the month's archive.
//
// The container is written with its closedAt stamp before any record moves,
// acting as a claim against a second close of the same month. Records are
// then moved in sequential batches; each batch's copies and deletes commit
// atomically together, but the operation as a whole is not atomic — a crash
// mid-way leaves a partially archived month that the AlreadyClosed guard
// blocks from being re-closed, requiring manual correction.
func (s *Service) CloseMonth(ctx context.Context, month string, current []record.Record) (CloseResult, error) {
	if err := validateMonth(month); err != nil {
		return CloseResult{}, err
	}

	existing, err := s.repo.GetMonth(ctx, month)
	switch {
	case err == nil:
		if existing.Closed() {
			return CloseResult{}, ErrMonthAlreadyClosed
		}
	case errors.Is(err, persistence.ErrMonthNotFound):
		// free to claim
	default:
		return CloseResult{}, err
	}

	if len(current) == 0 {
		return CloseResult{}, ErrNothingToArchive
	}

	if err := s.repo.CreateMonth(ctx, month); err != nil {
		return CloseResult{}, err
	}

	now := time.Now().UTC()
	for start := 0; start < len(current); start += recordsPerBatch {
		end := min(start+recordsPerBatch, len(current))

		batch := make([]record.Record, end-start)
		copy(batch, current[start:end])
		for i := range batch {
			stamp := now
			batch[i].ArchivedAt = &stamp
		}

		if err := s.repo.ArchiveBatch(ctx, month, batch); err != nil {
			return CloseResult{}, err
		}
	}

	return CloseResult{Month: month, ArchivedCount: len(current)}, nil
}

// GetRecord fetches one archived copy, annotated with its entity key.
func (s *Service) GetRecord(ctx context.Context, month, id string) (record.Record, error) {
	if err := validateMonth(month); err != nil {
		return record.Record{}, err
	}
	if strings.TrimSpace(id) == "" {
		return record.Record{}, &ValidationError{Reason: "record id is required"}
	}

	rec, err := s.repo.GetRecord(ctx, month, id)
	if errors.Is(err, persistence.ErrRecordNotFound) {
		return record.Record{}, ErrRecordNotFound
	}
	if err != nil {
		return record.Record{}, err
	}
	if strings.TrimSpace(rec.EntityKey) == "" {
		rec.EntityKey = record.DeriveEntityKey(rec)
	}
	return rec, nil
}

// UpdateRecord edits an archived copy in place. It never touches the current
// collection.
func (s *Service) UpdateRecord(ctx context.Context, month, id string, patch record.Patch) (record.Record, error) {
	if err := validateMonth(month); err != nil {
		return record.Record{}, err
	}
	if strings.TrimSpace(id) == "" {
		return record.Record{}, &ValidationError{Reason: "record id is required"}
	}

	current, err := s.repo.GetRecord(ctx, month, id)
	if errors.Is(err, persistence.ErrRecordNotFound) {
		return record.Record{}, ErrRecordNotFound
	}
	if err != nil {
		return record.Record{}, err
	}

	patch.Apply(&current)
	now := time.Now().UTC()
	current.UpdatedAt = &now

	if err := s.repo.PutRecord(ctx, month, current); err != nil {
		return record.Record{}, err
	}
	return current, nil
}

func validateMonth(month string) error {
	if !monthPattern.MatchString(month) {
		return &ValidationError{Reason: fmt.Sprintf("invalid month key %q: expected YYYY-MM", month)}
	}
	return nil
}
