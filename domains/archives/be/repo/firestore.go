package repo

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/service"
	recordsrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/repo"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

const (
	// ArchiveCollection holds one container document per closed month.
	ArchiveCollection = "archives"
	// monthRecords is the per-month sub-collection of archived copies.
	monthRecords = "records"
)

// FirestoreRepository backs the archive months with Firestore:
// archives/{YYYY-MM} containers and archives/{YYYY-MM}/records/{id} copies.
type FirestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository constructs a FirestoreRepository.
func NewFirestoreRepository(client *firestore.Client) *FirestoreRepository {
	if client == nil {
		panic("archives repository requires a firestore client")
	}
	return &FirestoreRepository{client: client}
}

func (r *FirestoreRepository) monthDoc(month string) *firestore.DocumentRef {
	return r.client.Collection(ArchiveCollection).Doc(month)
}

func (r *FirestoreRepository) ListMonths(ctx context.Context) ([]record.ArchiveMonth, error) {
	iter := r.client.Collection(ArchiveCollection).Documents(ctx)
	defer iter.Stop()

	months := make([]record.ArchiveMonth, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, persistence.WrapStore("archives.listMonths", err)
		}
		var m record.ArchiveMonth
		if err := doc.DataTo(&m); err != nil {
			return nil, persistence.WrapStore("archives.decodeMonth", err)
		}
		m.Month = doc.Ref.ID
		months = append(months, m)
	}
	return months, nil
}

func (r *FirestoreRepository) GetMonth(ctx context.Context, month string) (record.ArchiveMonth, error) {
	doc, err := r.monthDoc(month).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return record.ArchiveMonth{}, persistence.ErrMonthNotFound
	}
	if err != nil {
		return record.ArchiveMonth{}, persistence.WrapStore("archives.getMonth", err)
	}

	var m record.ArchiveMonth
	if err := doc.DataTo(&m); err != nil {
		return record.ArchiveMonth{}, persistence.WrapStore("archives.decodeMonth", err)
	}
	m.Month = doc.Ref.ID
	return m, nil
}

// CreateMonth writes the container claim. The close stamp is assigned by the
// server so every reader agrees on when the month closed.
func (r *FirestoreRepository) CreateMonth(ctx context.Context, month string) error {
	_, err := r.monthDoc(month).Set(ctx, map[string]any{
		"month":    month,
		"closedAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return persistence.WrapStore("archives.createMonth", err)
	}
	return nil
}

func (r *FirestoreRepository) DeleteMonth(ctx context.Context, month string) error {
	if _, err := r.monthDoc(month).Delete(ctx); err != nil {
		return persistence.WrapStore("archives.deleteMonth", err)
	}
	return nil
}

func (r *FirestoreRepository) LoadMonth(ctx context.Context, month string) ([]record.Record, error) {
	iter := r.monthDoc(month).Collection(monthRecords).Documents(ctx)
	defer iter.Stop()

	items := make([]record.Record, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, persistence.WrapStore("archives.loadMonth", err)
		}
		var rec record.Record
		if err := doc.DataTo(&rec); err != nil {
			return nil, persistence.WrapStore("archives.decodeRecord", err)
		}
		rec.ID = doc.Ref.ID
		items = append(items, rec)
	}
	return items, nil
}

// ArchiveBatch commits one batch of copy-into-month plus delete-from-current
// pairs. The batch is atomic; sequencing across batches is the service's job.
func (r *FirestoreRepository) ArchiveBatch(ctx context.Context, month string, records []record.Record) error {
	if len(records) == 0 {
		return nil
	}

	batch := r.client.Batch()
	sub := r.monthDoc(month).Collection(monthRecords)
	current := r.client.Collection(recordsrepo.CurrentCollection)
	for _, rec := range records {
		batch.Set(sub.Doc(rec.ID), rec)
		batch.Delete(current.Doc(rec.ID))
	}

	if _, err := batch.Commit(ctx); err != nil {
		return persistence.WrapStore("archives.archiveBatch", err)
	}
	return nil
}

func (r *FirestoreRepository) GetRecord(ctx context.Context, month, id string) (record.Record, error) {
	doc, err := r.monthDoc(month).Collection(monthRecords).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return record.Record{}, persistence.ErrRecordNotFound
	}
	if err != nil {
		return record.Record{}, persistence.WrapStore("archives.getRecord", err)
	}

	var rec record.Record
	if err := doc.DataTo(&rec); err != nil {
		return record.Record{}, persistence.WrapStore("archives.decodeRecord", err)
	}
	rec.ID = doc.Ref.ID
	return rec, nil
}

func (r *FirestoreRepository) PutRecord(ctx context.Context, month string, rec record.Record) error {
	if _, err := r.monthDoc(month).Collection(monthRecords).Doc(rec.ID).Set(ctx, rec); err != nil {
		return persistence.WrapStore("archives.putRecord", err)
	}
	return nil
}

var _ service.Repository = (*FirestoreRepository)(nil)
