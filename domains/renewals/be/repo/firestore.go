package repo

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	recordsrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/repo"
	"github.com/Ashhiii/BFPSYSTEM-sub000/domains/renewals/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// RenewalCollection holds one latest-snapshot document per entity key.
const RenewalCollection = "renewals"

// FirestoreRepository backs the renewals collection with Firestore.
type FirestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository constructs a FirestoreRepository.
func NewFirestoreRepository(client *firestore.Client) *FirestoreRepository {
	if client == nil {
		panic("renewals repository requires a firestore client")
	}
	return &FirestoreRepository{client: client}
}

func (r *FirestoreRepository) GetLatest(ctx context.Context, entityKey string) (record.Renewal, error) {
	doc, err := r.client.Collection(RenewalCollection).Doc(entityKey).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return record.Renewal{}, persistence.ErrRenewalNotFound
	}
	if err != nil {
		return record.Renewal{}, persistence.WrapStore("renewals.getLatest", err)
	}

	var ren record.Renewal
	if err := doc.DataTo(&ren); err != nil {
		return record.Renewal{}, persistence.WrapStore("renewals.decode", err)
	}
	ren.EntityKey = doc.Ref.ID
	return ren, nil
}

// Renew commits the snapshot upsert and the new current record as one batch,
// so either both land or neither does.
func (r *FirestoreRepository) Renew(ctx context.Context, renewal record.Renewal, newRecord record.Record) error {
	batch := r.client.Batch()
	batch.Set(r.client.Collection(RenewalCollection).Doc(renewal.EntityKey), renewal)
	batch.Set(r.client.Collection(recordsrepo.CurrentCollection).Doc(newRecord.ID), newRecord)

	if _, err := batch.Commit(ctx); err != nil {
		return persistence.WrapStore("renewals.renew", err)
	}
	return nil
}

var _ service.Repository = (*FirestoreRepository)(nil)
