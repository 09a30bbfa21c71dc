package repo

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// CurrentCollection is the Firestore collection holding live records.
const CurrentCollection = "records"

// FirestoreRepository backs the current-records collection with Firestore.
type FirestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository constructs a FirestoreRepository.
func NewFirestoreRepository(client *firestore.Client) *FirestoreRepository {
	if client == nil {
		panic("records repository requires a firestore client")
	}
	return &FirestoreRepository{client: client}
}

func (r *FirestoreRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CurrentCollection)
}

func (r *FirestoreRepository) List(ctx context.Context) ([]record.Record, error) {
	iter := r.collection().OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	items := make([]record.Record, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, persistence.WrapStore("records.list", err)
		}
		var rec record.Record
		if err := doc.DataTo(&rec); err != nil {
			return nil, persistence.WrapStore("records.decode", err)
		}
		rec.ID = doc.Ref.ID
		items = append(items, rec)
	}
	return items, nil
}

func (r *FirestoreRepository) Get(ctx context.Context, id string) (record.Record, error) {
	doc, err := r.collection().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return record.Record{}, persistence.ErrRecordNotFound
	}
	if err != nil {
		return record.Record{}, persistence.WrapStore("records.get", err)
	}

	var rec record.Record
	if err := doc.DataTo(&rec); err != nil {
		return record.Record{}, persistence.WrapStore("records.decode", err)
	}
	rec.ID = doc.Ref.ID
	return rec, nil
}

func (r *FirestoreRepository) Create(ctx context.Context, rec record.Record) error {
	if _, err := r.collection().Doc(rec.ID).Set(ctx, rec); err != nil {
		return persistence.WrapStore("records.create", err)
	}
	return nil
}

func (r *FirestoreRepository) Put(ctx context.Context, rec record.Record) error {
	if _, err := r.collection().Doc(rec.ID).Set(ctx, rec); err != nil {
		return persistence.WrapStore("records.put", err)
	}
	return nil
}

func (r *FirestoreRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection().Doc(id).Delete(ctx); err != nil {
		return persistence.WrapStore("records.delete", err)
	}
	return nil
}

var _ service.Repository = (*FirestoreRepository)(nil)
