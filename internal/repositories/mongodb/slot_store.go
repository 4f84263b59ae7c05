package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
	pkgmongo "github.com/ArowuTest/nebula-luck-backend/pkg/mongodb"
)

// slotDocument is one stored slot
type slotDocument struct {
	Slot      string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// SlotStore implements repositories.SlotStore on a MongoDB collection
type SlotStore struct {
	client     *pkgmongo.Client
	collection *mongo.Collection
}

var _ repositories.SlotStore = (*SlotStore)(nil)

// NewSlotStore creates a new SlotStore. The client is disconnected on Close when non-nil.
func NewSlotStore(client *pkgmongo.Client, db *mongo.Database, collection string) *SlotStore {
	return &SlotStore{
		client:     client,
		collection: db.Collection(collection),
	}
}

// Get retrieves a slot by name
func (r *SlotStore) Get(ctx context.Context, slot string) ([]byte, error) {
	var doc slotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": slot}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, repositories.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.Data, nil
}

// Put replaces a slot document, inserting it if missing
func (r *SlotStore) Put(ctx context.Context, slot string, data []byte) error {
	doc := slotDocument{Slot: slot, Data: data, UpdatedAt: time.Now()}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": slot}, doc, options.Replace().SetUpsert(true))
	return err
}

// Close disconnects the owning client
func (r *SlotStore) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}
