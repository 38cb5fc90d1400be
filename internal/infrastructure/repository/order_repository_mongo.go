package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sangkips/order-notifier/internal/domain/entity"
	domainRepo "github.com/sangkips/order-notifier/internal/domain/repository"
)

// OrdersCollection holds one document per order id.
const OrdersCollection = "orders"

type mongoOrderRepository struct {
	collection *mongo.Collection
	closeOnce  sync.Once
}

// NewMongoOrderRepository creates a MongoDB-backed order store
func NewMongoOrderRepository(db *mongo.Database) domainRepo.OrderStore {
	return &mongoOrderRepository{collection: db.Collection(OrdersCollection)}
}

// Upsert merge-writes rec. updatedAt, and paidAt when absent, take the server clock.
func (r *mongoOrderRepository) Upsert(ctx context.Context, rec *entity.OrderRecord) error {
	set := bson.M{
		"items":   rec.Items,
		"total":   rec.Total,
		"cashier": rec.Cashier,
		"branch":  rec.Branch,
		"channel": rec.Channel,
		"status":  rec.Status.String(),
	}
	currentDate := bson.M{"updatedAt": true}
	if rec.PaidAt != nil {
		set["paidAt"] = *rec.PaidAt
	} else {
		currentDate["paidAt"] = true
	}

	filter := bson.M{"_id": rec.OrderID}
	update := bson.M{"$set": set, "$currentDate": currentDate}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert order %s: %w", rec.OrderID, err)
	}
	return nil
}

func (r *mongoOrderRepository) Get(ctx context.Context, orderID string) (*entity.OrderRecord, error) {
	var rec entity.OrderRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	return &rec, nil
}

func (r *mongoOrderRepository) Enabled() bool {
	return true
}

func (r *mongoOrderRepository) Close(ctx context.Context) error {
	var err error
	r.closeOnce.Do(func() {
		err = r.collection.Database().Client().Disconnect(ctx)
	})
	return err
}
