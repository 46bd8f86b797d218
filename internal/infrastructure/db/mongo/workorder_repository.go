package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fieldops/dispatch-system/internal/core/domain"
	"github.com/fieldops/dispatch-system/internal/core/ports"
)

const collectionWorkOrders = "work_orders"

type WorkOrderRepository struct {
	col *mongo.Collection
}

func NewWorkOrderRepository(db *mongo.Database) *WorkOrderRepository {
	return &WorkOrderRepository{col: db.Collection(collectionWorkOrders)}
}

// Create inserts a new work-order document.
func (r *WorkOrderRepository) Create(ctx context.Context, o *domain.WorkOrder) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, o)
	return err
}

func (r *WorkOrderRepository) FindByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.WorkOrder
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// List returns work orders matching filter, newest first.
func (r *WorkOrderRepository) List(ctx context.Context, f ports.ListWorkOrdersFilter) ([]*domain.WorkOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Zone != "" {
		filter["zone"] = f.Zone
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*domain.WorkOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Save replaces the work-order document.
func (r *WorkOrderRepository) Save(ctx context.Context, o *domain.WorkOrder) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// EnsureIndexes creates the listing and assignment-lookup indexes.
func (r *WorkOrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "zone", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_technician_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
