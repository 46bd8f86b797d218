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

const collectionTechnicians = "technicians"

type TechnicianRepository struct {
	col *mongo.Collection
}

func NewTechnicianRepository(db *mongo.Database) *TechnicianRepository {
	return &TechnicianRepository{col: db.Collection(collectionTechnicians)}
}

// Create inserts a new technician document.
func (r *TechnicianRepository) Create(ctx context.Context, t *domain.Technician) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *TechnicianRepository) FindByID(ctx context.Context, id string) (*domain.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Technician
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTechnicianNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns technicians matching filter, ordered by ascending ID. The
// stable ordering is part of the repository contract: the matching policy's
// final tie-break depends on it.
func (r *TechnicianRepository) List(ctx context.Context, f ports.ListTechniciansFilter) ([]*domain.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Zone != "" {
		filter["zone"] = f.Zone
	}
	if f.Specialty != "" {
		filter["specialty"] = f.Specialty
	}
	if f.Availability != "" {
		filter["availability"] = f.Availability
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var technicians []*domain.Technician
	if err := cursor.All(ctx, &technicians); err != nil {
		return nil, err
	}
	return technicians, nil
}

// Save replaces the technician document. Assignment operations funnel
// through a single writer, so a full replace is race-free here.
func (r *TechnicianRepository) Save(ctx context.Context, t *domain.Technician) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTechnicianNotFound
	}
	return nil
}

// EnsureIndexes creates the matching-policy query indexes.
func (r *TechnicianRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "specialty", Value: 1}, {Key: "availability", Value: 1}}},
		{Keys: bson.D{{Key: "zone", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
