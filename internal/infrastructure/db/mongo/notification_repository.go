package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldops/dispatch-system/internal/core/domain"
)

const collectionNotifications = "notifications"

// NotificationRepository records delivered assignment notifications to an
// audit collection. Writes here are advisory: the dispatcher logs and drops
// the record on failure rather than retrying.
type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.AssignmentNotification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	channels := make([]string, 0, len(n.Channels))
	for _, ch := range n.Channels {
		channels = append(channels, string(ch))
	}

	doc := bson.M{
		"order_id":      n.OrderID,
		"technician_id": n.TechnicianID,
		"assigned_by":   n.AssignedBy,
		"channels":      channels,
		"sent_at":       n.SentAt.UTC(),
		"recorded_at":   time.Now().UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
