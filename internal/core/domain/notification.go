package domain

import "time"

// Channel identifies a delivery medium for assignment notifications.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// DefaultChannels are used when the caller does not pick channels explicitly.
var DefaultChannels = []Channel{ChannelEmail, ChannelSMS}

// AssignmentNotification tells a technician they have been given a work order.
// Delivery is best-effort; a failed send never undoes the assignment.
type AssignmentNotification struct {
	OrderID      string    `json:"order_id" bson:"order_id"`
	TechnicianID string    `json:"technician_id" bson:"technician_id"`
	AssignedBy   string    `json:"assigned_by" bson:"assigned_by"`
	Channels     []Channel `json:"channels" bson:"channels"`
	SentAt       time.Time `json:"sent_at" bson:"sent_at"`
}
