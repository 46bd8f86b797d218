package domain

import "time"

// Availability represents a technician's capacity to take new work.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityOffline   Availability = "offline"
)

// DefaultSaturationThreshold is the open-assignment count at which a
// technician flips from available to busy.
const DefaultSaturationThreshold = 3

// Technician is a field worker who can be assigned work orders.
type Technician struct {
	ID             string       `json:"id" bson:"_id,omitempty"`
	Name           string       `json:"name" bson:"name"`
	Email          string       `json:"email" bson:"email"`
	Phone          string       `json:"phone" bson:"phone"`
	Specialty      string       `json:"specialty" bson:"specialty"`
	Zone           string       `json:"zone" bson:"zone"`
	Availability   Availability `json:"availability" bson:"availability"`
	CurrentLoad    int          `json:"current_load" bson:"current_load"`
	Certifications []string     `json:"certifications,omitempty" bson:"certifications,omitempty"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
}

// AvailabilityForLoad derives a technician's availability from their open
// assignment count. Offline is externally controlled and never overwritten
// here; assignment logic only moves technicians between available and busy.
func AvailabilityForLoad(current Availability, load, threshold int) Availability {
	if current == AvailabilityOffline {
		return AvailabilityOffline
	}
	if load >= threshold {
		return AvailabilityBusy
	}
	return AvailabilityAvailable
}
