package model

import (
	"time"

	"github.com/google/uuid"
)

// Tracker is the registry entry for one tracked entity. The live telemetry
// state of a tracker is held separately by its aggregate; this structure only
// carries identity and bookkeeping.
type Tracker struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	LastSeen  time.Time `json:"lastSeen,omitempty" bson:"lastSeen,omitempty"`
}

func NewTracker(name string) *Tracker {
	return &Tracker{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    "inactive",
		CreatedAt: time.Now().UTC(),
	}
}

// Touch records that the tracker reported an accepted position.
func (t *Tracker) Touch(at time.Time) {
	t.LastSeen = at.UTC()
	t.Status = "active"
}
