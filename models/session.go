package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Session is a signed-in console user. The bearer token is issued by the
// fleet backend; this row only caches it together with the profile the login
// response carried, so the console can answer /profile without another
// round trip.
type Session struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string         `gorm:"size:255;index" json:"email"`
	Token      string         `gorm:"type:text;uniqueIndex;not null" json:"-"`
	Roles      pq.StringArray `gorm:"type:text[]" json:"roles"`
	Profile    datatypes.JSON `json:"profile,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	LastSeenAt time.Time      `json:"lastSeenAt"`
}

func (Session) TableName() string {
	return "sessions"
}

// KVEntry is one key of the console's durable key/value state (the request
// counter lives here). Fleet entities never do.
type KVEntry struct {
	Key       string    `gorm:"size:100;primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
