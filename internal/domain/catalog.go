package domain

import (
	"time"

	"github.com/google/uuid"
)

// CatalogService is a sellable offering (e.g. a mixing package).
// The intake pipeline only reads services; catalog management mutates them
// elsewhere. A service is bookable when Status is StatusActive and DeletedAt
// is nil.
type CatalogService struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// StatusActive marks a catalog service open for booking.
const StatusActive = "active"
