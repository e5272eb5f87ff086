package domain

import "time"

// Staff represents a staff member (barber/stylist). Only active staff are
// offered in the booking picker; historical appointments may still reference
// a deactivated staff member.
type Staff struct {
	ID        int64
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service represents a bookable service in the catalog.
type Service struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Client represents a salon client.
type Client struct {
	ID        int64
	Name      string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
