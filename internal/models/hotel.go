package models

import (
	"strings"
	"time"
)

// Hotel is a bookable property. Rooms is derived on read from the rooms that
// reference the hotel and is never written back.
type Hotel struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	City          string    `json:"city"`
	Address       string    `json:"address"`
	Photos        []string  `json:"photos"`
	Rating        float64   `json:"rating"`
	NumReviews    int       `json:"numReviews"`
	Amenities     []string  `json:"amenities"`
	CheapestPrice float64   `json:"cheapestPrice"`
	Rooms         []Room    `json:"rooms"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Normalize trims free-text fields and replaces nil slices so the JSON shape
// stays stable.
func (h *Hotel) Normalize() {
	h.Name = strings.TrimSpace(h.Name)
	h.City = strings.TrimSpace(h.City)
	h.Address = strings.TrimSpace(h.Address)
	if h.Photos == nil {
		h.Photos = []string{}
	}
	if h.Amenities == nil {
		h.Amenities = []string{}
	}
	if h.Rooms == nil {
		h.Rooms = []Room{}
	}
}

func (h Hotel) Validate() error {
	switch {
	case h.Name == "":
		return &FieldError{Field: "name", Message: "Hotel name is required"}
	case strings.TrimSpace(h.Description) == "":
		return &FieldError{Field: "description", Message: "Description is required"}
	case h.City == "":
		return &FieldError{Field: "city", Message: "City is required"}
	case h.Address == "":
		return &FieldError{Field: "address", Message: "Address is required"}
	case h.Rating < 0 || h.Rating > 5:
		return &FieldError{Field: "rating", Message: "Rating must be between 0 and 5"}
	case h.NumReviews < 0:
		return &FieldError{Field: "numReviews", Message: "Review count cannot be negative"}
	case h.CheapestPrice < 0:
		return &FieldError{Field: "cheapestPrice", Message: "Price cannot be negative"}
	}
	return nil
}
