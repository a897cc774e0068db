package dto

import "github.com/hongminglow/atithi-inn/internal/models"

// HotelRequest is used for both create and partial update; nil fields are
// left untouched.
type HotelRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	City          *string   `json:"city"`
	Address       *string   `json:"address"`
	Photos        *[]string `json:"photos"`
	Rating        *float64  `json:"rating"`
	NumReviews    *int      `json:"numReviews"`
	Amenities     *[]string `json:"amenities"`
	CheapestPrice *float64  `json:"cheapestPrice"`
}

// Apply copies the set fields onto h.
func (r HotelRequest) Apply(h *models.Hotel) {
	if r.Name != nil {
		h.Name = *r.Name
	}
	if r.Description != nil {
		h.Description = *r.Description
	}
	if r.City != nil {
		h.City = *r.City
	}
	if r.Address != nil {
		h.Address = *r.Address
	}
	if r.Photos != nil {
		h.Photos = *r.Photos
	}
	if r.Rating != nil {
		h.Rating = *r.Rating
	}
	if r.NumReviews != nil {
		h.NumReviews = *r.NumReviews
	}
	if r.Amenities != nil {
		h.Amenities = *r.Amenities
	}
	if r.CheapestPrice != nil {
		h.CheapestPrice = *r.CheapestPrice
	}
}

// ListResponse is the paginated list envelope shared by list endpoints.
type ListResponse[T any] struct {
	Success     bool `json:"success"`
	Count       int  `json:"count"`
	TotalCount  int  `json:"totalCount"`
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	Data        []T  `json:"data"`
}

type DataResponse[T any] struct {
	Success bool `json:"success"`
	Count   int  `json:"count,omitempty"`
	Data    T    `json:"data"`
}
