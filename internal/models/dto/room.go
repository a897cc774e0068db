package dto

import "github.com/hongminglow/atithi-inn/internal/models"

type RoomRequest struct {
	Title       *string              `json:"title"`
	Price       *float64             `json:"price"`
	MaxPeople   *int                 `json:"maxPeople"`
	Description *string              `json:"description"`
	Image       *string              `json:"image"`
	RoomNumbers *[]models.RoomNumber `json:"roomNumbers"`
	Hotel       *string              `json:"hotel"`
}

// Missing lists the create-time fields that were not supplied.
func (r RoomRequest) Missing() []string {
	var missing []string
	if r.Title == nil {
		missing = append(missing, "title")
	}
	if r.Price == nil {
		missing = append(missing, "price")
	}
	if r.MaxPeople == nil {
		missing = append(missing, "maxPeople")
	}
	if r.Description == nil {
		missing = append(missing, "description")
	}
	if r.Image == nil {
		missing = append(missing, "image")
	}
	if r.RoomNumbers == nil {
		missing = append(missing, "roomNumbers")
	}
	if r.Hotel == nil {
		missing = append(missing, "hotel")
	}
	return missing
}

func (r RoomRequest) Apply(room *models.Room) {
	if r.Title != nil {
		room.Title = *r.Title
	}
	if r.Price != nil {
		room.Price = *r.Price
	}
	if r.MaxPeople != nil {
		room.MaxPeople = *r.MaxPeople
	}
	if r.Description != nil {
		room.Description = *r.Description
	}
	if r.Image != nil {
		room.Image = *r.Image
	}
	if r.RoomNumbers != nil {
		room.RoomNumbers = *r.RoomNumbers
	}
	if r.Hotel != nil {
		room.HotelID = *r.Hotel
	}
}
