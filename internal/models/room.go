package models

import (
	"encoding/json"
	"strings"
	"time"
)

// RoomNumber is a physical room behind a room type, with the days it cannot
// be booked.
type RoomNumber struct {
	Number           string      `json:"number"`
	UnavailableDates []time.Time `json:"unavailableDates"`
}

// UnmarshalJSON accepts either a bare room number string or the object form.
// Dates in the object form may be YYYY-MM-DD or RFC 3339.
func (rn *RoomNumber) UnmarshalJSON(data []byte) error {
	var number string
	if err := json.Unmarshal(data, &number); err == nil {
		*rn = RoomNumber{Number: number, UnavailableDates: []time.Time{}}
		return nil
	}

	var raw struct {
		Number           json.RawMessage `json:"number"`
		UnavailableDates []string        `json:"unavailableDates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := RoomNumber{UnavailableDates: make([]time.Time, 0, len(raw.UnavailableDates))}
	if len(raw.Number) > 0 && string(raw.Number) != "null" {
		// numbers are sometimes sent as JSON numbers
		out.Number = strings.Trim(string(raw.Number), `"`)
	}
	for _, value := range raw.UnavailableDates {
		t, err := ParseDate(value)
		if err != nil {
			return err
		}
		out.UnavailableDates = append(out.UnavailableDates, t)
	}
	*rn = out
	return nil
}

// Room is a room type offered by a hotel.
type Room struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Price       float64      `json:"price"`
	MaxPeople   int          `json:"maxPeople"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	RoomNumbers []RoomNumber `json:"roomNumbers"`
	HotelID     string       `json:"hotel"`
	HotelName   string       `json:"hotelName,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (r *Room) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.HotelID = strings.TrimSpace(r.HotelID)
	if r.RoomNumbers == nil {
		r.RoomNumbers = []RoomNumber{}
	}
	for i := range r.RoomNumbers {
		if r.RoomNumbers[i].UnavailableDates == nil {
			r.RoomNumbers[i].UnavailableDates = []time.Time{}
		}
	}
}

func (r Room) Validate() error {
	switch {
	case r.Title == "":
		return &FieldError{Field: "title", Message: "Room title is required"}
	case r.Price <= 0:
		return &FieldError{Field: "price", Message: "Room price must be greater than zero"}
	case r.MaxPeople < 1:
		return &FieldError{Field: "maxPeople", Message: "Room must accommodate at least one guest"}
	case strings.TrimSpace(r.Description) == "":
		return &FieldError{Field: "description", Message: "Room description is required"}
	case strings.TrimSpace(r.Image) == "":
		return &FieldError{Field: "image", Message: "Room image is required"}
	case r.HotelID == "":
		return &FieldError{Field: "hotel", Message: "Room must belong to a hotel"}
	}
	for _, rn := range r.RoomNumbers {
		if strings.TrimSpace(rn.Number) == "" {
			return &FieldError{Field: "roomNumbers", Message: "Room numbers cannot be empty"}
		}
	}
	return nil
}

// AvailableFor reports whether the room fits guests and none of its room
// numbers is marked unavailable in [start, end).
func (r Room) AvailableFor(start, end time.Time, guests int) bool {
	if r.MaxPeople < guests {
		return false
	}
	for _, rn := range r.RoomNumbers {
		for _, d := range rn.UnavailableDates {
			if !d.Before(start) && d.Before(end) {
				return false
			}
		}
	}
	return true
}
