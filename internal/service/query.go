package service

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

// ListResult is one page of a listing.
type ListResult[T any] struct {
	Items []T
	Total int
	Page  storage.Page
}

func (r ListResult[T]) TotalPages() int {
	return r.Page.TotalPages(r.Total)
}

// HotelQuery is the parsed form of the hotel search query string.
type HotelQuery struct {
	Filter       storage.HotelFilter
	Page         storage.Page
	Availability *storage.Availability
}

// hotelFields are passed through as exact-match filters.
var hotelFields = map[string]struct{}{
	"name": {}, "address": {}, "description": {}, "rating": {}, "numReviews": {}, "cheapestPrice": {},
}

var hotelControls = map[string]struct{}{
	"city": {}, "minPrice": {}, "maxPrice": {}, "ratings": {}, "limit": {}, "page": {},
	"startDate": {}, "endDate": {}, "guests": {},
}

// ParseHotelQuery validates the hotel search parameters.
func ParseHotelQuery(values url.Values, defaultPageSize int) (HotelQuery, error) {
	var unknown []string
	for key := range values {
		_, control := hotelControls[key]
		_, field := hotelFields[key]
		if !control && !field {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return HotelQuery{}, invalid(CodeUnsupportedFilter, fmt.Sprintf("Unsupported filter: %s", strings.Join(unknown, ", ")))
	}

	q := HotelQuery{Page: parsePage(values, defaultPageSize)}
	f := &q.Filter
	f.City = strings.TrimSpace(values.Get("city"))

	var err error
	if f.MinPrice, err = floatParam(values, "minPrice"); err != nil {
		return HotelQuery{}, err
	}
	if f.MaxPrice, err = floatParam(values, "maxPrice"); err != nil {
		return HotelQuery{}, err
	}
	if f.MinRating, err = floatParam(values, "ratings"); err != nil {
		return HotelQuery{}, err
	}
	if f.Rating, err = floatParam(values, "rating"); err != nil {
		return HotelQuery{}, err
	}
	if f.CheapestPrice, err = floatParam(values, "cheapestPrice"); err != nil {
		return HotelQuery{}, err
	}
	if f.NumReviews, err = intParam(values, "numReviews"); err != nil {
		return HotelQuery{}, err
	}
	f.Name = stringParam(values, "name")
	f.Address = stringParam(values, "address")
	f.Description = stringParam(values, "description")

	start, end, guests := values.Get("startDate"), values.Get("endDate"), values.Get("guests")
	if start != "" && end != "" && guests != "" {
		a, err := parseAvailability(start, end, guests)
		if err != nil {
			return HotelQuery{}, err
		}
		q.Availability = &a
	}
	return q, nil
}

func parseAvailability(start, end, guests string) (storage.Availability, error) {
	from, err := models.ParseDate(start)
	if err != nil {
		return storage.Availability{}, invalid(CodeValidationFailed, "Invalid startDate")
	}
	to, err := models.ParseDate(end)
	if err != nil {
		return storage.Availability{}, invalid(CodeValidationFailed, "Invalid endDate")
	}
	if !to.After(from) {
		return storage.Availability{}, invalid(CodeValidationFailed, "endDate must be after startDate")
	}
	n, err := strconv.Atoi(strings.TrimSpace(guests))
	if err != nil || n < 1 {
		return storage.Availability{}, invalid(CodeValidationFailed, "guests must be a positive number")
	}
	return storage.Availability{Start: from, End: to, Guests: n}, nil
}

// RoomQuery is the parsed form of the room listing query string.
type RoomQuery struct {
	Filter storage.RoomFilter
	Page   storage.Page
}

func ParseRoomQuery(values url.Values, defaultPageSize int) (RoomQuery, error) {
	q := RoomQuery{Page: parsePage(values, defaultPageSize)}
	q.Filter.HotelID = strings.TrimSpace(values.Get("hotel"))
	q.Filter.Title = strings.TrimSpace(values.Get("title"))

	var err error
	if q.Filter.Price, err = floatParam(values, "price"); err != nil {
		return RoomQuery{}, err
	}
	if q.Filter.MaxPeople, err = intParam(values, "maxPeople"); err != nil {
		return RoomQuery{}, err
	}
	if q.Filter.HotelID != "" {
		if err := checkID(q.Filter.HotelID); err != nil {
			return RoomQuery{}, err
		}
	}
	return q, nil
}

// parsePage is lenient: unparsable page or limit values fall back to the
// defaults.
func parsePage(values url.Values, defaultPageSize int) storage.Page {
	number, _ := strconv.Atoi(values.Get("page"))
	size, _ := strconv.Atoi(values.Get("limit"))
	return storage.NewPage(number, size, defaultPageSize)
}

func stringParam(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	v := values.Get(key)
	return &v
}

func floatParam(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalid(CodeValidationFailed, fmt.Sprintf("Invalid value for %s", key))
	}
	return &v, nil
}

func intParam(values url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalid(CodeValidationFailed, fmt.Sprintf("Invalid value for %s", key))
	}
	return &v, nil
}
