package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
)

// HotelSearch holds the hotel list filters. Zero values are not sent.
type HotelSearch struct {
	City      string
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
	StartDate string
	EndDate   string
	Guests    int
	Page      int
	Limit     int
}

func (s HotelSearch) values() url.Values {
	v := url.Values{}
	setString(v, "city", s.City)
	setFloat(v, "minPrice", s.MinPrice)
	setFloat(v, "maxPrice", s.MaxPrice)
	setFloat(v, "ratings", s.MinRating)
	setString(v, "startDate", s.StartDate)
	setString(v, "endDate", s.EndDate)
	setInt(v, "guests", s.Guests)
	setInt(v, "page", s.Page)
	setInt(v, "limit", s.Limit)
	return v
}

// Hotels runs a search and keeps the page in State.
func (c *Client) Hotels(ctx context.Context, search HotelSearch) (dto.ListResponse[models.Hotel], error) {
	var out dto.ListResponse[models.Hotel]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/hotels", query: search.values(), out: &out}); err != nil {
		return out, err
	}
	c.state.setHotelPage(out)
	return out, nil
}

// Hotel fetches hotel details with rooms and caches them.
func (c *Client) Hotel(ctx context.Context, id string) (models.Hotel, error) {
	var out dto.DataResponse[models.Hotel]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/hotels/" + url.PathEscape(id), out: &out}); err != nil {
		return models.Hotel{}, err
	}
	c.state.cacheHotel(out.Data)
	return out.Data, nil
}

func (c *Client) AllHotels(ctx context.Context) ([]models.Hotel, error) {
	var out dto.DataResponse[[]models.Hotel]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/hotels/all", out: &out}); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateHotel(ctx context.Context, req dto.HotelRequest) (models.Hotel, error) {
	var out dto.DataResponse[models.Hotel]
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/v1/hotels", body: req, out: &out}); err != nil {
		return models.Hotel{}, err
	}
	c.state.cacheHotel(out.Data)
	return out.Data, nil
}

func (c *Client) UpdateHotel(ctx context.Context, id string, req dto.HotelRequest) (models.Hotel, error) {
	var out dto.DataResponse[models.Hotel]
	if err := c.do(ctx, call{method: http.MethodPut, path: "/api/v1/hotels/" + url.PathEscape(id), body: req, out: &out}); err != nil {
		return models.Hotel{}, err
	}
	c.state.cacheHotel(out.Data)
	return out.Data, nil
}

func (c *Client) DeleteHotel(ctx context.Context, id string) error {
	if err := c.do(ctx, call{method: http.MethodDelete, path: "/api/v1/hotels/" + url.PathEscape(id)}); err != nil {
		return err
	}
	c.state.forgetHotel(id)
	return nil
}

// Rooms lists rooms, optionally restricted to one hotel.
func (c *Client) Rooms(ctx context.Context, hotelID string, page, limit int) (dto.ListResponse[models.Room], error) {
	v := url.Values{}
	setString(v, "hotel", hotelID)
	setInt(v, "page", page)
	setInt(v, "limit", limit)

	var out dto.ListResponse[models.Room]
	err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/rooms", query: v, out: &out})
	return out, err
}

// CreateRoom adds a room. The cached hotel details go stale and are dropped.
func (c *Client) CreateRoom(ctx context.Context, req dto.RoomRequest) (models.Room, error) {
	var out dto.DataResponse[models.Room]
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/v1/rooms", body: req, out: &out}); err != nil {
		return models.Room{}, err
	}
	c.state.forgetHotelDetails(out.Data.HotelID)
	return out.Data, nil
}

func (c *Client) UpdateRoom(ctx context.Context, id string, req dto.RoomRequest) (models.Room, error) {
	var out dto.DataResponse[models.Room]
	if err := c.do(ctx, call{method: http.MethodPut, path: "/api/v1/rooms/" + url.PathEscape(id), body: req, out: &out}); err != nil {
		return models.Room{}, err
	}
	c.state.forgetHotelDetails(out.Data.HotelID)
	return out.Data, nil
}

func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	if err := c.do(ctx, call{method: http.MethodDelete, path: "/api/v1/rooms/" + url.PathEscape(id)}); err != nil {
		return err
	}
	c.state.forgetRoom(id)
	return nil
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setInt(v url.Values, key string, value int) {
	if value > 0 {
		v.Set(key, strconv.Itoa(value))
	}
}

func setFloat(v url.Values, key string, value float64) {
	if value > 0 {
		v.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
	}
}
