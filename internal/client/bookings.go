package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
)

// Book reserves a single room.
func (c *Client) Book(ctx context.Context, roomID string, req dto.CreateBookingRequest) (models.Booking, error) {
	var out dto.DataResponse[models.Booking]
	path := "/api/v1/rooms/" + url.PathEscape(roomID) + "/bookings"
	if err := c.do(ctx, call{method: http.MethodPost, path: path, body: req, out: &out}); err != nil {
		return models.Booking{}, err
	}
	c.state.addBookings(out.Data)
	return out.Data, nil
}

// BookRooms reserves several rooms of one hotel in a single request.
func (c *Client) BookRooms(ctx context.Context, req dto.CreateBookingRequest) ([]models.Booking, error) {
	var out dto.DataResponse[[]models.Booking]
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/v1/bookings", body: req, out: &out}); err != nil {
		return nil, err
	}
	c.state.addBookings(out.Data...)
	return out.Data, nil
}

// MyBookings refreshes the signed-in user's bookings.
func (c *Client) MyBookings(ctx context.Context) ([]models.Booking, error) {
	var out dto.DataResponse[[]models.Booking]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/bookings/mybookings", out: &out}); err != nil {
		return nil, err
	}
	c.state.setMyBookings(out.Data)
	return out.Data, nil
}

// Bookings lists every booking visible to the session, one page at a time.
func (c *Client) Bookings(ctx context.Context, page, limit int) (dto.ListResponse[models.Booking], error) {
	v := url.Values{}
	setInt(v, "page", page)
	setInt(v, "limit", limit)

	var out dto.ListResponse[models.Booking]
	err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/bookings", query: v, out: &out})
	return out, err
}

func (c *Client) Booking(ctx context.Context, id string) (models.Booking, error) {
	var out dto.DataResponse[models.Booking]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/bookings/" + url.PathEscape(id), out: &out}); err != nil {
		return models.Booking{}, err
	}
	return out.Data, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id string, req dto.UpdateBookingRequest) (models.Booking, error) {
	var out dto.DataResponse[models.Booking]
	if err := c.do(ctx, call{method: http.MethodPut, path: "/api/v1/bookings/" + url.PathEscape(id), body: req, out: &out}); err != nil {
		return models.Booking{}, err
	}
	c.state.replaceBooking(out.Data)
	return out.Data, nil
}

// CancelBooking moves the booking to cancelled.
func (c *Client) CancelBooking(ctx context.Context, id string) (models.Booking, error) {
	status := string(models.StatusCancelled)
	return c.UpdateBooking(ctx, id, dto.UpdateBookingRequest{Status: &status})
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	if err := c.do(ctx, call{method: http.MethodDelete, path: "/api/v1/bookings/" + url.PathEscape(id)}); err != nil {
		return err
	}
	c.state.removeBooking(id)
	return nil
}
