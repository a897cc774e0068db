package service

import (
	"context"
	"errors"

	"github.com/hongminglow/atithi-inn/internal/logging"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

// HotelService searches and maintains hotels.
type HotelService struct {
	hotels storage.HotelStore
	rooms  storage.RoomStore
	log    logging.Logger
}

// NewHotelService consults rooms to answer availability searches.
func NewHotelService(hotels storage.HotelStore, rooms storage.RoomStore, log logging.Logger) *HotelService {
	return &HotelService{hotels: hotels, rooms: rooms, log: log}
}

// List runs a hotel search. With an availability window only hotels owning
// a fitting room qualify; when none do the page is empty.
func (s *HotelService) List(ctx context.Context, q HotelQuery) (ListResult[models.Hotel], error) {
	filter := q.Filter
	if q.Availability != nil {
		ids, err := s.rooms.AvailableHotelIDs(ctx, *q.Availability)
		if err != nil {
			return ListResult[models.Hotel]{}, unexpected(ctx, s.log, "resolve available rooms", err)
		}
		s.log.Debug(ctx, "availability filter", "hotels", len(ids), "guests", q.Availability.Guests)
		filter.RestrictIDs = true
		filter.IDs = ids
	}

	hotels, total, err := s.hotels.ListHotels(ctx, filter, q.Page)
	if err != nil {
		return ListResult[models.Hotel]{}, unexpected(ctx, s.log, "list hotels", err)
	}
	return ListResult[models.Hotel]{Items: hotels, Total: total, Page: q.Page}, nil
}

func (s *HotelService) All(ctx context.Context) ([]models.Hotel, error) {
	hotels, err := s.hotels.AllHotels(ctx)
	if err != nil {
		return nil, unexpected(ctx, s.log, "list all hotels", err)
	}
	return hotels, nil
}

func (s *HotelService) Get(ctx context.Context, id string) (models.Hotel, error) {
	if err := checkID(id); err != nil {
		return models.Hotel{}, err
	}
	hotel, err := s.hotels.FindHotelByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Hotel{}, notFound(CodeHotelNotFound, "Hotel not found")
	}
	if err != nil {
		return models.Hotel{}, unexpected(ctx, s.log, "find hotel", err)
	}
	return hotel, nil
}

func (s *HotelService) Create(ctx context.Context, req dto.HotelRequest) (models.Hotel, error) {
	if req.Name == nil || req.City == nil || req.CheapestPrice == nil {
		return models.Hotel{}, invalid(CodeValidationFailed, "Please provide name, city, and cheapestPrice fields")
	}
	var hotel models.Hotel
	req.Apply(&hotel)
	hotel.Normalize()
	if err := hotel.Validate(); err != nil {
		return models.Hotel{}, invalidField(err)
	}
	created, err := s.hotels.CreateHotel(ctx, hotel)
	if err != nil {
		return models.Hotel{}, unexpected(ctx, s.log, "create hotel", err)
	}
	s.log.Info(ctx, "hotel created", "hotel_id", created.ID)
	return created, nil
}

func (s *HotelService) Update(ctx context.Context, id string, req dto.HotelRequest) (models.Hotel, error) {
	hotel, err := s.Get(ctx, id)
	if err != nil {
		return models.Hotel{}, err
	}
	req.Apply(&hotel)
	hotel.Normalize()
	if err := hotel.Validate(); err != nil {
		return models.Hotel{}, invalidField(err)
	}
	updated, err := s.hotels.UpdateHotel(ctx, hotel)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Hotel{}, notFound(CodeHotelNotFound, "Hotel not found")
	}
	if err != nil {
		return models.Hotel{}, unexpected(ctx, s.log, "update hotel", err)
	}
	return updated, nil
}

// Delete removes the hotel together with its rooms.
func (s *HotelService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := s.hotels.DeleteHotel(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(CodeHotelNotFound, "Hotel not found")
	}
	if err != nil {
		return unexpected(ctx, s.log, "delete hotel", err)
	}
	s.log.Info(ctx, "hotel deleted", "hotel_id", id)
	return nil
}
