package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/atithi-inn/internal/logging"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

// RoomService maintains the rooms listed under each hotel.
type RoomService struct {
	rooms  storage.RoomStore
	hotels storage.HotelStore
	log    logging.Logger
}

// NewRoomService checks that a room's hotel exists in hotels before saving it.
func NewRoomService(rooms storage.RoomStore, hotels storage.HotelStore, log logging.Logger) *RoomService {
	return &RoomService{rooms: rooms, hotels: hotels, log: log}
}

func (s *RoomService) List(ctx context.Context, q RoomQuery) (ListResult[models.Room], error) {
	rooms, total, err := s.rooms.ListRooms(ctx, q.Filter, q.Page)
	if err != nil {
		return ListResult[models.Room]{}, unexpected(ctx, s.log, "list rooms", err)
	}
	return ListResult[models.Room]{Items: rooms, Total: total, Page: q.Page}, nil
}

// Get returns the room with its hotel name populated.
func (s *RoomService) Get(ctx context.Context, id string) (models.Room, error) {
	if err := checkID(id); err != nil {
		return models.Room{}, err
	}
	room, err := s.rooms.FindRoomByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Room{}, notFound(CodeRoomNotFound, "Room not found")
	}
	if err != nil {
		return models.Room{}, unexpected(ctx, s.log, "find room", err)
	}
	return room, nil
}

// Create requires every field and an existing parent hotel.
func (s *RoomService) Create(ctx context.Context, req dto.RoomRequest) (models.Room, error) {
	if missing := req.Missing(); len(missing) > 0 {
		return models.Room{}, invalid(CodeValidationFailed,
			fmt.Sprintf("Please provide all required fields: %s", strings.Join(missing, ", ")))
	}
	var room models.Room
	req.Apply(&room)
	room.Normalize()
	if err := room.Validate(); err != nil {
		return models.Room{}, invalidField(err)
	}
	if err := s.ensureHotel(ctx, room.HotelID); err != nil {
		return models.Room{}, err
	}

	created, err := s.rooms.CreateRoom(ctx, room)
	if err != nil {
		return models.Room{}, s.writeError(ctx, err)
	}
	s.log.Info(ctx, "room created", "room_id", created.ID, "hotel_id", created.HotelID)
	return created, nil
}

func (s *RoomService) Update(ctx context.Context, id string, req dto.RoomRequest) (models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return models.Room{}, err
	}
	previousHotel := room.HotelID
	req.Apply(&room)
	room.Normalize()
	if err := room.Validate(); err != nil {
		return models.Room{}, invalidField(err)
	}
	if room.HotelID != previousHotel {
		if err := s.ensureHotel(ctx, room.HotelID); err != nil {
			return models.Room{}, err
		}
	}

	updated, err := s.rooms.UpdateRoom(ctx, room)
	if err != nil {
		return models.Room{}, s.writeError(ctx, err)
	}
	return updated, nil
}

// Delete removes the room; its hotel's derived room list follows.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := s.rooms.DeleteRoom(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(CodeRoomNotFound, "Room not found")
	}
	if err != nil {
		return unexpected(ctx, s.log, "delete room", err)
	}
	return nil
}

func (s *RoomService) ensureHotel(ctx context.Context, hotelID string) error {
	if checkID(hotelID) != nil {
		return notFound(CodeHotelNotFound, "Hotel not found")
	}
	_, err := s.hotels.FindHotelByID(ctx, hotelID)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(CodeHotelNotFound, "Hotel not found")
	}
	if err != nil {
		return unexpected(ctx, s.log, "find hotel", err)
	}
	return nil
}

// writeError maps a vanished parent hotel, or room, to 404.
func (s *RoomService) writeError(ctx context.Context, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(CodeHotelNotFound, "Hotel not found")
	}
	return unexpected(ctx, s.log, "write room", err)
}
