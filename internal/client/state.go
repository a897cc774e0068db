package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
)

// Session is a signed-in identity as remembered on disk.
type Session struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      *models.User  `json:"user,omitempty"`
	Admin     *models.Admin `json:"admin,omitempty"`
}

// Expired reports whether the server will reject the token by now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type persisted struct {
	UserInfo  *Session `json:"userInfo,omitempty"`
	AdminInfo *Session `json:"adminInfo,omitempty"`
}

// State mirrors what the client has learned from the API. Sessions survive
// restarts through the state file; everything else lives for the process.
type State struct {
	mu   sync.RWMutex
	path string
	now  func() time.Time

	sessions   persisted
	hotelPage  *dto.ListResponse[models.Hotel]
	hotels     map[string]models.Hotel
	myBookings []models.Booking
}

// NewState returns an in-memory state that is never written to disk.
func NewState() *State {
	return &State{now: time.Now, hotels: make(map[string]models.Hotel)}
}

// LoadState reads sessions from path. A missing file yields an empty state
// bound to path.
func LoadState(path string) (*State, error) {
	s := NewState()
	s.path = path

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if err := json.Unmarshal(raw, &s.sessions); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", path, err)
	}
	return s, nil
}

// Token picks the bearer for the next request. An admin session wins over a
// user session; expired sessions are skipped.
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	for _, sess := range []*Session{s.sessions.AdminInfo, s.sessions.UserInfo} {
		if sess != nil && sess.Token != "" && !sess.Expired(now) {
			return sess.Token
		}
	}
	return ""
}

func (s *State) UserSession() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSession(s.sessions.UserInfo)
}

func (s *State) AdminSession() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSession(s.sessions.AdminInfo)
}

func (s *State) setUser(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.UserInfo = sess
	if sess == nil {
		s.myBookings = nil
	}
	return s.saveLocked()
}

func (s *State) setAdmin(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.AdminInfo = sess
	return s.saveLocked()
}

// Save writes the sessions to the state file.
func (s *State) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

// saveLocked replaces the file atomically so a crash never leaves a
// truncated session file behind.
func (s *State) saveLocked() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// LastHotels returns the most recently fetched hotel page.
func (s *State) LastHotels() (dto.ListResponse[models.Hotel], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hotelPage == nil {
		return dto.ListResponse[models.Hotel]{}, false
	}
	return *s.hotelPage, true
}

// CachedHotel returns hotel details fetched earlier, if any.
func (s *State) CachedHotel(id string) (models.Hotel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hotels[id]
	return h, ok
}

func (s *State) MyBookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.myBookings)
}

func (s *State) setHotelPage(page dto.ListResponse[models.Hotel]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotelPage = &page
}

func (s *State) cacheHotel(h models.Hotel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotels[h.ID] = h
}

func (s *State) forgetHotel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hotels, id)
	if s.hotelPage != nil {
		s.hotelPage.Data = slices.DeleteFunc(s.hotelPage.Data, func(h models.Hotel) bool { return h.ID == id })
		s.hotelPage.Count = len(s.hotelPage.Data)
	}
}

func (s *State) forgetHotelDetails(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hotels, id)
}

// forgetRoom drops cached hotels that list the room.
func (s *State) forgetRoom(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, h := range s.hotels {
		if slices.ContainsFunc(h.Rooms, func(r models.Room) bool { return r.ID == roomID }) {
			delete(s.hotels, id)
		}
	}
}

func (s *State) setMyBookings(bookings []models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.myBookings = slices.Clone(bookings)
}

// addBookings puts new bookings first, matching the newest-first listing.
func (s *State) addBookings(bookings ...models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.myBookings = append(slices.Clone(bookings), s.myBookings...)
}

func (s *State) replaceBooking(b models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.myBookings {
		if s.myBookings[i].ID == b.ID {
			s.myBookings[i] = b
			return
		}
	}
}

func (s *State) removeBooking(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.myBookings = slices.DeleteFunc(s.myBookings, func(b models.Booking) bool { return b.ID == id })
}

func cloneSession(sess *Session) *Session {
	if sess == nil {
		return nil
	}
	c := *sess
	return &c
}
