package storage

import (
	"math"
	"time"
)

// MaxPageSize caps the page size a caller may request.
const MaxPageSize = 100

// maxPageNumber keeps Offset within int for any allowed page size.
const maxPageNumber = math.MaxInt / MaxPageSize

// Page is a 1-indexed page request.
type Page struct {
	Number int
	Size   int
}

// NewPage normalizes raw paging input; non-positive values fall back to the
// first page and defaultSize.
func NewPage(number, size, defaultSize int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = defaultSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if number > maxPageNumber {
		number = maxPageNumber
	}
	return Page{Number: number, Size: size}
}

// Offset is the number of items before the page. It saturates instead of
// wrapping for pages built without NewPage.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// TotalPages is ceil(total/size).
func (p Page) TotalPages(total int) int {
	if p.Size <= 0 || total <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}

// HotelFilter narrows hotel listings. Nil pointers are ignored. When
// RestrictIDs is set only hotels in IDs are considered, so an empty IDs
// list yields nothing.
type HotelFilter struct {
	City          string
	MinPrice      *float64
	MaxPrice      *float64
	MinRating     *float64
	Name          *string
	Address       *string
	Description   *string
	Rating        *float64
	NumReviews    *int
	CheapestPrice *float64
	RestrictIDs   bool
	IDs           []string
}

// RoomFilter narrows room listings by exact field match.
type RoomFilter struct {
	HotelID   string
	Title     string
	Price     *float64
	MaxPeople *int
}

// Availability selects rooms that fit Guests and have no unavailable date
// in [Start, End).
type Availability struct {
	Start  time.Time
	End    time.Time
	Guests int
}
