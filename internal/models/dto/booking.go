package dto

type CreateBookingRequest struct {
	CheckInDate   string   `json:"checkInDate"`
	CheckOutDate  string   `json:"checkOutDate"`
	Guests        int      `json:"guests"`
	PaymentMethod string   `json:"paymentMethod"`
	Hotel         string   `json:"hotel,omitempty"`
	Rooms         []string `json:"rooms,omitempty"`
}

type UpdateBookingRequest struct {
	CheckInDate   *string `json:"checkInDate"`
	CheckOutDate  *string `json:"checkOutDate"`
	Guests        *int    `json:"guests"`
	Status        *string `json:"status"`
	PaymentMethod *string `json:"paymentMethod"`
}
