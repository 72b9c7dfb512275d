package approve_booking

// ApproveBookingResponse HTTP response model
type ApproveBookingResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
