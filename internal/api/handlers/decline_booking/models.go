package decline_booking

// DeclineBookingRequest HTTP request model
type DeclineBookingRequest struct {
	AdminNotes *string `json:"admin_notes,omitempty"`
}
