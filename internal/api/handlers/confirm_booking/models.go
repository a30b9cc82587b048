package confirm_booking

// ConfirmBookingRequest HTTP request model, все поля опциональны
type ConfirmBookingRequest struct {
	MeetingURL *string `json:"meeting_url,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}
