package decline_booking

// Request модель запроса на отклонение заявки
type Request struct {
	PublicID   string
	Actor      string
	AdminNotes *string
}
