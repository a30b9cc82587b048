package cancel_booking

// Request модель запроса на отмену заявки
type Request struct {
	PublicID string
	ByAdmin  bool
	Actor    *string // subject сотрудника, для заявителя nil
}
