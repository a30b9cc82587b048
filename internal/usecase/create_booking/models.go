package create_booking

import "time"

// Request данные публичной формы заявки
type Request struct {
	ServiceSlug      string
	FullName         string
	Email            string
	Company          *string
	Role             *string
	Phone            *string
	Timezone         string     // пусто = UTC
	DurationMinutes  *int       // nil или 0 = длительность услуги по умолчанию
	RequestedStartAt *time.Time // обязательное поле
	MeetingMode      string
	ProblemStatement *string
}
