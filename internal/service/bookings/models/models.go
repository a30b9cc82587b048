package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

// Request модели

// ListRequest параметры списка заявок в виде строк из query
type ListRequest struct {
	Status    string
	Email     string
	Service   string
	StartFrom string // RFC3339
	StartTo   string // RFC3339
	Query     string
	Limit     string
	Offset    string
}

// ToDomainFilter разбирает параметры в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.BookingFilter, error) {
	var filter domain.BookingFilter
	verr := domain.NewValidationError()

	if r.Status != "" {
		status, err := domain.ParseBookingStatus(strings.ToUpper(r.Status))
		if err != nil {
			verr.Add("status", "Select a valid choice.")
		} else {
			filter.Status = &status
		}
	}
	if v := strings.TrimSpace(r.Email); v != "" {
		filter.Email = &v
	}
	if v := strings.TrimSpace(r.Service); v != "" {
		filter.ServiceSlug = &v
	}
	if v := strings.TrimSpace(r.Query); v != "" {
		filter.Search = &v
	}

	filter.StartFrom = parseTime(verr, "start_from", r.StartFrom)
	filter.StartTo = parseTime(verr, "start_to", r.StartTo)

	if r.Limit != "" {
		limit, err := strconv.Atoi(r.Limit)
		if err != nil || limit < 1 {
			verr.Add("limit", "A valid positive integer is required.")
		}
		filter.Limit = limit
	}
	if r.Offset != "" {
		offset, err := strconv.Atoi(r.Offset)
		if err != nil || offset < 0 {
			verr.Add("offset", "A valid non-negative integer is required.")
		}
		filter.Offset = offset
	}

	if err := verr.ErrOrNil(); err != nil {
		return domain.BookingFilter{}, err
	}
	return filter, nil
}

func parseTime(verr *domain.ValidationError, field, raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		verr.Add(field, "Datetime has wrong format. Use RFC3339.")
		return nil
	}
	t = t.UTC()
	return &t
}

// Response модели

// PublicBooking представление заявки для заявителя
type PublicBooking struct {
	PublicID         string  `json:"public_id"`
	Status           string  `json:"status"`
	Service          string  `json:"service"`
	Timezone         string  `json:"timezone"`
	DurationMinutes  int     `json:"duration_minutes"`
	RequestedStartAt string  `json:"requested_start_at"`
	RequestedEndAt   string  `json:"requested_end_at"`
	MeetingMode      string  `json:"meeting_mode"`
	MeetingURL       *string `json:"meeting_url"`
	ConfirmedAt      *string `json:"confirmed_at"`
	CancelledAt      *string `json:"cancelled_at"`
	CreatedAt        string  `json:"created_at"`
}

// AdminBooking представление заявки для сотрудников
type AdminBooking struct {
	PublicBooking
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Company          *string `json:"company"`
	Role             *string `json:"role"`
	Phone            *string `json:"phone"`
	ProblemStatement *string `json:"problem_statement"`
	AdminNotes       *string `json:"admin_notes"`
	HandledBy        *string `json:"handled_by"`
	HandledAt        *string `json:"handled_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// AdminBookingList страница списка заявок
type AdminBookingList struct {
	Results []*AdminBooking `json:"results"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// FromDomainPublic конвертирует заявку в публичное представление
func FromDomainPublic(b *domain.BookingRequest) *PublicBooking {
	return &PublicBooking{
		PublicID:         b.PublicID,
		Status:           string(b.Status),
		Service:          b.ServiceSlug,
		Timezone:         b.Timezone,
		DurationMinutes:  b.DurationMinutes,
		RequestedStartAt: formatTime(b.RequestedStartAt),
		RequestedEndAt:   formatTime(b.RequestedEndAt),
		MeetingMode:      string(b.MeetingMode),
		MeetingURL:       b.MeetingURL,
		ConfirmedAt:      formatTimePtr(b.ConfirmedAt),
		CancelledAt:      formatTimePtr(b.CancelledAt),
		CreatedAt:        formatTime(b.CreatedAt),
	}
}

// FromDomainAdmin конвертирует заявку в представление для админки
func FromDomainAdmin(b *domain.BookingRequest) *AdminBooking {
	return &AdminBooking{
		PublicBooking:    *FromDomainPublic(b),
		FullName:         b.FullName,
		Email:            b.Email,
		Company:          b.Company,
		Role:             b.Role,
		Phone:            b.Phone,
		ProblemStatement: b.ProblemStatement,
		AdminNotes:       b.AdminNotes,
		HandledBy:        b.HandledBy,
		HandledAt:        formatTimePtr(b.HandledAt),
		UpdatedAt:        formatTime(b.UpdatedAt),
	}
}

// FromDomainAdminList конвертирует страницу заявок
func FromDomainAdminList(bookings []*domain.BookingRequest, filter domain.BookingFilter) *AdminBookingList {
	results := make([]*AdminBooking, 0, len(bookings))
	for _, b := range bookings {
		results = append(results, FromDomainAdmin(b))
	}
	return &AdminBookingList{
		Results: results,
		Limit:   filter.EffectiveLimit(),
		Offset:  filter.Offset,
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
