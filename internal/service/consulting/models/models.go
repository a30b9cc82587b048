package models

import (
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

// ServiceRequest тело запроса на создание и замену услуги
type ServiceRequest struct {
	Slug                    string   `json:"slug"`
	Name                    string   `json:"name"`
	Description             *string  `json:"description"`
	Deliverables            []string `json:"deliverables"`
	DefaultDurationMinutes  int      `json:"default_duration_minutes"`
	AllowedDurationsMinutes []int    `json:"allowed_durations_minutes"`
	PriceAmount             *float64 `json:"price_amount"`
	Currency                string   `json:"currency"`
	MeetingModes            []string `json:"meeting_modes"`
	Status                  string   `json:"status"`
}

// ToDomain конвертирует запрос в доменную модель
func (r *ServiceRequest) ToDomain() *domain.ConsultingService {
	modes := make([]domain.MeetingMode, 0, len(r.MeetingModes))
	for _, m := range r.MeetingModes {
		modes = append(modes, domain.MeetingMode(m))
	}

	return &domain.ConsultingService{
		Slug:                    r.Slug,
		Name:                    r.Name,
		Description:             r.Description,
		Deliverables:            r.Deliverables,
		DefaultDurationMinutes:  r.DefaultDurationMinutes,
		AllowedDurationsMinutes: r.AllowedDurationsMinutes,
		PriceAmount:             r.PriceAmount,
		Currency:                r.Currency,
		MeetingModes:            modes,
		Status:                  domain.ServiceStatus(r.Status),
	}
}

// ServiceResponse представление услуги
type ServiceResponse struct {
	Slug                    string   `json:"slug"`
	Name                    string   `json:"name"`
	Description             *string  `json:"description"`
	Deliverables            []string `json:"deliverables"`
	DefaultDurationMinutes  int      `json:"default_duration_minutes"`
	AllowedDurationsMinutes []int    `json:"allowed_durations_minutes"`
	PriceAmount             *float64 `json:"price_amount"`
	Currency                string   `json:"currency"`
	MeetingModes            []string `json:"meeting_modes"`
	Status                  string   `json:"status"`
	CreatedAt               string   `json:"created_at"`
	UpdatedAt               string   `json:"updated_at"`
}

// FromDomainService конвертирует доменную модель в ответ
func FromDomainService(s *domain.ConsultingService) *ServiceResponse {
	deliverables := s.Deliverables
	if deliverables == nil {
		deliverables = []string{}
	}
	durations := s.AllowedDurationsMinutes
	if durations == nil {
		durations = []int{}
	}
	modes := make([]string, 0, len(s.MeetingModes))
	for _, m := range s.MeetingModes {
		modes = append(modes, string(m))
	}

	return &ServiceResponse{
		Slug:                    s.Slug,
		Name:                    s.Name,
		Description:             s.Description,
		Deliverables:            deliverables,
		DefaultDurationMinutes:  s.DefaultDurationMinutes,
		AllowedDurationsMinutes: durations,
		PriceAmount:             s.PriceAmount,
		Currency:                s.Currency,
		MeetingModes:            modes,
		Status:                  string(s.Status),
		CreatedAt:               s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:               s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainServiceList конвертирует список услуг
func FromDomainServiceList(services []*domain.ConsultingService) []*ServiceResponse {
	result := make([]*ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, FromDomainService(s))
	}
	return result
}
