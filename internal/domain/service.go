package domain

import (
	"regexp"
	"strings"
	"time"
)

// ServiceStatus represents the publication status of a consulting service
type ServiceStatus string

const (
	ServiceDraft     ServiceStatus = "DRAFT"
	ServicePublished ServiceStatus = "PUBLISHED"
	ServiceArchived  ServiceStatus = "ARCHIVED"
)

func (s ServiceStatus) Valid() bool {
	switch s {
	case ServiceDraft, ServicePublished, ServiceArchived:
		return true
	default:
		return false
	}
}

// MeetingMode represents how a meeting is held
type MeetingMode string

const (
	MeetingGoogleMeet MeetingMode = "GOOGLE_MEET"
	MeetingTeams      MeetingMode = "TEAMS"
	MeetingZoom       MeetingMode = "ZOOM"
	MeetingPhone      MeetingMode = "PHONE"
	MeetingInPerson   MeetingMode = "IN_PERSON"
)

// MeetingModes all known meeting modes
var MeetingModes = []MeetingMode{
	MeetingGoogleMeet,
	MeetingTeams,
	MeetingZoom,
	MeetingPhone,
	MeetingInPerson,
}

func (m MeetingMode) Valid() bool {
	switch m {
	case MeetingGoogleMeet, MeetingTeams, MeetingZoom, MeetingPhone, MeetingInPerson:
		return true
	default:
		return false
	}
}

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// ConsultingService represents a bookable consulting offer
type ConsultingService struct {
	ID                      int64
	Slug                    string
	Name                    string
	Description             *string
	Deliverables            []string
	DefaultDurationMinutes  int
	AllowedDurationsMinutes []int         // empty = any positive duration
	PriceAmount             *float64
	Currency                string
	MeetingModes            []MeetingMode // empty = any known mode
	Status                  ServiceStatus
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsBookable returns true if the service accepts new booking requests
func (s *ConsultingService) IsBookable() bool {
	return s.Status == ServicePublished
}

// AllowsDuration returns true if minutes is accepted by the service
func (s *ConsultingService) AllowsDuration(minutes int) bool {
	if minutes <= 0 {
		return false
	}
	if len(s.AllowedDurationsMinutes) == 0 {
		return true
	}
	for _, d := range s.AllowedDurationsMinutes {
		if d == minutes {
			return true
		}
	}
	return false
}

// AllowsMode returns true if mode is known and accepted by the service
func (s *ConsultingService) AllowsMode(mode MeetingMode) bool {
	if !mode.Valid() {
		return false
	}
	if len(s.MeetingModes) == 0 {
		return true
	}
	for _, m := range s.MeetingModes {
		if m == mode {
			return true
		}
	}
	return false
}

// ApplyDefaults fills empty optional fields
func (s *ConsultingService) ApplyDefaults() {
	if s.DefaultDurationMinutes == 0 {
		s.DefaultDurationMinutes = DefaultDurationMinutes
	}
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	if s.Status == "" {
		s.Status = ServiceDraft
	}
}

// Validate checks the service before it is stored
func (s *ConsultingService) Validate() error {
	verr := NewValidationError()

	switch {
	case s.Slug == "":
		verr.Add("slug", "This field is required.")
	case len(s.Slug) > MaxSlugLength || !slugPattern.MatchString(s.Slug):
		verr.Add("slug", "Enter a valid slug consisting of lowercase letters, numbers, underscores or hyphens.")
	}

	if strings.TrimSpace(s.Name) == "" {
		verr.Add("name", "This field is required.")
	} else if len(s.Name) > MaxServiceNameLen {
		verr.Add("name", "Ensure this field has no more than 200 characters.")
	}

	if s.DefaultDurationMinutes <= 0 {
		verr.Add("default_duration_minutes", "default_duration_minutes must be > 0.")
	}
	for _, d := range s.AllowedDurationsMinutes {
		if d <= 0 {
			verr.Add("allowed_durations_minutes", "allowed_durations_minutes must contain only positive values.")
			break
		}
	}

	for _, m := range s.MeetingModes {
		if !m.Valid() {
			verr.Add("meeting_modes", "Invalid meeting mode \""+string(m)+"\".")
			break
		}
	}

	if s.PriceAmount != nil && *s.PriceAmount < 0 {
		verr.Add("price_amount", "price_amount must be >= 0.")
	}
	if !currencyPattern.MatchString(s.Currency) {
		verr.Add("currency", "currency must be a 3-letter ISO code.")
	}
	if !s.Status.Valid() {
		verr.Add("status", "\""+string(s.Status)+"\" is not a valid choice.")
	}

	return verr.ErrOrNil()
}
