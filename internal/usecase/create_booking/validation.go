package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	_ "time/tzdata" // часовые пояса доступны и в контейнере без tzdata

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

// validateContact проверяет поля, не зависящие от услуги
func validateContact(req *Request, verr *domain.ValidationError) {
	name := strings.TrimSpace(req.FullName)
	switch {
	case name == "":
		verr.Add("full_name", "This field is required.")
	case len(name) > domain.MaxFullNameLength:
		verr.Add("full_name", fmt.Sprintf("Ensure this field has no more than %d characters.", domain.MaxFullNameLength))
	}

	email := strings.TrimSpace(req.Email)
	switch {
	case email == "":
		verr.Add("email", "This field is required.")
	case len(email) > domain.MaxEmailLength || !isEmail(email):
		verr.Add("email", "Enter a valid email address.")
	}

	checkLength(verr, "company", req.Company, domain.MaxCompanyLength)
	checkLength(verr, "role", req.Role, domain.MaxRoleLength)
	checkLength(verr, "phone", req.Phone, domain.MaxPhoneLength)

	if !validTimezone(req.Timezone) {
		verr.Add("timezone", "Unknown timezone.")
	}
}

// validateBooking проверяет длительность, формат встречи и время начала по правилам услуги.
// Возвращает итоговую длительность.
func validateBooking(req *Request, service *domain.ConsultingService, now time.Time, verr *domain.ValidationError) int {
	if !service.IsBookable() {
		verr.Add("service", "Service is not available for booking.")
	}

	duration := service.DefaultDurationMinutes
	if req.DurationMinutes != nil && *req.DurationMinutes != 0 {
		duration = *req.DurationMinutes
	}
	switch {
	case duration <= 0:
		verr.Add("duration_minutes", "duration_minutes must be > 0.")
	case duration > domain.MaxDayMinutes:
		verr.Add("duration_minutes", fmt.Sprintf("duration_minutes must be <= %d.", domain.MaxDayMinutes))
	case !service.AllowsDuration(duration):
		verr.Add("duration_minutes", fmt.Sprintf("duration_minutes must be one of %v.", service.AllowedDurationsMinutes))
	}

	mode := domain.MeetingMode(req.MeetingMode)
	switch {
	case !mode.Valid():
		verr.Add("meeting_mode", "Invalid meeting mode.")
	case !service.AllowsMode(mode):
		verr.Add("meeting_mode", fmt.Sprintf("meeting_mode must be one of %v.", service.MeetingModes))
	}

	switch {
	case req.RequestedStartAt == nil || req.RequestedStartAt.IsZero():
		verr.Add("requested_start_at", "requested_start_at is required.")
	case req.RequestedStartAt.Before(now):
		verr.Add("requested_start_at", "requested_start_at cannot be in the past.")
	}

	return duration
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at:], ".")
}

func validTimezone(tz string) bool {
	if tz == "" {
		return true
	}
	if len(tz) > domain.MaxTimezoneLength {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func checkLength(verr *domain.ValidationError, field string, value *string, max int) {
	if value != nil && len(*value) > max {
		verr.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
}
