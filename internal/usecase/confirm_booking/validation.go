package confirm_booking

import (
	"fmt"
	"net/url"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

func validateRequest(req *Request) error {
	verr := domain.NewValidationError()

	if req.MeetingURL != nil && *req.MeetingURL != "" {
		u, err := url.Parse(*req.MeetingURL)
		switch {
		case err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "":
			verr.Add("meeting_url", "Enter a valid URL.")
		case len(*req.MeetingURL) > domain.MaxMeetingURLLength:
			verr.Add("meeting_url", fmt.Sprintf("Ensure this field has no more than %d characters.", domain.MaxMeetingURLLength))
		}
	}

	return verr.ErrOrNil()
}
