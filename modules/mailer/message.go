package mailer

import "time"

// Kind selects the template and subject line for a message.
type Kind string

const (
	KindInvitation     Kind = "invitation"
	KindScheduleUpdate Kind = "schedule_update"
)

func (k Kind) Valid() bool {
	return k == KindInvitation || k == KindScheduleUpdate
}

func (k Kind) Subject() string {
	switch k {
	case KindScheduleUpdate:
		return "Graduation Schedule Update"
	default:
		return "Graduation Invitation"
	}
}

func (k Kind) templateName() string {
	switch k {
	case KindScheduleUpdate:
		return "schedule_update.html"
	default:
		return "invitation.html"
	}
}

// Message is the structured event+invitee data a template renders from.
type Message struct {
	To               string `json:"to"`
	InviteeName      string `json:"invitee_name"`
	EventName        string `json:"event_name"`
	EventDate        string `json:"event_date"`
	EventTime        string `json:"event_time"`
	EventLocation    string `json:"event_location"`
	EventDescription string `json:"event_description,omitempty"`
	InviteLink       string `json:"invite_link"`
}

type SendResult struct {
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// BulkResult reports aggregate counts. Results carries per-recipient detail
// and is omitted from responses unless the caller opts in.
type BulkResult struct {
	Total      int          `json:"total"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Results    []SendResult `json:"results,omitempty"`
}

// FormatEventDate renders an ISO date as "Monday, January 2, 2006" for
// email bodies. Unparseable input is passed through as is.
func FormatEventDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("Monday, January 2, 2006")
}
