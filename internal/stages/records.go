package stages

import (
	"fmt"
	"strings"
)

// LogisticsEvent is one scheduled webinar within the logistics stage.
type LogisticsEvent struct {
	WebinarURL string   `json:"webinar_url"`
	DateTime   WireTime `json:"date_time"`
	Notes      string   `json:"notes,omitempty"`
}

// LogisticsRecord holds the ordered webinar schedule for a session.
type LogisticsRecord struct {
	Events []LogisticsEvent `json:"events"`
}

// Link is a call-to-action inside a WhatsApp message.
type Link struct {
	Text string `json:"link_text"`
	URL  string `json:"link_url"`
}

// WhatsAppMessage is one outbound message with its ordered links.
type WhatsAppMessage struct {
	Body     string   `json:"message_body"`
	DateTime WireTime `json:"date_time"`
	Links    []Link   `json:"links"`
}

// ContentRecord holds the campaign content stage: the email blast plus the
// ordered WhatsApp message sequence and an optional uploaded image reference.
type ContentRecord struct {
	EmailContent  string            `json:"email_content"`
	EmailDateTime WireTime          `json:"email_date_time"`
	Messages      []WhatsAppMessage `json:"whatsapp_messages"`
	ImageName     string            `json:"image_name,omitempty"`
}

// EmailReport captures delivery counters for the email channel.
type EmailReport struct {
	EmailCount int `json:"email_count"`
	Sent       int `json:"sent"`
	Read       int `json:"read"`
}

// WhatsAppReport captures delivery counters for the WhatsApp channel.
type WhatsAppReport struct {
	Dispatched int `json:"dispatched"`
	Sent       int `json:"sent"`
	Read       int `json:"read"`
	Clicked    int `json:"clicked"`
}

// ReportingRecord holds both channel reports. Partial reports are not a valid
// terminal state; both halves are validated together.
type ReportingRecord struct {
	Email    EmailReport    `json:"email_report"`
	WhatsApp WhatsAppReport `json:"whatsapp_report"`
}

// Validate checks a logistics submission before persistence.
func (r LogisticsRecord) Validate() error {
	if len(r.Events) == 0 {
		return fmt.Errorf("at least one webinar event is required")
	}
	for i, event := range r.Events {
		if strings.TrimSpace(event.WebinarURL) == "" {
			return fmt.Errorf("event %d: webinar url is required", i+1)
		}
		if event.DateTime.IsZero() {
			return fmt.Errorf("event %d: date and time are required", i+1)
		}
	}
	return nil
}

// Validate checks a content submission before persistence.
func (r ContentRecord) Validate() error {
	if strings.TrimSpace(r.EmailContent) == "" {
		return fmt.Errorf("email content is required")
	}
	if r.EmailDateTime.IsZero() {
		return fmt.Errorf("email date and time are required")
	}
	if len(r.Messages) == 0 {
		return fmt.Errorf("at least one whatsapp message is required")
	}
	for i, msg := range r.Messages {
		if strings.TrimSpace(msg.Body) == "" {
			return fmt.Errorf("message %d: body is required", i+1)
		}
		if msg.DateTime.IsZero() {
			return fmt.Errorf("message %d: date and time are required", i+1)
		}
		if len(msg.Links) == 0 {
			return fmt.Errorf("message %d: at least one link is required", i+1)
		}
		for j, link := range msg.Links {
			if strings.TrimSpace(link.Text) == "" {
				return fmt.Errorf("message %d link %d: link text is required", i+1, j+1)
			}
			if strings.TrimSpace(link.URL) == "" {
				return fmt.Errorf("message %d link %d: link url is required", i+1, j+1)
			}
		}
	}
	return nil
}

// Validate checks a reporting submission before persistence. Both report
// halves are required together.
func (r ReportingRecord) Validate() error {
	counters := []struct {
		name  string
		value int
	}{
		{"email_report.email_count", r.Email.EmailCount},
		{"email_report.sent", r.Email.Sent},
		{"email_report.read", r.Email.Read},
		{"whatsapp_report.dispatched", r.WhatsApp.Dispatched},
		{"whatsapp_report.sent", r.WhatsApp.Sent},
		{"whatsapp_report.read", r.WhatsApp.Read},
		{"whatsapp_report.clicked", r.WhatsApp.Clicked},
	}
	for _, counter := range counters {
		if counter.value < 0 {
			return fmt.Errorf("%s must not be negative", counter.name)
		}
	}
	return nil
}
