package models

import "time"

// DateLayout is the wire format of Job.Date.
const DateLayout = "2006-01-02"

// Job is a booked session, optionally born from an accepted quote.
type Job struct {
	Owned
	ClientID  string    `gorm:"type:uuid;index;not null" json:"client_id"`
	QuoteID   *string   `gorm:"type:uuid" json:"quote_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Date      string    `gorm:"size:10;not null" json:"date"`
	Status    JobStatus `gorm:"size:20;not null;default:scheduled" json:"status"`
	Checklist []string  `gorm:"serializer:json" json:"checklist"`
	Notes     string    `gorm:"type:text" json:"notes"`

	Client *ClientRef `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"clients,omitempty"`
}

func (j Job) ClientName() string {
	if j.Client == nil {
		return ""
	}
	return j.Client.Name
}

// Day parses Date; the zero time is returned for malformed values.
func (j Job) Day() time.Time {
	t, err := time.Parse(DateLayout, j.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (j Job) SearchFields() []string {
	return []string{j.Title, j.ClientName(), j.Status.Label()}
}
