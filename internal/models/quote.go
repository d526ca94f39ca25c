package models

// Quote is a price proposal for a photography service.
type Quote struct {
	Owned
	ClientID        string      `gorm:"type:uuid;index;not null" json:"client_id"`
	PhotographyType string      `gorm:"size:100;not null" json:"photography_type"`
	Description     string      `gorm:"type:text;not null" json:"description"`
	Price           float64     `gorm:"not null" json:"price"`
	Status          QuoteStatus `gorm:"size:20;not null;default:draft" json:"status"`

	// Client is filled when the read expands clients(name,email).
	Client *ClientRef `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"clients,omitempty"`
}

// ClientName is empty when the expansion is missing.
func (q Quote) ClientName() string {
	if q.Client == nil {
		return ""
	}
	return q.Client.Name
}

func (q Quote) ClientEmail() string {
	if q.Client == nil {
		return ""
	}
	return q.Client.Email
}

func (q Quote) SearchFields() []string {
	return []string{q.PhotographyType, q.ClientName()}
}
