package models

// Client is a lead or customer of the photographer.
type Client struct {
	Owned
	Name   string       `gorm:"size:255;not null" json:"name"`
	Email  string       `gorm:"size:255" json:"email"`
	Phone  string       `gorm:"size:50" json:"phone"`
	Status ClientStatus `gorm:"size:20;not null;default:lead" json:"status"`
}

// SearchFields are the columns matched by the list search box.
func (c Client) SearchFields() []string {
	return []string{c.Name, c.Email, c.Phone}
}

// ClientOption is the projection used by dropdowns (id, name).
type ClientOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClientRef is the expanded client embedded in quote and job rows.
type ClientRef struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (ClientRef) TableName() string { return "clients" }
