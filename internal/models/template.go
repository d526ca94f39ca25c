package models

// EmailTemplate is a reusable message. Subject and Body are Liquid templates.
type EmailTemplate struct {
	Owned
	Name    string       `gorm:"size:255;not null" json:"name"`
	Subject string       `gorm:"size:255;not null" json:"subject"`
	Body    string       `gorm:"type:text;not null" json:"body"`
	Type    TemplateType `gorm:"size:20;not null;default:custom" json:"type"`
}

func (t EmailTemplate) SearchFields() []string {
	return []string{t.Name, t.Subject, t.Type.Label()}
}
