package models

// PortfolioItem is a published photo shown on the public portfolio page.
type PortfolioItem struct {
	Owned
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:1024;not null" json:"image_url"`
	Category    string `gorm:"size:100" json:"category"`
	Position    int    `gorm:"column:order;not null;default:0" json:"order"`
}

func (p PortfolioItem) SearchFields() []string {
	return []string{p.Title, p.Category}
}
