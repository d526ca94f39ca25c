// Package forms parses the record forms and validates them before anything
// is sent to the store.
package forms

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/diewo77/go-photodesk/internal/models"
	"github.com/diewo77/go-photodesk/validation"
)

func field(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}

func notNil(value any) bool {
	switch p := value.(type) {
	case *float64:
		return p != nil
	case *int:
		return p != nil
	}
	return value != nil
}

// Client is the create and edit form of a client.
type Client struct {
	Name   string
	Email  string
	Phone  string
	Status models.ClientStatus
}

func ClientFromValues(v url.Values) Client {
	f := Client{
		Name:   field(v, "name"),
		Email:  field(v, "email"),
		Phone:  field(v, "phone"),
		Status: models.ClientStatus(field(v, "status")),
	}
	if f.Status == "" {
		f.Status = models.ClientLead
	}
	return f
}

// ClientFromModel fills the edit form.
func ClientFromModel(c models.Client) Client {
	return Client{Name: c.Name, Email: c.Email, Phone: c.Phone, Status: c.Status}
}

var clientSchema = validation.Schema[Client]{
	{Name: "name", Value: func(f Client) any { return f.Name }, Rules: []validation.Rule{validation.NotBlank(), validation.MaxLen(255)}, Code: "client.name_required"},
	{Name: "email", Value: func(f Client) any { return f.Email }, Rules: []validation.Rule{validation.Email(), validation.MaxLen(255)}},
	{Name: "phone", Value: func(f Client) any { return f.Phone }, Rules: []validation.Rule{validation.MaxLen(50)}},
	{Name: "status", Value: func(f Client) any { return f.Status }, Rules: []validation.Rule{validation.OneOf(models.ClientStatuses()...)}},
}

func (f Client) Validate() validation.Violations { return clientSchema.Validate(f) }

// Apply copies the form onto row, keeping its identity columns.
func (f Client) Apply(row *models.Client) {
	row.Name, row.Email, row.Phone, row.Status = f.Name, f.Email, f.Phone, f.Status
}

// Quote is the new-quote form.
type Quote struct {
	ClientID        string
	PhotographyType string
	Description     string
	PriceRaw        string
	Price           *float64
	Status          models.QuoteStatus
}

func QuoteFromValues(v url.Values) Quote {
	f := Quote{
		ClientID:        field(v, "client_id"),
		PhotographyType: field(v, "photography_type"),
		Description:     field(v, "description"),
		PriceRaw:        field(v, "price"),
		Status:          models.QuoteStatus(field(v, "status")),
	}
	if p, ok := validation.ParseFloat(f.PriceRaw); ok {
		f.Price = &p
	}
	if f.Status == "" {
		f.Status = models.QuoteDraft
	}
	return f
}

var quoteSchema = validation.Schema[Quote]{
	{Name: "client_id", Value: func(f Quote) any { return f.ClientID }, Rules: []validation.Rule{validation.NotBlank()}, Code: "quote.client_required"},
	{Name: "photography_type", Value: func(f Quote) any { return f.PhotographyType }, Rules: []validation.Rule{validation.NotBlank(), validation.MaxLen(100)}, Code: "quote.type_required"},
	{Name: "description", Value: func(f Quote) any { return f.Description }, Rules: []validation.Rule{validation.MinLen(10)}, Code: "quote.description_min"},
	{Name: "price", Value: func(f Quote) any { return f.Price }, Rules: []validation.Rule{
		validation.Check("invalid_number", notNil),
		validation.WithCode("quote.price_min", validation.Min(0)),
	}},
	{Name: "status", Value: func(f Quote) any { return f.Status }, Rules: []validation.Rule{validation.OneOf(models.QuoteStatuses()...)}},
}

func (f Quote) Validate() validation.Violations { return quoteSchema.Validate(f) }

// Model builds the row to insert. Call only after Validate passed.
func (f Quote) Model(userID string) *models.Quote {
	q := &models.Quote{
		Owned:           models.Owned{UserID: userID},
		ClientID:        f.ClientID,
		PhotographyType: f.PhotographyType,
		Description:     f.Description,
		Status:          f.Status,
	}
	if f.Price != nil {
		q.Price = *f.Price
	}
	return q
}

// Job is the new-job form. The checklist textarea holds one item per line.
type Job struct {
	ClientID  string
	QuoteID   string
	Title     string
	Date      string
	Status    models.JobStatus
	Checklist []string
	Notes     string
}

func JobFromValues(v url.Values) Job {
	f := Job{
		ClientID: field(v, "client_id"),
		QuoteID:  field(v, "quote_id"),
		Title:    field(v, "title"),
		Date:     field(v, "date"),
		Status:   models.JobStatus(field(v, "status")),
		Notes:    strings.TrimSpace(v.Get("notes")),
	}
	for _, line := range strings.Split(v.Get("checklist"), "\n") {
		if item := strings.TrimSpace(line); item != "" {
			f.Checklist = append(f.Checklist, item)
		}
	}
	if f.Status == "" {
		f.Status = models.JobScheduled
	}
	return f
}

var jobSchema = validation.Schema[Job]{
	{Name: "title", Value: func(f Job) any { return f.Title }, Rules: []validation.Rule{validation.NotBlank(), validation.MaxLen(255)}, Code: "job.title_required"},
	{Name: "client_id", Value: func(f Job) any { return f.ClientID }, Rules: []validation.Rule{validation.NotBlank()}, Code: "job.client_required"},
	{Name: "date", Value: func(f Job) any { return f.Date }, Rules: []validation.Rule{
		validation.WithCode("job.date_required", validation.NotBlank()),
		validation.Date(models.DateLayout),
	}},
	{Name: "status", Value: func(f Job) any { return f.Status }, Rules: []validation.Rule{validation.OneOf(models.JobStatuses()...)}},
}

func (f Job) Validate() validation.Violations { return jobSchema.Validate(f) }

func (f Job) Model(userID string) *models.Job {
	j := &models.Job{
		Owned:     models.Owned{UserID: userID},
		ClientID:  f.ClientID,
		Title:     f.Title,
		Date:      f.Date,
		Status:    f.Status,
		Checklist: f.Checklist,
		Notes:     f.Notes,
	}
	if j.Checklist == nil {
		j.Checklist = []string{}
	}
	if f.QuoteID != "" {
		id := f.QuoteID
		j.QuoteID = &id
	}
	return j
}

// Template is the new e-mail template form.
type Template struct {
	Name    string
	Subject string
	Body    string
	Type    models.TemplateType
}

func TemplateFromValues(v url.Values) Template {
	f := Template{
		Name:    field(v, "name"),
		Subject: field(v, "subject"),
		Body:    strings.TrimSpace(v.Get("body")),
		Type:    models.TemplateType(field(v, "type")),
	}
	if f.Type == "" {
		f.Type = models.TemplateCustom
	}
	return f
}

// Validate checks subject and body with parse, which reports Liquid syntax
// errors.
func (f Template) Validate(parse func(string) error) validation.Violations {
	liquidOK := func(value any) bool {
		s, _ := value.(string)
		return parse(s) == nil
	}
	schema := validation.Schema[Template]{
		{Name: "name", Value: func(f Template) any { return f.Name }, Rules: []validation.Rule{validation.NotBlank(), validation.MaxLen(255)}},
		{Name: "subject", Value: func(f Template) any { return f.Subject }, Rules: []validation.Rule{
			validation.NotBlank(), validation.MaxLen(255), validation.Check("invalid_template", liquidOK),
		}},
		{Name: "body", Value: func(f Template) any { return f.Body }, Rules: []validation.Rule{
			validation.NotBlank(), validation.Check("template.body_invalid", liquidOK),
		}},
		{Name: "type", Value: func(f Template) any { return f.Type }, Rules: []validation.Rule{validation.OneOf(models.TemplateTypes()...)}},
	}
	return schema.Validate(f)
}

func (f Template) Model(userID string) *models.EmailTemplate {
	return &models.EmailTemplate{
		Owned:   models.Owned{UserID: userID},
		Name:    f.Name,
		Subject: f.Subject,
		Body:    f.Body,
		Type:    f.Type,
	}
}

// Portfolio is the new portfolio item form.
type Portfolio struct {
	Title       string
	Description string
	ImageURL    string
	Category    string
	PositionRaw string
	Position    *int
}

func PortfolioFromValues(v url.Values) Portfolio {
	f := Portfolio{
		Title:       field(v, "title"),
		Description: strings.TrimSpace(v.Get("description")),
		ImageURL:    field(v, "image_url"),
		Category:    field(v, "category"),
		PositionRaw: field(v, "order"),
	}
	if f.PositionRaw == "" {
		zero := 0
		f.Position = &zero
	} else if n, err := strconv.Atoi(f.PositionRaw); err == nil {
		f.Position = &n
	}
	return f
}

var portfolioSchema = validation.Schema[Portfolio]{
	{Name: "title", Value: func(f Portfolio) any { return f.Title }, Rules: []validation.Rule{validation.NotBlank(), validation.MaxLen(255)}},
	{Name: "image_url", Value: func(f Portfolio) any { return f.ImageURL }, Rules: []validation.Rule{
		validation.WithCode("portfolio.url_required", validation.NotBlank()),
		validation.URL(),
		validation.MaxLen(1024),
	}},
	{Name: "order", Value: func(f Portfolio) any { return f.Position }, Rules: []validation.Rule{validation.Min(0)}},
}

func (f Portfolio) Validate() validation.Violations { return portfolioSchema.Validate(f) }

func (f Portfolio) Model(userID string) *models.PortfolioItem {
	p := &models.PortfolioItem{
		Owned:       models.Owned{UserID: userID},
		Title:       f.Title,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		Category:    f.Category,
	}
	if f.Position != nil {
		p.Position = *f.Position
	}
	return p
}
