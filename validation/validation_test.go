package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type status string

type quoteInput struct {
	ClientID    string
	Description string
	Price       *float64
	Status      status
}

func price(f float64) *float64 { return &f }

func quoteSchema() Schema[quoteInput] {
	return Schema[quoteInput]{
		{Name: "client_id", Value: func(q quoteInput) any { return q.ClientID }, Rules: []Rule{NotBlank()}, Code: "select_client"},
		{Name: "description", Value: func(q quoteInput) any { return q.Description }, Rules: []Rule{NotBlank(), MinLen(10)}},
		{Name: "price", Value: func(q quoteInput) any { return q.Price }, Rules: []Rule{Min(0)}},
		{Name: "status", Value: func(q quoteInput) any { return q.Status }, Rules: []Rule{OneOf[status]("draft", "sent")}},
	}
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name string
		in   quoteInput
		want Violations
	}{
		{
			name: "valid",
			in:   quoteInput{ClientID: "c1", Description: "Sessão no parque", Price: price(1500), Status: "draft"},
			want: Violations{},
		},
		{
			name: "code override on missing client",
			in:   quoteInput{Description: "Sessão no parque", Price: price(0), Status: "sent"},
			want: Violations{"client_id": "select_client"},
		},
		{
			name: "first failing rule wins",
			in:   quoteInput{ClientID: "c1", Description: "   ", Price: price(1), Status: "draft"},
			want: Violations{"description": "required"},
		},
		{
			name: "everything wrong",
			in:   quoteInput{Description: "curta", Price: price(-1), Status: "archived"},
			want: Violations{
				"client_id":   "select_client",
				"description": "min_length",
				"price":       "min",
				"status":      "invalid_choice",
			},
		},
		{
			name: "unparsed price",
			in:   quoteInput{ClientID: "c1", Description: "Sessão no parque", Status: "draft"},
			want: Violations{"price": "invalid_number"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quoteSchema().Validate(tt.in))
		})
	}
}

func TestMinLenCountsRunes(t *testing.T) {
	// 10 characters, 13 bytes
	assert.Empty(t, MinLen(10)("Sessão ção"))
	assert.Equal(t, "min_length", MinLen(10)("Sessão"))
}

func TestEmailAndURL(t *testing.T) {
	assert.Empty(t, Email()(""))
	assert.Empty(t, Email()("ana@x.com"))
	assert.Equal(t, "invalid_email", Email()("ana@"))

	assert.Empty(t, URL()(""))
	assert.Empty(t, URL()("https://cdn.example.com/p/1.jpg"))
	assert.Equal(t, "invalid_url", URL()("ftp://example.com/a.jpg"))
	assert.Equal(t, "invalid_url", URL()("not a url"))
}

func TestDate(t *testing.T) {
	rule := Date("2006-01-02")
	assert.Empty(t, rule("2024-03-01"))
	assert.Empty(t, rule(""))
	assert.Equal(t, "invalid_date", rule("01/03/2024"))
}

func TestCheck(t *testing.T) {
	even := Check("odd", func(v any) bool { n, _ := v.(int); return n%2 == 0 })
	assert.Empty(t, even(4))
	assert.Equal(t, "odd", even(3))
}

func TestWithCode(t *testing.T) {
	rule := WithCode("quote.price_min", Min(0))
	assert.Empty(t, rule(price(0)))
	assert.Equal(t, "quote.price_min", rule(price(-0.01)))
	assert.Equal(t, "quote.price_min", rule((*float64)(nil)))

	n := -1
	assert.Equal(t, "min", Min(0)(&n))
	assert.Equal(t, "invalid_number", Min(0)((*int)(nil)))
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"1500", 1500, true},
		{" 1500.50 ", 1500.5, true},
		{"1500,50", 1500.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseFloat(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.InDelta(t, tt.want, got, 1e-9, tt.raw)
	}
}

func TestViolationsAddKeepsFirst(t *testing.T) {
	v := Violations{}
	assert.True(t, v.Empty())
	v.Add("name", "required")
	v.Add("name", "other")
	v.Add("price", "quote.price_min")
	assert.Equal(t, Violations{"name": "required", "price": "quote.price_min"}, v)
	assert.False(t, v.Empty())
}
