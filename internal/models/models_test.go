package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestClientStatus_LabelAndClassCoverEveryStatus(t *testing.T) {
	for _, s := range ClientStatuses() {
		if !s.Valid() {
			t.Errorf("%q reported invalid", s)
		}
		if s.Label() == string(s) {
			t.Errorf("%q has no label", s)
		}
		if s.Class() == "badge-gray" {
			t.Errorf("%q has no class", s)
		}
	}
	if ClientStatus("archived").Valid() {
		t.Error("unknown status must be invalid")
	}
}

func TestQuoteStatus_Labels(t *testing.T) {
	want := map[QuoteStatus]string{
		QuoteDraft:    "Rascunho",
		QuoteSent:     "Enviado",
		QuoteAccepted: "Aceito",
		QuoteRejected: "Rejeitado",
	}
	if len(want) != len(QuoteStatuses()) {
		t.Fatalf("status list and label table differ in size")
	}
	for _, s := range QuoteStatuses() {
		if got := s.Label(); got != want[s] {
			t.Errorf("%q.Label() = %q, want %q", s, got, want[s])
		}
		if !s.Valid() {
			t.Errorf("%q reported invalid", s)
		}
	}
	if QuoteStatus("").Valid() {
		t.Error("empty status must be invalid")
	}
}

func TestJobStatusAndTemplateType_Exhaustive(t *testing.T) {
	for _, s := range JobStatuses() {
		if s.Label() == string(s) || s.Class() == "badge-gray" || !s.Valid() {
			t.Errorf("job status %q not fully mapped", s)
		}
	}
	for _, tt := range TemplateTypes() {
		if tt.Label() == string(tt) || tt.Class() == "badge-gray" || !tt.Valid() {
			t.Errorf("template type %q not fully mapped", tt)
		}
	}
}

func TestQuote_ClientAccessors(t *testing.T) {
	q := Quote{PhotographyType: "Casamento"}
	if q.ClientName() != "" || q.ClientEmail() != "" {
		t.Fatal("expected empty client fields without expansion")
	}
	q.Client = &ClientRef{Name: "Ana", Email: "ana@x.com"}
	if q.ClientName() != "Ana" || q.ClientEmail() != "ana@x.com" {
		t.Fatalf("unexpected accessors: %q %q", q.ClientName(), q.ClientEmail())
	}
	if got := q.SearchFields(); len(got) != 2 || got[1] != "Ana" {
		t.Fatalf("unexpected search fields %v", got)
	}
}

func TestQuote_JSONUsesColumnNames(t *testing.T) {
	q := Quote{
		Owned:           Owned{UserID: "u1"},
		ClientID:        "c1",
		PhotographyType: "Newborn",
		Description:     "Ensaio em estúdio",
		Price:           800,
		Status:          QuoteDraft,
	}
	b, err := json.Marshal(q)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, key := range []string{`"user_id":"u1"`, `"client_id":"c1"`, `"photography_type":"Newborn"`, `"status":"draft"`} {
		if !strings.Contains(s, key) {
			t.Errorf("missing %s in %s", key, s)
		}
	}
	// inserts must not send server-owned columns
	for _, key := range []string{`"id"`, `"created_at"`, `"updated_at"`, `"clients"`} {
		if strings.Contains(s, key) {
			t.Errorf("unexpected %s in %s", key, s)
		}
	}
}

func TestQuote_DecodesExpandedClient(t *testing.T) {
	raw := `{"id":"q1","user_id":"u1","client_id":"c1","photography_type":"Casamento","description":"x","price":1500,"status":"sent","created_at":"2024-03-01T12:00:00+00:00","clients":{"name":"Ana Silva","email":"ana@x.com"}}`
	var q Quote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		t.Fatal(err)
	}
	if q.ClientName() != "Ana Silva" || q.Status != QuoteSent {
		t.Fatalf("unexpected decode: %+v", q)
	}
	if !q.CreatedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_at %v", q.CreatedAt)
	}
}

func TestPortfolioItem_OrderColumn(t *testing.T) {
	b, _ := json.Marshal(PortfolioItem{Position: 3})
	if !strings.Contains(string(b), `"order":3`) {
		t.Fatalf("expected order key, got %s", b)
	}
}

func TestJob_Day(t *testing.T) {
	j := Job{Date: "2024-05-10"}
	if got := j.Day(); got.Year() != 2024 || got.Month() != time.May || got.Day() != 10 {
		t.Fatalf("unexpected day %v", got)
	}
	if !(Job{Date: "10/05/2024"}).Day().IsZero() {
		t.Fatal("malformed date must yield zero time")
	}
}

func TestOwned_GetUserID(t *testing.T) {
	c := &Client{Owned: Owned{ID: "c1", UserID: "u42"}}
	if c.GetUserID() != "u42" {
		t.Fatalf("unexpected owner %q", c.GetUserID())
	}
}

func TestOwned_BeforeCreateAssignsID(t *testing.T) {
	c := &Client{}
	if err := c.BeforeCreate(nil); err != nil {
		t.Fatal(err)
	}
	if len(c.ID) != 36 {
		t.Fatalf("expected uuid, got %q", c.ID)
	}
	keep := &Client{Owned: Owned{ID: "fixed"}}
	_ = keep.BeforeCreate(nil)
	if keep.ID != "fixed" {
		t.Fatal("existing id overwritten")
	}
}
