package models

// ClientStatus is the pipeline stage of a client.
type ClientStatus string

const (
	ClientLead        ClientStatus = "lead"
	ClientContacted   ClientStatus = "contacted"
	ClientNegotiating ClientStatus = "negotiating"
	ClientClosed      ClientStatus = "closed"
	ClientLost        ClientStatus = "lost"
)

// ClientStatuses lists every client status in pipeline order.
func ClientStatuses() []ClientStatus {
	return []ClientStatus{ClientLead, ClientContacted, ClientNegotiating, ClientClosed, ClientLost}
}

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientLead, ClientContacted, ClientNegotiating, ClientClosed, ClientLost:
		return true
	}
	return false
}

// Label is the pt-BR display name.
func (s ClientStatus) Label() string {
	switch s {
	case ClientLead:
		return "Lead"
	case ClientContacted:
		return "Contatado"
	case ClientNegotiating:
		return "Negociando"
	case ClientClosed:
		return "Fechado"
	case ClientLost:
		return "Perdido"
	}
	return string(s)
}

// Class is the badge style used by the templates.
func (s ClientStatus) Class() string {
	switch s {
	case ClientLead:
		return "badge-blue"
	case ClientContacted:
		return "badge-yellow"
	case ClientNegotiating:
		return "badge-purple"
	case ClientClosed:
		return "badge-green"
	case ClientLost:
		return "badge-red"
	}
	return "badge-gray"
}

// QuoteStatus is the lifecycle state of a quote.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
)

func QuoteStatuses() []QuoteStatus {
	return []QuoteStatus{QuoteDraft, QuoteSent, QuoteAccepted, QuoteRejected}
}

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteDraft, QuoteSent, QuoteAccepted, QuoteRejected:
		return true
	}
	return false
}

func (s QuoteStatus) Label() string {
	switch s {
	case QuoteDraft:
		return "Rascunho"
	case QuoteSent:
		return "Enviado"
	case QuoteAccepted:
		return "Aceito"
	case QuoteRejected:
		return "Rejeitado"
	}
	return string(s)
}

func (s QuoteStatus) Class() string {
	switch s {
	case QuoteDraft:
		return "badge-gray"
	case QuoteSent:
		return "badge-blue"
	case QuoteAccepted:
		return "badge-green"
	case QuoteRejected:
		return "badge-red"
	}
	return "badge-gray"
}

type JobStatus string

const (
	JobScheduled  JobStatus = "scheduled"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

func JobStatuses() []JobStatus {
	return []JobStatus{JobScheduled, JobInProgress, JobCompleted, JobCancelled}
}

func (s JobStatus) Valid() bool {
	switch s {
	case JobScheduled, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

func (s JobStatus) Label() string {
	switch s {
	case JobScheduled:
		return "Agendado"
	case JobInProgress:
		return "Em andamento"
	case JobCompleted:
		return "Concluído"
	case JobCancelled:
		return "Cancelado"
	}
	return string(s)
}

func (s JobStatus) Class() string {
	switch s {
	case JobScheduled:
		return "badge-blue"
	case JobInProgress:
		return "badge-yellow"
	case JobCompleted:
		return "badge-green"
	case JobCancelled:
		return "badge-red"
	}
	return "badge-gray"
}

// TemplateType says when an e-mail template is meant to be sent.
type TemplateType string

const (
	TemplateQuote        TemplateType = "quote"
	TemplateFollowUp     TemplateType = "follow_up"
	TemplateConfirmation TemplateType = "confirmation"
	TemplateCustom       TemplateType = "custom"
)

func TemplateTypes() []TemplateType {
	return []TemplateType{TemplateQuote, TemplateFollowUp, TemplateConfirmation, TemplateCustom}
}

func (t TemplateType) Valid() bool {
	switch t {
	case TemplateQuote, TemplateFollowUp, TemplateConfirmation, TemplateCustom:
		return true
	}
	return false
}

func (t TemplateType) Label() string {
	switch t {
	case TemplateQuote:
		return "Orçamento"
	case TemplateFollowUp:
		return "Follow-up"
	case TemplateConfirmation:
		return "Confirmação"
	case TemplateCustom:
		return "Personalizado"
	}
	return string(t)
}

func (t TemplateType) Class() string {
	switch t {
	case TemplateQuote:
		return "badge-blue"
	case TemplateFollowUp:
		return "badge-yellow"
	case TemplateConfirmation:
		return "badge-green"
	case TemplateCustom:
		return "badge-purple"
	}
	return "badge-gray"
}

// PhotographyTypes is the fixed menu offered by the quote form.
var PhotographyTypes = []string{
	"Casamento",
	"Ensaio Fotográfico",
	"Eventos Corporativos",
	"Aniversário",
	"Formatura",
	"Newborn",
	"Gestante",
	"Família",
	"Produtos",
	"Imóveis",
	"Outro",
}
