package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() QuoteDocument {
	return QuoteDocument{
		ID:              "3f2a9c",
		ClientName:      "Ana Silva",
		ClientEmail:     "ana@x.com",
		PhotographyType: "Casamento",
		Description:     "Sessão no parque",
		Price:           1500.00,
		Date:            time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestQuoteContainsTheQuoteFields(t *testing.T) {
	out, err := Quote(sample())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	for _, want := range []string{"Ana Silva", "ana@x.com", "Casamento", "R$ 1500.00", "Data: 01/03/2024"} {
		assert.True(t, bytes.Contains(out, []byte(want)), "missing %q", want)
	}
}

func TestQuoteWithoutEmailPrintsNA(t *testing.T) {
	doc := sample()
	doc.ClientEmail = ""
	out, err := Quote(doc)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte("E-mail: N/A")))
}

func TestQuoteLongDescriptionOverflowsToNextPage(t *testing.T) {
	doc := sample()
	doc.Description = strings.Repeat("Cobertura completa da cerimônia e da festa. ", 300)
	out, err := Quote(doc)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bytes.Count(out, []byte("/Type /Page\n")), 2)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "orcamento-3f2a9c.pdf", Filename("3f2a9c"))
	assert.Contains(t, Filename(sample().ID), sample().ID)
}
