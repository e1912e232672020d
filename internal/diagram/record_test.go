package diagram

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapmanb/biosqlweb/internal/genbank"
	"github.com/chapmanb/biosqlweb/internal/seqfeature"
)

func testRecord(t *testing.T) *genbank.Record {
	t.Helper()
	gene, err := seqfeature.New("gene", "1..10", map[string][]string{"gene": {"abcA"}, "color": {"2"}})
	require.NoError(t, err)
	site, err := seqfeature.New("misc_feature", "5^6", map[string][]string{"note": {"between"}})
	require.NoError(t, err)
	odd, err := seqfeature.New("CDS", "(3.5)..10", nil)
	require.NoError(t, err)
	plain, err := seqfeature.New("CDS", "complement(join(1..3,7..9))", map[string][]string{"product": {"p1"}})
	require.NoError(t, err)
	return &genbank.Record{Name: "R1", Features: []*seqfeature.SeqFeature{gene, site, odd, plain}}
}

func TestFromRecordSkipsAndHides(t *testing.T) {
	feats, skipped := FromRecord(testRecord(t), Settings{DefaultColor: "#0000ff"})
	require.Len(t, feats, 2)
	require.Len(t, skipped, 2)

	assert.Equal(t, "R1_1", feats[0].ID)
	assert.Equal(t, "abcA", feats[0].Name)
	assert.Equal(t, lipgloss.Color("#FF0000"), feats[0].Color)

	assert.Equal(t, "R1_4", feats[1].ID)
	assert.Equal(t, lipgloss.Color("#0000FF"), feats[1].Color)
	assert.Equal(t, -1, feats[1].Strand)
	assert.Equal(t, []Span{{6, 9}, {0, 3}}, feats[1].Locations)

	assert.Equal(t, Skipped{ID: "R1_2", Type: "misc_feature"}, skipped[0])
	assert.Equal(t, "R1_3", skipped[1].ID)
	assert.ErrorIs(t, skipped[1].Err, ErrMalformedCoordinate)
}

func TestFromRecordShowHidden(t *testing.T) {
	feats, skipped := FromRecord(testRecord(t), Settings{ShowHidden: true, NameQualifiers: []string{"note", "product"}})
	require.Len(t, feats, 3)
	require.Len(t, skipped, 1)
	assert.True(t, feats[1].Hide)
	assert.Equal(t, "between", feats[1].Name)
	assert.Equal(t, "p1", feats[2].Name)
	assert.Equal(t, DefaultColor, feats[2].Color)
}

func TestFromRecordBadDefaultColor(t *testing.T) {
	feats, skipped := FromRecord(testRecord(t), Settings{DefaultColor: "not a color"})
	assert.Empty(t, feats)
	require.Len(t, skipped, 4)
	for _, s := range skipped {
		assert.ErrorIs(t, s.Err, ErrUnknownColor)
	}
}
