package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstats/internal/dataset"
	"supstats/internal/errors"
)

func TestColumns_RenamesAliases(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		expected []string
	}{
		{
			name:     "canonical export headers",
			columns:  []string{"Report date", "SLA, %", "Avg CSAT", "Full resolution SLA %", "Sessions", "Country"},
			expected: []string{"Date", "SLA", "CSAT", "FR", "Sessions", "Country"},
		},
		{
			name:     "case and whitespace variance",
			columns:  []string{" REPORT DATE ", "sla, %", "  Country"},
			expected: []string{"Date", "SLA", "Country"},
		},
		{
			name:     "unrecognized headers pass through",
			columns:  []string{"Report date", "Notes", "Agent"},
			expected: []string{"Date", "Notes", "Agent"},
		},
		{
			name:     "already standard names unchanged",
			columns:  []string{"Date", "SLA", "CSAT", "FR", "Country"},
			expected: []string{"Date", "SLA", "CSAT", "FR", "Country"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset.New(tt.columns, nil)
			out, err := Columns(ds)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.Columns)
		})
	}
}

func TestColumns_DoesNotMutateInput(t *testing.T) {
	ds := dataset.New([]string{"Report date", "Country"}, [][]dataset.Cell{
		{dataset.TextCell("01/02/2024"), dataset.TextCell("PERU")},
	})

	out, err := Columns(ds)
	require.NoError(t, err)

	assert.Equal(t, []string{"Report date", "Country"}, ds.Columns)
	assert.Equal(t, []string{"Date", "Country"}, out.Columns)
	assert.Equal(t, "PERU", out.Cell(0, "Country").String())
}

func TestColumns_Idempotent(t *testing.T) {
	ds := dataset.New([]string{"Report date", "Sessions", "Country"}, nil)

	once, err := Columns(ds)
	require.NoError(t, err)
	twice, err := Columns(once)
	require.NoError(t, err)

	assert.Equal(t, once.Columns, twice.Columns)
}

func TestColumns_DuplicateAliasCollision(t *testing.T) {
	ds := dataset.New([]string{"Report date", " report date "}, nil)

	_, err := Columns(ds)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
	assert.Contains(t, err.Error(), `"Date"`)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "report date", Key(" Report Date "))
	assert.Equal(t, "sla, %", Key("SLA, %"))
}

func TestIsAlias(t *testing.T) {
	assert.True(t, IsAlias("  Avg CSAT "))
	assert.True(t, IsAlias("country"))
	assert.False(t, IsAlias("Date"))
	assert.False(t, IsAlias("Notes"))
}

func TestAliasKeys_SortedAndComplete(t *testing.T) {
	keys := AliasKeys()
	assert.Equal(t, []string{"avg csat", "country", "full resolution sla %", "report date", "sessions", "sla, %"}, keys)
}
