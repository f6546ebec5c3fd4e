package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyField(t *testing.T) {
	study := &Study{
		NCTID:            "NCT01234567",
		BriefTitle:       "A Study",
		Gender:           "FEMALE",
		NumCanadianSites: 3,
		IsPrenatal:       true,
		MinAgeMonths:     Months{Value: 216, Known: true},
		StartYear:        "2021",
	}

	t.Run("resolves every declared column", func(t *testing.T) {
		for _, name := range Columns {
			_, ok := study.Field(name)
			assert.True(t, ok, "column %q must resolve", name)
		}
	})

	t.Run("renders derived fields as strings", func(t *testing.T) {
		value, ok := study.Field("num_canadian_sites")
		require.True(t, ok)
		assert.Equal(t, "3", value)

		value, ok = study.Field("is_prenatal")
		require.True(t, ok)
		assert.Equal(t, "true", value)

		value, ok = study.Field("min_age_in_months")
		require.True(t, ok)
		assert.Equal(t, "216", value)
	})

	t.Run("unknown month values render empty", func(t *testing.T) {
		value, ok := study.Field("max_age_in_months")
		require.True(t, ok)
		assert.Equal(t, "", value)
	})

	t.Run("rejects unknown field names", func(t *testing.T) {
		_, ok := study.Field("sponsor")
		assert.False(t, ok)
	})
}

func TestStudyIsGeriatric(t *testing.T) {
	t.Run("uses the derived minimum age", func(t *testing.T) {
		old := &Study{MinAgeMonths: Months{Value: 70 * 12, Known: true}}
		young := &Study{MinAgeMonths: Months{Value: 30 * 12, Known: true}}
		unknown := &Study{}

		assert.True(t, old.IsGeriatric())
		assert.False(t, young.IsGeriatric())
		assert.False(t, unknown.IsGeriatric())
	})
}
