package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevinjones/trialsift/internal/core/domain"
)

func TestGenderFilter(t *testing.T) {
	t.Run("drops exactly the male-only records", func(t *testing.T) {
		filter := &GenderFilter{}

		male := &domain.Study{Gender: domain.GenderMaleOnly}
		female := &domain.Study{Gender: "FEMALE"}
		all := &domain.Study{Gender: "ALL"}
		missing := &domain.Study{Gender: domain.NotAvailable}

		assert.False(t, filter.Keep(male))
		assert.True(t, filter.Keep(female))
		assert.True(t, filter.Keep(all))
		assert.True(t, filter.Keep(missing))

		assert.Equal(t, 1, filter.Dropped)
		assert.Equal(t, 3, filter.Passed)
	})

	t.Run("ignores every other field", func(t *testing.T) {
		filter := &GenderFilter{}
		study := &domain.Study{
			Gender:       "FEMALE",
			MinAgeMonths: domain.Months{Value: 70 * 12, Known: true},
		}
		// Geriatric or not, only the gender rule applies here.
		assert.True(t, filter.Keep(study))
	})
}
