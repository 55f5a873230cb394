//go:build unit

package commands

import (
	"testing"

	"roomdesk/internal/domain/reservation"
	"roomdesk/internal/pkg/config"

	"github.com/stretchr/testify/assert"
)

func quoteChecker(epsilonCents int64, reject bool) *bookingUseCaseImpl {
	return &bookingUseCaseImpl{
		cfg: config.BookingConfig{
			PriceEpsilonCents:   epsilonCents,
			PriceMismatchReject: reject,
		},
	}
}

func TestCheckQuotedTotal(t *testing.T) {
	t.Parallel()

	serverPrice := reservation.NewMoney(75000)

	t.Run("no quote passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, quoteChecker(1, true).checkQuotedTotal(nil, serverPrice))
	})

	t.Run("quote within epsilon passes", func(t *testing.T) {
		t.Parallel()
		quoted := int64(75001)
		assert.NoError(t, quoteChecker(1, true).checkQuotedTotal(&quoted, serverPrice))
	})

	t.Run("divergent quote is accepted under the default policy", func(t *testing.T) {
		t.Parallel()
		quoted := int64(60000)
		assert.NoError(t, quoteChecker(1, false).checkQuotedTotal(&quoted, serverPrice))
	})

	t.Run("divergent quote fails when mismatches reject", func(t *testing.T) {
		t.Parallel()
		quoted := int64(60000)
		err := quoteChecker(1, true).checkQuotedTotal(&quoted, serverPrice)
		assert.ErrorIs(t, err, ErrPriceMismatch)
	})
}
