package render

import (
	"errors"
	"fmt"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/query"
)

// NoDataMessage is shown in place of a view the selection leaves empty.
const NoDataMessage = "No data for this selection."

// Percent formats a [0, 1] fraction as a percentage with two decimals.
func Percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// PayloadSummaryText renders the payload summary sentence, or the fallback
// message when err is query.ErrInsufficientData.
func PayloadSummaryText(sum types.PayloadSummary, err error) string {
	if err != nil {
		return fallback(err)
	}
	return fmt.Sprintf(
		"The payload range with the highest success rate is %s with a success rate of %s. "+
			"The payload range with the lowest success rate is %s with a success rate of %s.",
		sum.Highest.Label, Percent(sum.HighestRate),
		sum.Lowest.Label, Percent(sum.LowestRate),
	)
}

// BoosterText renders the best-booster sentence, or the fallback message.
func BoosterText(b types.BoosterSummary, err error) string {
	if err != nil {
		return fallback(err)
	}
	return fmt.Sprintf(
		"The F9 Booster version with the highest success rate is %s with a success rate of %s.",
		b.BoosterVersion, Percent(b.SuccessRate),
	)
}

func fallback(err error) string {
	if errors.Is(err, query.ErrInsufficientData) {
		return NoDataMessage
	}
	return "Unable to compute this view: " + err.Error()
}
