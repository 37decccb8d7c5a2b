// Package policy holds the pure decision functions of the traffic
// controller: spend regime classification, child campaign selection and
// budget arithmetic.
package policy

import (
	"time"

	"github.com/shopspring/decimal"

	"traffic-controller/internal/core/domain"
)

// Default click thresholds applied when a campaign leaves one unset.
const (
	DefaultLowSpendPauseClicks     int64 = 5000
	DefaultLowSpendActivateClicks  int64 = 15000
	DefaultHighSpendPauseClicks    int64 = 1000
	DefaultHighSpendActivateClicks int64 = 5000
)

// HighSpendCutoff is the daily spend at and above which a campaign is in the
// high-spend regime.
var HighSpendCutoff = decimal.NewFromInt(10)

// Evaluation is the outcome of classifying a campaign's spend.
type Evaluation struct {
	Regime            domain.Regime
	PauseThreshold    int64
	ActivateThreshold int64
}

// Evaluate maps the current daily spend and configured thresholds to a
// regime and the threshold pair that governs it.
func Evaluate(dailySpent decimal.Decimal, th domain.Thresholds) Evaluation {
	if dailySpent.GreaterThanOrEqual(HighSpendCutoff) {
		return Evaluation{
			Regime:            domain.RegimeHighSpend,
			PauseThreshold:    orDefault(th.HighSpendPauseClicks, DefaultHighSpendPauseClicks),
			ActivateThreshold: orDefault(th.HighSpendActivateClicks, DefaultHighSpendActivateClicks),
		}
	}
	return Evaluation{
		Regime:            domain.RegimeLowSpend,
		PauseThreshold:    orDefault(th.LowSpendPauseClicks, DefaultLowSpendPauseClicks),
		ActivateThreshold: orDefault(th.LowSpendActivateClicks, DefaultLowSpendActivateClicks),
	}
}

func orDefault(v *int64, def int64) int64 {
	if v == nil {
		return def
	}
	return *v
}

// Wait period bounds in minutes and the defaults used for unset values.
const (
	MinWaitMinutes               = 1
	MaxWaitMinutes               = 30
	DefaultPostPauseCheckMinutes = 2
	DefaultHighSpendWaitMinutes  = 11
)

// WaitPeriod clamps a configured wait to [MinWaitMinutes, MaxWaitMinutes],
// using def when the value is unset.
func WaitPeriod(minutes, def int) time.Duration {
	if minutes <= 0 {
		minutes = def
	}
	minutes = max(MinWaitMinutes, min(minutes, MaxWaitMinutes))
	return time.Duration(minutes) * time.Minute
}
