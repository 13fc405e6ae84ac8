package engine

import (
	"github.com/hatem4830/cryptopulse/internal/types"
)

// ShouldTrigger reports whether an alert fires at price. The threshold is
// inclusive in both directions: "above 100" fires at exactly 100. A firing
// within the last alertCooldownSeconds blocks the next one, so the alert
// stays armed but silent while price hovers at the threshold.
func ShouldTrigger(a types.Alert, price float64, now int64) bool {
	switch a.Direction {
	case types.DirectionAbove:
		if price < a.TargetPrice {
			return false
		}
	case types.DirectionBelow:
		if price > a.TargetPrice {
			return false
		}
	default:
		return false
	}

	return now-a.LastTriggeredAt > alertCooldownSeconds
}
