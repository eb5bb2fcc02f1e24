package settlement

import "math"

// ResolveCommissionPercent applies the commission precedence rule: the
// potter's override if set, else the platform default, else the hard-coded
// fallback. Out-of-range values are ignored rather than clamped.
func ResolveCommissionPercent(override *float64, platformDefault float64, fallback float64) float64 {
	if override != nil && *override >= 0 && *override <= 100 {
		return *override
	}
	if platformDefault >= 0 && platformDefault <= 100 {
		return platformDefault
	}
	return fallback
}

// SplitAmount divides a subtotal (minor units) into the platform commission
// and the amount transferred to the potter. The commission is rounded
// half-up on minor units; the transfer is the remainder, so
// commission + transfer == subtotal always holds.
func SplitAmount(amountSubtotal int64, commissionPercent float64) (commission, transfer int64) {
	commission = int64(math.Floor(float64(amountSubtotal)*commissionPercent/100 + 0.5))
	transfer = amountSubtotal - commission
	return commission, transfer
}
