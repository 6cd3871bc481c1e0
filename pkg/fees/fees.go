package fees

import "math"

// Split is the fee breakdown of a single purchase amount.
type Split struct {
	PlatformFee     float64
	CreatorEarnings float64
}

// Calculate splits an amount in major currency units between the platform
// and the creator. The platform fee is rounded to cents; the creator keeps
// the remainder, so the two parts always sum back to the amount.
func Calculate(amount, feePercent float64) Split {
	platformFee := RoundToCents(amount * feePercent / 100)
	return Split{
		PlatformFee:     platformFee,
		CreatorEarnings: amount - platformFee,
	}
}

func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
