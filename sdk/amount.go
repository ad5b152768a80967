package sdk

import "math"

// AmountScale defines the precision multiplier for converting floats to int64.
const AmountScale = 1000

type Amount int64

// FloatToAmount scales human floats by AmountScale and rounds to int64 so storage stays precise.
// Example: sdk.FloatToAmount(1.234)
func FloatToAmount(v float64) Amount {
	return Amount(math.Round(v * AmountScale))
}

// AmountToFloat converts back to float64 for reporting or events.
// Example: sdk.AmountToFloat(sdk.FloatToAmount(2.5))
func AmountToFloat(v Amount) float64 {
	return float64(v) / AmountScale
}

// AmountToInt64 exposes the raw scaled int64 for bank transfer calls.
func AmountToInt64(v Amount) int64 {
	return int64(v)
}
