package sdk

type Asset string

const (
	AssetCredit Asset = "credit"
	AssetToken  Asset = "token"
)

// String returns the raw ticker string for logging or bank calls.
// Example: sdk.AssetCredit.String()
func (a Asset) String() string {
	return string(a)
}

// AssetFromString wraps a ticker string so type checking keeps us honest.
func AssetFromString(s string) Asset { return Asset(s) }

// AssetToString unwraps the ticker string for logs or bank calls.
func AssetToString(a Asset) string { return a.String() }
