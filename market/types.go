package market

import "estateshares/sdk"

// ShareRegistry is the slice of the property ledger the marketplace needs:
// checking a seller's holdings and moving shares once a deal settles.
type ShareRegistry interface {
	BalanceOf(holder sdk.Address, propertyID uint64) int64
	Transfer(from, to sdk.Address, propertyID uint64, amount int64) error
}

// ListingState tracks where a listing is in its life.
type ListingState uint8

const (
	// ListingActive accepts offers and can be unlisted freely.
	ListingActive ListingState = 1
	// ListingPendingSale is locked to one accepted buyer until the deal
	// deadline passes or the sale settles.
	ListingPendingSale ListingState = 2
)

func (s ListingState) String() string {
	switch s {
	case ListingActive:
		return "active"
	case ListingPendingSale:
		return "pending_sale"
	default:
		return "unknown"
	}
}

// Listing is one seller's open sale of shares in one property. The accepted
// fields are only meaningful while State is ListingPendingSale.
type Listing struct {
	PropertyID uint64
	Seller     sdk.Address
	Quantity   int64
	AskPrice   sdk.Amount
	State      ListingState

	AcceptedBuyer sdk.Address
	AcceptedPrice sdk.Amount
	// DealDeadline is the unix second the accepted buyer must settle by.
	// Settling exactly at the deadline still counts.
	DealDeadline int64
}

// Offer is one buyer's standing bid on a listing. A repeat offer from the
// same buyer replaces the earlier one.
type Offer struct {
	Buyer  sdk.Address
	Price  sdk.Amount
	SentAt int64
}
