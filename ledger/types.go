package ledger

import "estateshares/sdk"

// AccessGate is the external capability deciding who may hold shares and who
// may approve registrations. The ledger consults it on registration and on
// approval; transfers trust existing balances as proof of eligibility.
type AccessGate interface {
	IsApprovedHolder(addr sdk.Address) bool
	IsAdmin(addr sdk.Address) bool
}

// PropertyStatus captures a property's lifecycle.
type PropertyStatus uint8

const (
	StatusUnregistered PropertyStatus = 0
	StatusPending      PropertyStatus = 1
	StatusApproved     PropertyStatus = 2
	StatusRejected     PropertyStatus = 3
)

// String prints the status as lower-case text for events and logs.
// Example: ledger.StatusApproved.String()
func (s PropertyStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	default:
		return "unregistered"
	}
}

// Property is the stored record. StagedOwners/StagedShares hold the initial
// allocation between registration and approval; balances are credited only
// once an approver signs off, after which the staged fields are cleared.
type Property struct {
	ID           uint64
	PostalCode   string
	Location     string
	Status       PropertyStatus
	StagedOwners []sdk.Address
	StagedShares []int64
}

// PropertyView is the read-only projection returned to callers. Owners and
// Shares are parallel arrays: Shares[i] belongs to Owners[i]. Ordering across
// calls is unspecified beyond that internal consistency.
type PropertyView struct {
	ID         uint64
	PostalCode string
	Location   string
	Status     PropertyStatus
	Owners     []sdk.Address
	Shares     []int64
}
