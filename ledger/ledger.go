// Package ledger keeps the canonical register of tokenized properties. Every
// property carries a fixed supply of shares split across approved holders;
// registrations sit in a review queue until an administrator approves or
// rejects them, and only approval mints live balances.
package ledger

import (
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/exp/slices"

	"estateshares/errs"
	"estateshares/sdk"
)

// Ledger owns all property records, balances and indexes. Operations are
// serialized via the mutex so every call observes a consistent snapshot.
type Ledger struct {
	mu     deadlock.Mutex
	state  sdk.State
	gate   AccessGate
	events sdk.EventSink

	sharesPerProperty int64
}

// New wires a ledger against its storage, access gate and event sink.
func New(state sdk.State, gate AccessGate, events sdk.EventSink, sharesPerProperty int64) *Ledger {
	return &Ledger{
		state:             state,
		gate:              gate,
		events:            events,
		sharesPerProperty: sharesPerProperty,
	}
}

// Register queues a new property with its initial share allocation. Balances
// are staged only; nothing is spendable until an administrator approves.
// Returns the id assigned to the registration.
func (l *Ledger) Register(registrant sdk.Address, postalCode, location string, owners []sdk.Address, shares []int64) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(owners) != len(shares) {
		return 0, errs.Newf(errs.SymbolValidation,
			"got %d owners but %d share entries", len(owners), len(shares))
	}
	if len(owners) == 0 {
		return 0, errs.New(errs.SymbolValidation, "a property needs at least one owner")
	}
	if !l.gate.IsApprovedHolder(registrant) {
		return 0, errs.Newf(errs.SymbolValidation,
			"registrant %s is not an approved user", sdk.AddressToString(registrant))
	}
	var sum int64
	for i, owner := range owners {
		if slices.Contains(owners[:i], owner) {
			return 0, errs.Newf(errs.SymbolValidation,
				"owner %s appears more than once", sdk.AddressToString(owner))
		}
		if !l.gate.IsApprovedHolder(owner) {
			return 0, errs.Newf(errs.SymbolValidation,
				"owner %s is not an approved user", sdk.AddressToString(owner))
		}
		if shares[i] <= 0 {
			return 0, errs.Newf(errs.SymbolValidation,
				"owner %s gets %d shares, every owner needs a positive stake",
				sdk.AddressToString(owner), shares[i])
		}
		sum += shares[i]
		// stakes are positive, so the running sum only grows; bailing out
		// as soon as it passes the target also keeps it from wrapping
		if sum > l.sharesPerProperty {
			return 0, errs.Newf(errs.SymbolValidation,
				"share allocation exceeds %d", l.sharesPerProperty)
		}
	}
	if sum != l.sharesPerProperty {
		return 0, errs.Newf(errs.SymbolValidation,
			"share allocation sums to %d, want %d", sum, l.sharesPerProperty)
	}

	id := getCount(l.state, PropertiesCount)
	setCount(l.state, PropertiesCount, id+1)

	staged := make([]sdk.Address, len(owners))
	copy(staged, owners)
	stagedShares := make([]int64, len(shares))
	copy(stagedShares, shares)
	l.saveProperty(&Property{
		ID:           id,
		PostalCode:   postalCode,
		Location:     location,
		Status:       StatusPending,
		StagedOwners: staged,
		StagedShares: stagedShares,
	})
	addIDToIndex(l.state, pendingIndexBase, id)
	l.emitRegisteredEvent(id, registrant)
	return id, nil
}

// Approve turns a pending registration into a live property: staged balances
// become real, the owners enter the property's owner set and the id leaves
// the review queue.
func (l *Ledger) Approve(approver sdk.Address, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.takePending(approver, id)
	if err != nil {
		return err
	}
	for i, owner := range p.StagedOwners {
		l.setBalance(id, owner, p.StagedShares[i])
		l.ownerAdd(id, owner)
		addIDToIndex(l.state, holderIndexKey(owner), id)
	}
	p.Status = StatusApproved
	p.StagedOwners = nil
	p.StagedShares = nil
	l.saveProperty(p)
	removeIDFromIndex(l.state, pendingIndexBase, id)
	l.emitApprovedEvent(id, approver)
	return nil
}

// Reject drops a pending registration. The record keeps its id and rejected
// status but sheds every staged detail, so the id never becomes spendable.
func (l *Ledger) Reject(approver sdk.Address, id uint64, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.takePending(approver, id)
	if err != nil {
		return err
	}
	p.Status = StatusRejected
	p.PostalCode = ""
	p.Location = ""
	p.StagedOwners = nil
	p.StagedShares = nil
	l.saveProperty(p)
	removeIDFromIndex(l.state, pendingIndexBase, id)
	l.emitRejectedEvent(id, approver, reason)
	return nil
}

// takePending validates approver rights and queue membership, returning the
// loaded record. Caller holds the lock.
func (l *Ledger) takePending(approver sdk.Address, id uint64) (*Property, error) {
	if !l.gate.IsAdmin(approver) {
		return nil, errs.Newf(errs.SymbolNotAuthorized,
			"%s may not review registrations", sdk.AddressToString(approver))
	}
	pending := idsFromIndex(l.state, pendingIndexBase)
	if len(pending) == 0 {
		return nil, errs.New(errs.SymbolNotFound, "no pending properties to review")
	}
	if !slices.Contains(pending, id) {
		return nil, errs.Newf(errs.SymbolNotFound, "property %d is not awaiting review", id)
	}
	p, err := l.loadProperty(id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != StatusPending {
		return nil, errs.Newf(errs.SymbolNotFound, "property %d is not awaiting review", id)
	}
	return p, nil
}

// Transfer moves shares of one property between holders. The sender must hold
// a balance entry; draining it to zero removes the sender from the owner set.
func (l *Ledger) Transfer(from, to sdk.Address, id uint64, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return errs.Newf(errs.SymbolValidation, "transfer amount %d must be positive", amount)
	}
	if to.IsZero() {
		return errs.New(errs.SymbolValidation, "recipient address is empty")
	}
	fromBal, ok := l.balanceEntry(id, from)
	if !ok {
		return errs.Newf(errs.SymbolNotOwner,
			"%s holds no shares of property %d", sdk.AddressToString(from), id)
	}
	if amount > fromBal {
		return errs.Newf(errs.SymbolArithmetic,
			"transfer of %d exceeds balance %d", amount, fromBal)
	}
	if from == to {
		// nothing moves, but the transfer is still valid and logged
		l.emitTransferEvent(id, from, to, amount)
		return nil
	}

	rest := fromBal - amount
	if rest == 0 {
		l.deleteBalance(id, from)
		l.ownerRemove(id, from)
		removeIDFromIndex(l.state, holderIndexKey(from), id)
	} else {
		l.setBalance(id, from, rest)
	}
	toBal, held := l.balanceEntry(id, to)
	l.setBalance(id, to, toBal+amount)
	if !held {
		l.ownerAdd(id, to)
		addIDToIndex(l.state, holderIndexKey(to), id)
	}
	l.emitTransferEvent(id, from, to, amount)
	return nil
}

// BalanceOf reports how many shares of a property the holder owns, zero when
// the holder has no entry.
func (l *Ledger) BalanceOf(holder sdk.Address, id uint64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, _ := l.balanceEntry(id, holder)
	return bal
}

// IsPropertyIDValid reports whether the id names an approved, live property.
func (l *Ledger) IsPropertyIDValid(id uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, err := l.loadProperty(id)
	if err != nil || p == nil {
		return false
	}
	return p.Status == StatusApproved
}

// PendingProperties lists ids awaiting review, oldest registration first.
func (l *Ledger) PendingProperties() []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return idsFromIndex(l.state, pendingIndexBase)
}

// UserProperties lists every property the holder currently has shares in.
func (l *Ledger) UserProperties(holder sdk.Address) []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return idsFromIndex(l.state, holderIndexKey(holder))
}

// ViewProperty assembles the read-only projection for a property. Pending
// records report their staged allocation, approved ones the live balances,
// rejected ones only the id and status.
func (l *Ledger) ViewProperty(id uint64) (PropertyView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.loadProperty(id)
	if err != nil {
		return PropertyView{}, err
	}
	if p == nil {
		return PropertyView{}, errs.Newf(errs.SymbolNotFound, "property %d does not exist", id)
	}
	view := PropertyView{
		ID:         p.ID,
		PostalCode: p.PostalCode,
		Location:   p.Location,
		Status:     p.Status,
	}
	switch p.Status {
	case StatusPending:
		view.Owners = append([]sdk.Address(nil), p.StagedOwners...)
		view.Shares = append([]int64(nil), p.StagedShares...)
	case StatusApproved:
		owners := l.ownersOf(id)
		view.Owners = owners
		view.Shares = make([]int64, len(owners))
		for i, owner := range owners {
			view.Shares[i], _ = l.balanceEntry(id, owner)
		}
	}
	return view, nil
}
