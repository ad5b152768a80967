package ledger_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estateshares/errs"
	"estateshares/ledger"
	"estateshares/sdk"
)

var (
	admin = sdk.AddressFromString("user:admin")
	alice = sdk.AddressFromString("user:alice")
	bob   = sdk.AddressFromString("user:bob")
	carol = sdk.AddressFromString("user:carol")
	dave  = sdk.AddressFromString("user:dave")
)

// stubGate approves a fixed set of holders and admins.
type stubGate struct {
	approved map[sdk.Address]bool
	admins   map[sdk.Address]bool
}

func (g *stubGate) IsApprovedHolder(addr sdk.Address) bool { return g.approved[addr] }
func (g *stubGate) IsAdmin(addr sdk.Address) bool          { return g.admins[addr] }

func setupLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	gate := &stubGate{
		approved: map[sdk.Address]bool{admin: true, alice: true, bob: true, carol: true},
		admins:   map[sdk.Address]bool{admin: true},
	}
	return ledger.New(sdk.NewMemoryState(), gate, sdk.NewLogSink(), 1000)
}

func registerApproved(t *testing.T, l *ledger.Ledger, owners []sdk.Address, shares []int64) uint64 {
	t.Helper()
	id, err := l.Register(alice, "10115", "Invalidenstr. 5, Berlin", owners, shares)
	require.NoError(t, err)
	require.NoError(t, l.Approve(admin, id))
	return id
}

func TestRegisterValidatesAllocation(t *testing.T) {
	l := setupLedger(t)

	_, err := l.Register(alice, "10115", "Berlin", []sdk.Address{alice, bob}, []int64{600})
	assert.ErrorIs(t, err, errs.ErrValidation, "owner and share arrays must match")

	_, err = l.Register(alice, "10115", "Berlin", []sdk.Address{alice, bob}, []int64{600, 500})
	assert.ErrorIs(t, err, errs.ErrValidation, "shares must sum to the fixed supply")

	_, err = l.Register(alice, "10115", "Berlin", []sdk.Address{alice, dave}, []int64{600, 400})
	assert.ErrorIs(t, err, errs.ErrValidation, "every initial owner must be approved")

	_, err = l.Register(dave, "10115", "Berlin", []sdk.Address{alice}, []int64{1000})
	assert.ErrorIs(t, err, errs.ErrValidation, "the registrant must be approved")

	_, err = l.Register(alice, "10115", "Berlin", []sdk.Address{alice, bob}, []int64{999, 0})
	assert.ErrorIs(t, err, errs.ErrValidation, "zero or negative stakes are rejected")

	assert.Empty(t, l.PendingProperties(), "failed registrations never enter the queue")
}

func TestRegisterRejectsDuplicateOwners(t *testing.T) {
	l := setupLedger(t)

	_, err := l.Register(alice, "10115", "Berlin", []sdk.Address{alice, alice}, []int64{600, 400})
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Empty(t, l.PendingProperties())

	// a repeated owner further down the array is caught too
	_, err = l.Register(alice, "10115", "Berlin", []sdk.Address{alice, bob, alice}, []int64{300, 300, 400})
	assert.ErrorIs(t, err, errs.ErrValidation)

	// the same split across distinct owners still works and mints the full supply
	id, err := l.Register(alice, "10115", "Berlin", []sdk.Address{alice, bob}, []int64{600, 400})
	require.NoError(t, err)
	require.NoError(t, l.Approve(admin, id))
	view, err := l.ViewProperty(id)
	require.NoError(t, err)
	assert.Len(t, view.Owners, 2)
	var total int64
	for _, s := range view.Shares {
		total += s
	}
	assert.Equal(t, int64(1000), total)
}

func TestRegisterRejectsWrappingShareSum(t *testing.T) {
	l := setupLedger(t)

	// the naive sum of these wraps around to exactly 1000
	shares := []int64{math.MaxInt64, math.MaxInt64, 1002}
	_, err := l.Register(alice, "10115", "Berlin", []sdk.Address{alice, bob, carol}, shares)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Empty(t, l.PendingProperties())
}

func TestApproveMintsStagedBalances(t *testing.T) {
	l := setupLedger(t)

	id, err := l.Register(alice, "10115", "Invalidenstr. 5, Berlin", []sdk.Address{alice, bob}, []int64{600, 400})
	require.NoError(t, err)

	// staged only: nothing is spendable, nothing is owned yet
	assert.Equal(t, int64(0), l.BalanceOf(alice, id))
	assert.False(t, l.IsPropertyIDValid(id))
	assert.Equal(t, []uint64{id}, l.PendingProperties())
	assert.ErrorIs(t, l.Transfer(alice, bob, id, 100), errs.ErrNotOwner)

	require.NoError(t, l.Approve(admin, id))

	assert.Equal(t, int64(600), l.BalanceOf(alice, id))
	assert.Equal(t, int64(400), l.BalanceOf(bob, id))
	assert.True(t, l.IsPropertyIDValid(id))
	assert.Empty(t, l.PendingProperties())
	assert.Equal(t, []uint64{id}, l.UserProperties(alice))
	assert.Equal(t, []uint64{id}, l.UserProperties(bob))

	view, err := l.ViewProperty(id)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusApproved, view.Status)
	assert.Equal(t, "10115", view.PostalCode)
	assert.ElementsMatch(t, []sdk.Address{alice, bob}, view.Owners)
	var total int64
	for _, s := range view.Shares {
		total += s
	}
	assert.Equal(t, int64(1000), total)
}

func TestRejectLeavesNoResidue(t *testing.T) {
	l := setupLedger(t)

	id, err := l.Register(alice, "10115", "Berlin", []sdk.Address{alice}, []int64{1000})
	require.NoError(t, err)
	require.NoError(t, l.Reject(admin, id, "duplicate filing"))

	assert.False(t, l.IsPropertyIDValid(id))
	assert.Equal(t, int64(0), l.BalanceOf(alice, id))
	assert.Empty(t, l.PendingProperties())
	assert.Empty(t, l.UserProperties(alice))

	view, err := l.ViewProperty(id)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusRejected, view.Status)
	assert.Empty(t, view.PostalCode)
	assert.Empty(t, view.Owners)

	// the id is burned for good, a fresh filing gets a fresh id
	next, err := l.Register(alice, "10115", "Berlin", []sdk.Address{alice}, []int64{1000})
	require.NoError(t, err)
	assert.Equal(t, id+1, next)
}

func TestReviewRequiresAdmin(t *testing.T) {
	l := setupLedger(t)

	id, err := l.Register(alice, "10115", "Berlin", []sdk.Address{alice}, []int64{1000})
	require.NoError(t, err)

	assert.ErrorIs(t, l.Approve(alice, id), errs.ErrNotAuthorized)
	assert.ErrorIs(t, l.Reject(alice, id, "nope"), errs.ErrNotAuthorized)
	assert.Equal(t, []uint64{id}, l.PendingProperties())
}

func TestReviewUnknownID(t *testing.T) {
	l := setupLedger(t)

	assert.ErrorIs(t, l.Approve(admin, 7), errs.ErrNotFound, "empty queue")

	id, err := l.Register(alice, "10115", "Berlin", []sdk.Address{alice}, []int64{1000})
	require.NoError(t, err)
	assert.ErrorIs(t, l.Approve(admin, id+5), errs.ErrNotFound, "id not in queue")

	require.NoError(t, l.Approve(admin, id))
	assert.ErrorIs(t, l.Approve(admin, id), errs.ErrNotFound, "already reviewed")
}

func TestPendingQueueKeepsRegistrationOrder(t *testing.T) {
	l := setupLedger(t)

	var ids []uint64
	for i := 0; i < 3; i++ {
		id, err := l.Register(alice, "10115", "Berlin", []sdk.Address{alice}, []int64{1000})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, l.Reject(admin, ids[1], "middle one goes"))
	assert.Equal(t, []uint64{ids[0], ids[2]}, l.PendingProperties())
}

func TestTransferMovesShares(t *testing.T) {
	l := setupLedger(t)
	id := registerApproved(t, l, []sdk.Address{alice, bob}, []int64{600, 400})

	require.NoError(t, l.Transfer(alice, carol, id, 250))
	assert.Equal(t, int64(350), l.BalanceOf(alice, id))
	assert.Equal(t, int64(250), l.BalanceOf(carol, id))
	assert.Equal(t, []uint64{id}, l.UserProperties(carol))

	view, err := l.ViewProperty(id)
	require.NoError(t, err)
	assert.Len(t, view.Owners, 3)
}

func TestTransferDrainRemovesOwner(t *testing.T) {
	l := setupLedger(t)
	id := registerApproved(t, l, []sdk.Address{alice, bob}, []int64{600, 400})

	require.NoError(t, l.Transfer(bob, alice, id, 400))
	assert.Equal(t, int64(0), l.BalanceOf(bob, id))
	assert.Equal(t, int64(1000), l.BalanceOf(alice, id))
	assert.Empty(t, l.UserProperties(bob))

	view, err := l.ViewProperty(id)
	require.NoError(t, err)
	assert.Equal(t, []sdk.Address{alice}, view.Owners)

	// a drained holder has no entry left and cannot send
	assert.ErrorIs(t, l.Transfer(bob, alice, id, 1), errs.ErrNotOwner)
}

func TestTransferRejections(t *testing.T) {
	l := setupLedger(t)
	id := registerApproved(t, l, []sdk.Address{alice, bob}, []int64{600, 400})

	assert.ErrorIs(t, l.Transfer(carol, alice, id, 10), errs.ErrNotOwner)
	assert.ErrorIs(t, l.Transfer(alice, bob, id, 601), errs.ErrArithmetic)
	assert.ErrorIs(t, l.Transfer(alice, bob, id, 0), errs.ErrValidation)
	assert.ErrorIs(t, l.Transfer(alice, bob, id, -5), errs.ErrValidation)
	assert.ErrorIs(t, l.Transfer(alice, sdk.Address(""), id, 10), errs.ErrValidation)

	// nothing moved
	assert.Equal(t, int64(600), l.BalanceOf(alice, id))
	assert.Equal(t, int64(400), l.BalanceOf(bob, id))
}

func TestThreeOwnerSplitAndDrain(t *testing.T) {
	l := setupLedger(t)
	id := registerApproved(t, l, []sdk.Address{alice, bob, carol}, []int64{300, 300, 400})

	assert.Equal(t, int64(300), l.BalanceOf(alice, id))
	assert.Equal(t, int64(300), l.BalanceOf(bob, id))
	assert.Equal(t, int64(400), l.BalanceOf(carol, id))

	require.NoError(t, l.Transfer(bob, carol, id, 300))
	assert.Equal(t, int64(700), l.BalanceOf(carol, id))

	view, err := l.ViewProperty(id)
	require.NoError(t, err)
	assert.NotContains(t, view.Owners, bob)
	assert.Len(t, view.Owners, 2)
}

func TestTotalSupplyHoldsAcrossTransfers(t *testing.T) {
	l := setupLedger(t)
	id := registerApproved(t, l, []sdk.Address{alice, bob}, []int64{600, 400})

	require.NoError(t, l.Transfer(alice, carol, id, 123))
	require.NoError(t, l.Transfer(bob, carol, id, 400))
	require.NoError(t, l.Transfer(carol, alice, id, 23))

	view, err := l.ViewProperty(id)
	require.NoError(t, err)
	var total int64
	for _, s := range view.Shares {
		total += s
	}
	assert.Equal(t, int64(1000), total)
	for i, owner := range view.Owners {
		assert.Positive(t, view.Shares[i], "owner %s listed with no stake", owner)
	}
}
