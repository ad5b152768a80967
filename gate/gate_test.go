package gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estateshares/errs"
	"estateshares/gate"
	"estateshares/sdk"
)

var (
	owner = sdk.AddressFromString("user:root")
	admin = sdk.AddressFromString("user:admin")
	alice = sdk.AddressFromString("user:alice")
	bob   = sdk.AddressFromString("user:bob")
)

func setupRegistry(t *testing.T) *gate.Registry {
	t.Helper()
	reg := gate.NewRegistry(sdk.NewMemoryState(), sdk.NewLogSink(), owner)
	require.NoError(t, reg.AddAdmin(owner, admin, gate.Profile{GivenName: "Ada"}))
	return reg
}

func TestRegisterAndApproveUser(t *testing.T) {
	reg := setupRegistry(t)

	require.NoError(t, reg.RegisterUser(alice, gate.Profile{GivenName: "Alice", Nationality: "DE"}))
	assert.False(t, reg.IsApprovedHolder(alice), "registration alone must not grant holder rights")
	assert.Equal(t, []sdk.Address{alice}, reg.PendingUsers())

	require.NoError(t, reg.ApproveUser(admin, alice))
	assert.True(t, reg.IsApprovedHolder(alice))
	assert.Empty(t, reg.PendingUsers())

	profile, err := reg.UserProfile(alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.GivenName)
}

func TestRegisterTwiceFails(t *testing.T) {
	reg := setupRegistry(t)

	require.NoError(t, reg.RegisterUser(alice, gate.Profile{}))
	err := reg.RegisterUser(alice, gate.Profile{})
	assert.ErrorIs(t, err, errs.ErrValidation)

	require.NoError(t, reg.ApproveUser(admin, alice))
	err = reg.RegisterUser(alice, gate.Profile{})
	assert.ErrorIs(t, err, errs.ErrValidation, "approved users cannot re-register either")
}

func TestApproveNeedsAdmin(t *testing.T) {
	reg := setupRegistry(t)

	require.NoError(t, reg.RegisterUser(alice, gate.Profile{}))
	assert.ErrorIs(t, reg.ApproveUser(bob, alice), errs.ErrNotAuthorized)
	assert.ErrorIs(t, reg.RejectUser(bob, alice, "nope"), errs.ErrNotAuthorized)
	assert.False(t, reg.IsApprovedHolder(alice))
}

func TestRejectFreesTheIdentity(t *testing.T) {
	reg := setupRegistry(t)

	require.NoError(t, reg.RegisterUser(alice, gate.Profile{TaxID: "1"}))
	require.NoError(t, reg.RejectUser(admin, alice, "incomplete documents"))
	assert.False(t, reg.IsApprovedHolder(alice))
	assert.Empty(t, reg.PendingUsers())

	// a rejected identity may try again with fixed details
	require.NoError(t, reg.RegisterUser(alice, gate.Profile{TaxID: "2"}))
	require.NoError(t, reg.ApproveUser(admin, alice))
	assert.True(t, reg.IsApprovedHolder(alice))
}

func TestPendingOrderIsRegistrationOrder(t *testing.T) {
	reg := setupRegistry(t)

	require.NoError(t, reg.RegisterUser(alice, gate.Profile{}))
	require.NoError(t, reg.RegisterUser(bob, gate.Profile{}))
	carol := sdk.AddressFromString("user:carol")
	require.NoError(t, reg.RegisterUser(carol, gate.Profile{}))

	require.NoError(t, reg.RejectUser(admin, bob, "unreadable scan"))
	assert.Equal(t, []sdk.Address{alice, carol}, reg.PendingUsers())
}

func TestAddressNamedPendingIsJustAUser(t *testing.T) {
	reg := setupRegistry(t)
	pending := sdk.AddressFromString("pending")

	require.NoError(t, reg.RegisterUser(pending, gate.Profile{GivenName: "Pat"}))
	require.NoError(t, reg.RegisterUser(alice, gate.Profile{}))
	assert.Equal(t, []sdk.Address{pending, alice}, reg.PendingUsers())

	// the queue and the user's record live under separate keys
	profile, err := reg.UserProfile(pending)
	require.NoError(t, err)
	assert.Equal(t, "Pat", profile.GivenName)

	require.NoError(t, reg.ApproveUser(admin, pending))
	assert.True(t, reg.IsApprovedHolder(pending))
	assert.Equal(t, []sdk.Address{alice}, reg.PendingUsers())
}

func TestAddAdminIsOwnerOnly(t *testing.T) {
	reg := setupRegistry(t)

	err := reg.AddAdmin(admin, bob, gate.Profile{})
	assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.False(t, reg.IsAdmin(bob))

	require.NoError(t, reg.AddAdmin(owner, bob, gate.Profile{}))
	assert.True(t, reg.IsAdmin(bob))
	assert.True(t, reg.IsApprovedHolder(bob), "appointed admins are approved holders too")
}
