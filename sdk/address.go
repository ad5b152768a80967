package sdk

import "strings"

type AddressDomain string

const (
	AddressDomainUser     AddressDomain = "user"
	AddressDomainContract AddressDomain = "contract"
	AddressDomainSystem   AddressDomain = "system"
)

type Address string

// String returns the literal representation (like user:alice) of the address.
// Example: sdk.Address("user:alice").String()
func (a Address) String() string {
	return string(a)
}

// Domain checks the prefix to tell user, contract and system identities apart.
// Example: sdk.Address("contract:market").Domain()
func (a Address) Domain() AddressDomain {
	if strings.HasPrefix(a.String(), "system:") {
		return AddressDomainSystem
	}
	if strings.HasPrefix(a.String(), "contract:") {
		return AddressDomainContract
	}
	return AddressDomainUser
}

// IsZero reports whether the address is empty, used as a light sanity check.
func (a Address) IsZero() bool {
	return len(a) == 0
}

// AddressFromString converts a human string to the address wrapper.
// Example: sdk.AddressFromString("user:alice")
func AddressFromString(s string) Address { return Address(s) }

// AddressToString turns the wrapped type back into the underlying string.
func AddressToString(a Address) string { return a.String() }
