package ledger

import (
	"strconv"

	"estateshares/sdk"
)

const (
	// kProperty stores serialized Property blobs.
	kProperty byte = 0x01
	// kBalance tracks per-holder share balances (property scoped).
	kBalance byte = 0x02
	// kOwnerList houses the encoded owner address array per property.
	kOwnerList byte = 0x03
	// kOwnerPos maps a holder to its slot in the owner array for O(1) removal.
	kOwnerPos byte = 0x04
)

const (
	// PropertiesCount holds an integer counter for properties (used for generating IDs).
	PropertiesCount = "count:prop"
	// pendingIndexBase is the chunked index of property ids awaiting review.
	pendingIndexBase = "prop:pending"
	// holderIndexBase prefixes the per-holder chunked index of property ids.
	holderIndexBase = "prop:held:"
)

// packU64LEInline sprinkles a uint64 into dst in little-endian order so our keys stay compact.
func packU64LEInline(x uint64, dst []byte) {
	dst[0] = byte(x)
	dst[1] = byte(x >> 8)
	dst[2] = byte(x >> 16)
	dst[3] = byte(x >> 24)
	dst[4] = byte(x >> 32)
	dst[5] = byte(x >> 40)
	dst[6] = byte(x >> 48)
	dst[7] = byte(x >> 56)
}

// packU64LE appends the encoded number to dst and returns the new slice.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

// propertyKey builds a storage key string for a property by ID.
func propertyKey(id uint64) string {
	var buf [9]byte
	buf[0] = kProperty
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

// balanceKey mixes property id plus address bytes to avoid nested maps in host storage.
func balanceKey(id uint64, addr sdk.Address) string {
	addrStr := sdk.AddressToString(addr)
	buf := make([]byte, 0, 1+8+len(addrStr))
	buf = append(buf, kBalance)
	buf = packU64LE(id, buf)
	buf = append(buf, addrStr...)
	return string(buf)
}

// ownerListKey stores the owner array under 0x03, one entry per property.
func ownerListKey(id uint64) string {
	var buf [9]byte
	buf[0] = kOwnerList
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

// ownerPosKey mirrors balance keys but keeps array slots in a separate prefix.
func ownerPosKey(id uint64, addr sdk.Address) string {
	addrStr := sdk.AddressToString(addr)
	buf := make([]byte, 0, 1+8+len(addrStr))
	buf = append(buf, kOwnerPos)
	buf = packU64LE(id, buf)
	buf = append(buf, addrStr...)
	return string(buf)
}

// holderIndexKey names the chunked index of ids a holder has shares in.
func holderIndexKey(addr sdk.Address) string {
	return holderIndexBase + sdk.AddressToString(addr)
}

// getCount reads the string counter under the key and defaults to zero, nothing magical here.
func getCount(st sdk.State, key string) uint64 {
	ptr := st.Get(key)
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, _ := strconv.ParseUint(*ptr, 10, 64)
	return n
}

// setCount stores uint64 counters back as decimal strings for the host kv.
func setCount(st sdk.State, key string, n uint64) {
	st.Set(key, strconv.FormatUint(n, 10))
}
