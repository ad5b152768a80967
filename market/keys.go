package market

import "estateshares/sdk"

const (
	// kListing stores serialized Listing blobs keyed by property and seller.
	kListing byte = 0x20
	// kOffer stores encoded Offer entries beneath their listing.
	kOffer byte = 0x21
	// kOfferIndex keeps the buyer array per listing so cleanup can walk offers.
	kOfferIndex byte = 0x22
)

const (
	// feesKey accumulates retained marketplace fees as a decimal string.
	feesKey = "market:fees"
	// addrSep splits the two address segments inside offer keys; addresses
	// are printable so a NUL byte can never collide.
	addrSep byte = 0x00
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

// listingKey mixes property id plus seller bytes, one listing per pair.
func listingKey(propertyID uint64, seller sdk.Address) string {
	sellerStr := sdk.AddressToString(seller)
	buf := make([]byte, 0, 1+8+len(sellerStr))
	buf = append(buf, kListing)
	buf = packU64LE(propertyID, buf)
	buf = append(buf, sellerStr...)
	return string(buf)
}

// offerKey appends the buyer after a NUL so seller/buyer segments stay apart.
func offerKey(propertyID uint64, seller, buyer sdk.Address) string {
	sellerStr := sdk.AddressToString(seller)
	buyerStr := sdk.AddressToString(buyer)
	buf := make([]byte, 0, 1+8+len(sellerStr)+1+len(buyerStr))
	buf = append(buf, kOffer)
	buf = packU64LE(propertyID, buf)
	buf = append(buf, sellerStr...)
	buf = append(buf, addrSep)
	buf = append(buf, buyerStr...)
	return string(buf)
}

// offerIndexKey names the buyer array for one listing.
func offerIndexKey(propertyID uint64, seller sdk.Address) string {
	sellerStr := sdk.AddressToString(seller)
	buf := make([]byte, 0, 1+8+len(sellerStr))
	buf = append(buf, kOfferIndex)
	buf = packU64LE(propertyID, buf)
	buf = append(buf, sellerStr...)
	return string(buf)
}
