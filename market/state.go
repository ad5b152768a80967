package market

import (
	"strconv"

	"github.com/pkg/errors"

	"estateshares/sdk"
)

func (m *Market) saveListing(lst *Listing) {
	m.state.Set(listingKey(lst.PropertyID, lst.Seller), string(EncodeListing(lst)))
}

func (m *Market) loadListing(propertyID uint64, seller sdk.Address) (*Listing, error) {
	ptr := m.state.Get(listingKey(propertyID, seller))
	if ptr == nil || *ptr == "" {
		return nil, nil
	}
	lst, err := DecodeListing([]byte(*ptr))
	if err != nil {
		return nil, errors.Wrapf(err, "decode listing %d/%s", propertyID, sdk.AddressToString(seller))
	}
	return lst, nil
}

func (m *Market) saveOffer(propertyID uint64, seller sdk.Address, o *Offer) {
	m.state.Set(offerKey(propertyID, seller, o.Buyer), string(EncodeOffer(o)))
}

func (m *Market) loadOffer(propertyID uint64, seller, buyer sdk.Address) (*Offer, error) {
	ptr := m.state.Get(offerKey(propertyID, seller, buyer))
	if ptr == nil || *ptr == "" {
		return nil, nil
	}
	o, err := DecodeOffer([]byte(*ptr))
	if err != nil {
		return nil, errors.Wrapf(err, "decode offer %d/%s/%s",
			propertyID, sdk.AddressToString(seller), sdk.AddressToString(buyer))
	}
	return o, nil
}

func (m *Market) deleteOffer(propertyID uint64, seller, buyer sdk.Address) {
	m.state.Delete(offerKey(propertyID, seller, buyer))
}

// offerBuyers returns every buyer with a standing offer on the listing.
func (m *Market) offerBuyers(propertyID uint64, seller sdk.Address) []sdk.Address {
	ptr := m.state.Get(offerIndexKey(propertyID, seller))
	if ptr == nil || *ptr == "" {
		return nil
	}
	buyers, err := decodeAddressList([]byte(*ptr))
	if err != nil {
		panic(errors.Wrapf(err, "decode offer index %d/%s", propertyID, sdk.AddressToString(seller)))
	}
	return buyers
}

func (m *Market) saveOfferBuyers(propertyID uint64, seller sdk.Address, buyers []sdk.Address) {
	key := offerIndexKey(propertyID, seller)
	if len(buyers) == 0 {
		m.state.Delete(key)
		return
	}
	m.state.Set(key, string(encodeAddressList(buyers)))
}

// rememberBuyer adds the buyer to the listing's offer index once.
func (m *Market) rememberBuyer(propertyID uint64, seller, buyer sdk.Address) {
	buyers := m.offerBuyers(propertyID, seller)
	for _, b := range buyers {
		if b == buyer {
			return
		}
	}
	m.saveOfferBuyers(propertyID, seller, append(buyers, buyer))
}

// forgetBuyer drops the buyer from the listing's offer index.
func (m *Market) forgetBuyer(propertyID uint64, seller, buyer sdk.Address) {
	buyers := m.offerBuyers(propertyID, seller)
	rest := buyers[:0]
	for _, b := range buyers {
		if b != buyer {
			rest = append(rest, b)
		}
	}
	m.saveOfferBuyers(propertyID, seller, rest)
}

// clearListing removes the listing plus every standing offer beneath it.
func (m *Market) clearListing(propertyID uint64, seller sdk.Address) {
	for _, buyer := range m.offerBuyers(propertyID, seller) {
		m.deleteOffer(propertyID, seller, buyer)
	}
	m.state.Delete(offerIndexKey(propertyID, seller))
	m.state.Delete(listingKey(propertyID, seller))
}

// feesCollected reads the running fee total.
func (m *Market) feesCollected() sdk.Amount {
	ptr := m.state.Get(feesKey)
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, _ := strconv.ParseInt(*ptr, 10, 64)
	return sdk.Amount(n)
}

func (m *Market) addFees(fee sdk.Amount) {
	total := m.feesCollected() + fee
	m.state.Set(feesKey, strconv.FormatInt(int64(total), 10))
}
