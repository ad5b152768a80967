package market

import (
	"fmt"

	"estateshares/sdk"
)

// emitListedEvent writes a tiny "ls" line so watchers see new supply.
func (m *Market) emitListedEvent(propertyID uint64, seller sdk.Address, quantity int64, price sdk.Amount) {
	m.events.Emit(fmt.Sprintf(
		"ls|id:%d|by:%s|qty:%d|p:%d",
		propertyID,
		sdk.AddressToString(seller),
		quantity,
		int64(price),
	))
}

// emitUnlistedEvent mirrors the listing ping when supply is withdrawn.
func (m *Market) emitUnlistedEvent(propertyID uint64, seller sdk.Address) {
	m.events.Emit(fmt.Sprintf(
		"ul|id:%d|by:%s",
		propertyID,
		sdk.AddressToString(seller),
	))
}

// emitOfferEvent logs a placed or replaced bid.
func (m *Market) emitOfferEvent(propertyID uint64, seller, buyer sdk.Address, price sdk.Amount) {
	m.events.Emit(fmt.Sprintf(
		"of|id:%d|s:%s|b:%s|p:%d",
		propertyID,
		sdk.AddressToString(seller),
		sdk.AddressToString(buyer),
		int64(price),
	))
}

// emitRetractEvent signals a withdrawn bid.
func (m *Market) emitRetractEvent(propertyID uint64, seller, buyer sdk.Address) {
	m.events.Emit(fmt.Sprintf(
		"ro|id:%d|s:%s|b:%s",
		propertyID,
		sdk.AddressToString(seller),
		sdk.AddressToString(buyer),
	))
}

// emitAcceptedEvent marks the start of a settlement window.
func (m *Market) emitAcceptedEvent(propertyID uint64, seller, buyer sdk.Address, price sdk.Amount, deadline int64) {
	m.events.Emit(fmt.Sprintf(
		"ao|id:%d|s:%s|b:%s|p:%d|dl:%d",
		propertyID,
		sdk.AddressToString(seller),
		sdk.AddressToString(buyer),
		int64(price),
		deadline,
	))
}

// emitDealExpiredEvent notes a lapsed deal the moment its revert is persisted.
func (m *Market) emitDealExpiredEvent(propertyID uint64, seller sdk.Address) {
	m.events.Emit(fmt.Sprintf(
		"dx|id:%d|s:%s",
		propertyID,
		sdk.AddressToString(seller),
	))
}

// emitSettledEvent is the final line of a listing's life.
func (m *Market) emitSettledEvent(propertyID uint64, seller, buyer sdk.Address, quantity int64, paid, fee sdk.Amount) {
	m.events.Emit(fmt.Sprintf(
		"sx|id:%d|s:%s|b:%s|qty:%d|paid:%d|fee:%d",
		propertyID,
		sdk.AddressToString(seller),
		sdk.AddressToString(buyer),
		quantity,
		int64(paid),
		int64(fee),
	))
}
