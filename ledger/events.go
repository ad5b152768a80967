package ledger

import (
	"fmt"

	"estateshares/sdk"
)

// emitRegisteredEvent writes a tiny "rp" line so watchers know a property entered the queue.
func (l *Ledger) emitRegisteredEvent(id uint64, by sdk.Address) {
	l.events.Emit(fmt.Sprintf(
		"rp|id:%d|by:%s",
		id,
		sdk.AddressToString(by),
	))
}

// emitApprovedEvent signals that staged balances just became live.
func (l *Ledger) emitApprovedEvent(id uint64, by sdk.Address) {
	l.events.Emit(fmt.Sprintf(
		"ap|id:%d|by:%s",
		id,
		sdk.AddressToString(by),
	))
}

// emitRejectedEvent carries the reviewer's reason for explorers.
func (l *Ledger) emitRejectedEvent(id uint64, by sdk.Address, reason string) {
	l.events.Emit(fmt.Sprintf(
		"rj|id:%d|by:%s|r:%s",
		id,
		sdk.AddressToString(by),
		reason,
	))
}

// emitTransferEvent logs every share movement in one short tx line.
func (l *Ledger) emitTransferEvent(id uint64, from, to sdk.Address, amount int64) {
	l.events.Emit(fmt.Sprintf(
		"tx|id:%d|from:%s|to:%s|amt:%d",
		id,
		sdk.AddressToString(from),
		sdk.AddressToString(to),
		amount,
	))
}
