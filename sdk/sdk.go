// Package sdk is the execution-environment surface the ledger and marketplace
// are built against. The surrounding deployment provides caller identity per
// call, a key/value state store, an atomic value-transfer primitive, a logical
// clock and an event sink; everything here is handed to components explicitly
// instead of being discovered through ambient globals.
package sdk

// State is the key/value storage a component persists its records into.
type State interface {
	Set(key, value string)
	Get(key string) *string
	Delete(key string)
}

// Bank moves payment amounts between identities. Draw pulls funds from an
// account into the holding account, Transfer pays out of it. Both are atomic:
// they either move the full amount or return an error and move nothing.
type Bank interface {
	Balance(addr Address, asset Asset) Amount
	Draw(from Address, amount Amount, asset Asset) error
	Transfer(to Address, amount Amount, asset Asset) error
}

// EventSink receives one terse line per state change so watchers can follow
// along without scanning storage diffs.
type EventSink interface {
	Emit(line string)
}
