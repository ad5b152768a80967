package ledger

import (
	"strconv"

	"github.com/pkg/errors"

	"estateshares/sdk"
)

// saveProperty writes the encoded record under its id key.
func (l *Ledger) saveProperty(p *Property) {
	l.state.Set(propertyKey(p.ID), string(EncodeProperty(p)))
}

// loadProperty decodes stored bytes when present.
func (l *Ledger) loadProperty(id uint64) (*Property, error) {
	ptr := l.state.Get(propertyKey(id))
	if ptr == nil || *ptr == "" {
		return nil, nil
	}
	p, err := DecodeProperty([]byte(*ptr))
	if err != nil {
		return nil, errors.Wrapf(err, "decode property %d", id)
	}
	return p, nil
}

// balanceEntry returns the stored share count and whether an entry exists.
// Absence and a zero balance are different things: only holders have entries.
func (l *Ledger) balanceEntry(id uint64, addr sdk.Address) (int64, bool) {
	ptr := l.state.Get(balanceKey(id, addr))
	if ptr == nil || *ptr == "" {
		return 0, false
	}
	n, _ := strconv.ParseInt(*ptr, 10, 64)
	return n, true
}

func (l *Ledger) setBalance(id uint64, addr sdk.Address, shares int64) {
	l.state.Set(balanceKey(id, addr), strconv.FormatInt(shares, 10))
}

func (l *Ledger) deleteBalance(id uint64, addr sdk.Address) {
	l.state.Delete(balanceKey(id, addr))
}

// ownersOf returns the current owner array for a property.
func (l *Ledger) ownersOf(id uint64) []sdk.Address {
	ptr := l.state.Get(ownerListKey(id))
	if ptr == nil || *ptr == "" {
		return nil
	}
	addrs, err := DecodeAddressList([]byte(*ptr))
	if err != nil {
		panic(errors.Wrapf(err, "decode owner list %d", id))
	}
	return addrs
}

func (l *Ledger) saveOwners(id uint64, addrs []sdk.Address) {
	if len(addrs) == 0 {
		l.state.Delete(ownerListKey(id))
		return
	}
	l.state.Set(ownerListKey(id), string(EncodeAddressList(addrs)))
}

// ownerAdd appends the address to the owner array and records its slot.
func (l *Ledger) ownerAdd(id uint64, addr sdk.Address) {
	addrs := l.ownersOf(id)
	addrs = append(addrs, addr)
	l.saveOwners(id, addrs)
	l.state.Set(ownerPosKey(id, addr), strconv.Itoa(len(addrs)-1))
}

// ownerRemove swaps the last entry into the leaving owner's slot and pops the
// tail, so removal stays constant-time no matter how many owners there are.
func (l *Ledger) ownerRemove(id uint64, addr sdk.Address) {
	posPtr := l.state.Get(ownerPosKey(id, addr))
	if posPtr == nil || *posPtr == "" {
		return
	}
	pos, _ := strconv.Atoi(*posPtr)
	addrs := l.ownersOf(id)
	if pos < 0 || pos >= len(addrs) {
		return
	}
	last := len(addrs) - 1
	if pos != last {
		moved := addrs[last]
		addrs[pos] = moved
		l.state.Set(ownerPosKey(id, moved), strconv.Itoa(pos))
	}
	l.saveOwners(id, addrs[:last])
	l.state.Delete(ownerPosKey(id, addr))
}
