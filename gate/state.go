package gate

import (
	"encoding/json"

	"golang.org/x/exp/slices"

	"estateshares/sdk"
)

// Storage layout: one JSON record per user under usr:<addr>, a flag entry per
// admin under adm:<addr>, and one insertion-ordered pending list. The list
// sits under its own prefix so no address can collide with it.
const (
	userKeyPrefix  = "usr:"
	adminKeyPrefix = "adm:"
	pendingListKey = "usrq:pending"
)

type userRecord struct {
	Profile Profile    `json:"profile"`
	Status  userStatus `json:"status"`
}

func userKey(addr sdk.Address) string {
	return userKeyPrefix + sdk.AddressToString(addr)
}

func adminKey(addr sdk.Address) string {
	return adminKeyPrefix + sdk.AddressToString(addr)
}

func (r *Registry) saveUser(addr sdk.Address, rec *userRecord) {
	b, _ := json.Marshal(rec)
	r.state.Set(userKey(addr), string(b))
}

func (r *Registry) loadUser(addr sdk.Address) (*userRecord, bool) {
	ptr := r.state.Get(userKey(addr))
	if ptr == nil || *ptr == "" {
		return nil, false
	}
	var rec userRecord
	if err := json.Unmarshal([]byte(*ptr), &rec); err != nil {
		return nil, false
	}
	return &rec, true
}

func (r *Registry) loadPending() []sdk.Address {
	ptr := r.state.Get(pendingListKey)
	if ptr == nil || *ptr == "" {
		return []sdk.Address{}
	}
	var addrs []sdk.Address
	if err := json.Unmarshal([]byte(*ptr), &addrs); err != nil {
		return []sdk.Address{}
	}
	return addrs
}

func (r *Registry) savePending(addrs []sdk.Address) {
	b, _ := json.Marshal(addrs)
	r.state.Set(pendingListKey, string(b))
}

func (r *Registry) appendPending(addr sdk.Address) {
	addrs := r.loadPending()
	if slices.Contains(addrs, addr) {
		return
	}
	r.savePending(append(addrs, addr))
}

func (r *Registry) removePending(addr sdk.Address) {
	addrs := r.loadPending()
	next := make([]sdk.Address, 0, len(addrs))
	for _, a := range addrs {
		if a != addr {
			next = append(next, a)
		}
	}
	r.savePending(next)
}
