// Package gate implements the approved-identity registry that decides whether
// an account may hold or trade property shares. The ledger consumes it through
// a narrow capability interface; everything else here (registration queue,
// admin set, profiles) is the onboarding workflow around that boolean.
package gate

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"

	"estateshares/errs"
	"estateshares/sdk"
)

// Profile carries the opaque descriptive fields captured at registration.
type Profile struct {
	GivenName   string `json:"given_name"`
	FamilyName  string `json:"family_name"`
	Nationality string `json:"nationality"`
	TaxID       string `json:"tax_id"`
	Residence   string `json:"residence"`
}

type userStatus string

const (
	statusPending  userStatus = "pending"
	statusApproved userStatus = "approved"
)

// Registry is the concrete access gate. All mutating calls serialize on one
// mutex; queries only read.
type Registry struct {
	mu     deadlock.Mutex
	state  sdk.State
	events sdk.EventSink
	owner  sdk.Address
}

// NewRegistry wires a registry against its state store and event sink. The
// owner is the only identity allowed to appoint admins.
func NewRegistry(state sdk.State, events sdk.EventSink, owner sdk.Address) *Registry {
	return &Registry{state: state, events: events, owner: owner}
}

// RegisterUser stores a pending profile for the caller. Identities already
// registered (pending or approved) cannot register again.
func (r *Registry) RegisterUser(caller sdk.Address, profile Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if caller.IsZero() {
		return errs.New(errs.SymbolValidation, "caller address required")
	}
	if rec, ok := r.loadUser(caller); ok {
		return errs.Newf(errs.SymbolValidation, "user %s already registered with status %s", caller, rec.Status)
	}
	r.saveUser(caller, &userRecord{Profile: profile, Status: statusPending})
	r.appendPending(caller)
	r.events.Emit(fmt.Sprintf("ur|by:%s", caller))
	return nil
}

// ApproveUser flips a pending registration to approved. Admin only.
func (r *Registry) ApproveUser(admin, addr sdk.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.isAdmin(admin) {
		return errs.Newf(errs.SymbolNotAuthorized, "%s is not an admin", admin)
	}
	rec, ok := r.loadUser(addr)
	if !ok || rec.Status != statusPending {
		return errs.Newf(errs.SymbolNotFound, "no pending registration for %s", addr)
	}
	rec.Status = statusApproved
	r.saveUser(addr, rec)
	r.removePending(addr)
	r.events.Emit(fmt.Sprintf("ua|id:%s|by:%s", addr, admin))
	return nil
}

// RejectUser discards a pending registration so the identity may register
// again later. Admin only.
func (r *Registry) RejectUser(admin, addr sdk.Address, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.isAdmin(admin) {
		return errs.Newf(errs.SymbolNotAuthorized, "%s is not an admin", admin)
	}
	rec, ok := r.loadUser(addr)
	if !ok || rec.Status != statusPending {
		return errs.Newf(errs.SymbolNotFound, "no pending registration for %s", addr)
	}
	r.state.Delete(userKey(addr))
	r.removePending(addr)
	r.events.Emit(fmt.Sprintf("ux|id:%s|by:%s|r:%s", addr, admin, reason))
	return nil
}

// AddAdmin appoints a new admin. Only the registry owner may call this.
func (r *Registry) AddAdmin(caller, addr sdk.Address, profile Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if caller != r.owner {
		return errs.Newf(errs.SymbolNotAuthorized, "%s is not the registry owner", caller)
	}
	if r.isAdmin(addr) {
		return errs.Newf(errs.SymbolValidation, "%s is already an admin", addr)
	}
	r.state.Set(adminKey(addr), "1")
	if _, ok := r.loadUser(addr); !ok {
		r.saveUser(addr, &userRecord{Profile: profile, Status: statusApproved})
	}
	r.events.Emit(fmt.Sprintf("aa|id:%s|by:%s", addr, caller))
	return nil
}

// IsApprovedHolder reports whether the identity may hold or trade shares.
func (r *Registry) IsApprovedHolder(addr sdk.Address) bool {
	rec, ok := r.loadUser(addr)
	return ok && rec.Status == statusApproved
}

// IsAdmin reports whether the identity may approve registrations and
// properties.
func (r *Registry) IsAdmin(addr sdk.Address) bool {
	return r.isAdmin(addr)
}

// PendingUsers returns addresses awaiting approval in registration order.
func (r *Registry) PendingUsers() []sdk.Address {
	return r.loadPending()
}

// UserProfile returns the stored profile for an identity.
func (r *Registry) UserProfile(addr sdk.Address) (Profile, error) {
	rec, ok := r.loadUser(addr)
	if !ok {
		return Profile{}, errs.Newf(errs.SymbolNotFound, "no registration for %s", addr)
	}
	return rec.Profile, nil
}

func (r *Registry) isAdmin(addr sdk.Address) bool {
	existing := r.state.Get(adminKey(addr))
	return existing != nil && *existing != ""
}
