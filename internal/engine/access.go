package engine

import (
	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/principal"
)

// AccessRegistry holds the account's owner identity and the paused flag.
// The owner is set at construction and changes only through a successfully
// executed recovery; there is deliberately no direct setter.
type AccessRegistry struct {
	owner  principal.Principal
	paused bool
}

// NewAccessRegistry constructs a registry for the given owner.
// The null principal is rejected.
func NewAccessRegistry(owner principal.Principal) (*AccessRegistry, error) {
	if owner.IsZero() {
		return nil, common.ErrInvalidPrincipal
	}
	return &AccessRegistry{owner: owner}, nil
}

// Owner returns the current owner.
func (r *AccessRegistry) Owner() principal.Principal {
	return r.owner
}

// IsOwner reports whether caller is the current owner.
func (r *AccessRegistry) IsOwner(caller principal.Principal) bool {
	return caller == r.owner
}

// Paused reports whether the account is paused.
func (r *AccessRegistry) Paused() bool {
	return r.paused
}

func (r *AccessRegistry) setPaused(paused bool) {
	r.paused = paused
}

// transferOwnership swaps the owner. Called only by recovery execution,
// which has already validated the new owner.
func (r *AccessRegistry) transferOwnership(newOwner principal.Principal) {
	r.owner = newOwner
}
