// Package policy holds the ownership and visibility rules applied before any
// resource is returned or changed. The functions are pure: callers load the
// resource (and its parent, for child entities) and ask for a decision.
package policy

import (
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/auth"
)

// Owned is anything with an owning user.
type Owned interface {
	Owner() int64
}

// Readable is an owned resource with visibility and soft-delete state.
type Readable interface {
	Owned
	Public() bool
	SoftDeleted() bool
}

// Parent is an owned resource that child entities point at.
type Parent interface {
	Owned
	Key() int64
}

// Child is an entity that inherits ownership from its parent.
type Child interface {
	ParentKey() int64
}

// CanMutate reports whether p owns r.
func CanMutate(r Owned, p *auth.Principal) bool {
	return r != nil && p != nil && r.Owner() == p.UserID
}

// CanMutateChild resolves ownership through the parent. The child must
// actually belong to the given parent.
func CanMutateChild(c Child, parent Parent, p *auth.Principal) bool {
	return c != nil && parent != nil && c.ParentKey() == parent.Key() && CanMutate(parent, p)
}

// CanRead: soft-deleted rows are never readable; public rows are readable by
// anyone; everything else only by its owner.
func CanRead(r Readable, p *auth.Principal) bool {
	if r == nil || r.SoftDeleted() {
		return false
	}
	return r.Public() || CanMutate(r, p)
}

// CountsView reports whether a view of post by p increments its counter.
// Authors viewing their own posts are not counted.
func CountsView(post Owned, p *auth.Principal) bool {
	return p == nil || post.Owner() != p.UserID
}

// AuthorizeMutation returns nil when p may change r. Anonymous callers get
// common.ErrorUnauthorized, soft-deleted targets common.ErrorNotFound and
// everyone else common.ErrorForbidden.
func AuthorizeMutation(r Owned, p *auth.Principal) error {
	if p == nil {
		return common.ErrorUnauthorized
	}
	if d, ok := r.(interface{ SoftDeleted() bool }); ok && d.SoftDeleted() {
		return common.ErrorNotFound
	}
	if !CanMutate(r, p) {
		return common.ErrorForbidden
	}
	return nil
}

// AuthorizeChildMutation is AuthorizeMutation for child entities.
func AuthorizeChildMutation(c Child, parent Parent, p *auth.Principal) error {
	if p == nil {
		return common.ErrorUnauthorized
	}
	if c.ParentKey() != parent.Key() {
		return common.ErrorNotFound
	}
	return AuthorizeMutation(parent, p)
}

// AuthorizeRead returns common.ErrorNotFound for soft-deleted resources and
// common.ErrorForbidden for private ones the caller does not own.
func AuthorizeRead(r Readable, p *auth.Principal) error {
	if r.SoftDeleted() {
		return common.ErrorNotFound
	}
	if !CanRead(r, p) {
		return common.ErrorForbidden
	}
	return nil
}
