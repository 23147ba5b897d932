// Package inventory implements the seller's inventory workflow and the
// sold-lock guard that every edit and delete passes through first.
//
// Lifecycle per artwork: draft and listed artworks may be edited and
// deleted freely; a sale (recorded by the collaborator, never here) moves
// an artwork to sold, after which every mutation is rejected locally. The
// collaborator stays the authority: a rejection it returns for an artwork
// the guard let through is surfaced like any other transport failure.
package inventory

import "github.com/erazemk/artverse/internal/model"

// SoldReason is the user-facing reason a sold artwork cannot be mutated.
const SoldReason = "sold artworks cannot be edited/deleted"

// Decision is the result of a guard check.
type Decision struct {
	Allowed bool
	Reason  string
}

// CanMutate reports whether a may be edited or deleted.
func CanMutate(a model.Artwork) Decision {
	if a.IsSold {
		return Decision{Allowed: false, Reason: SoldReason}
	}
	return Decision{Allowed: true}
}
