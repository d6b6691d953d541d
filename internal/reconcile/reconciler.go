// Package reconcile keeps a pet's adoption flag consistent with the latest
// decision recorded on its adoption forms. Approving a form marks the pet
// adopted; demoting a previously approved form (to pending or rejected) or
// deleting an approved form marks it available again. Forms of other kinds
// never touch the catalog.
//
// The rule is deliberately last-writer-wins per form: it only looks at the
// single form being transitioned and does not cross-check other adoption
// forms referencing the same pet. Two staff members racing on different
// forms for one pet end up with whichever flag write lands last.
package reconcile

import (
	"context"
	"errors"
	"log"

	"github.com/sokakpati/shelter-api/internal/model"
	"github.com/sokakpati/shelter-api/internal/repository"
)

// PetFlagStore is the slice of the pet repository the reconciler needs.
type PetFlagStore interface {
	// SetAdopted writes the adoption flag and returns
	// repository.ErrPetNotFound when the pet no longer exists.
	SetAdopted(ctx context.Context, petID uint64, adopted bool) error
}

// Reconciler applies the adoption flag rule after form mutations.
type Reconciler struct {
	Pets PetFlagStore
}

// New constructs a Reconciler over the given pet store.
func New(pets PetFlagStore) *Reconciler {
	return &Reconciler{Pets: pets}
}

// ApplyTransition is called after a form's status change has been
// persisted. oldStatus is the status the form held before the change. At
// most one pet write happens per call:
//
//   - newStatus approved            -> flag set true
//   - approved demoted to anything  -> flag set false
//   - never-approved demotions      -> no-op
//
// A dangling pet reference is logged and skipped; the form's own status
// change is authoritative and must not be failed because the pet vanished.
// Store errors other than a missing pet are returned to the caller.
func (r *Reconciler) ApplyTransition(ctx context.Context, f *model.Form, oldStatus, newStatus string) error {
	if f.Kind != model.FormKindAdoption || f.PetID == nil {
		return nil
	}

	var adopted bool
	switch {
	case newStatus == model.FormStatusApproved:
		adopted = true
	case oldStatus == model.FormStatusApproved:
		adopted = false
	default:
		return nil
	}

	if err := r.Pets.SetAdopted(ctx, *f.PetID, adopted); err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			log.Printf("reconcile: form %d references missing pet %d; flag update skipped", f.ID, *f.PetID)
			return nil
		}
		return err
	}
	return nil
}

// ApplyDeletion is called before an adoption form is removed. Deleting an
// approved form is treated as an implicit demotion: the referenced pet
// becomes available again. All other deletions are no-ops.
func (r *Reconciler) ApplyDeletion(ctx context.Context, f *model.Form) error {
	if f.Kind != model.FormKindAdoption || f.PetID == nil || f.Status != model.FormStatusApproved {
		return nil
	}
	if err := r.Pets.SetAdopted(ctx, *f.PetID, false); err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			log.Printf("reconcile: deleted form %d references missing pet %d; flag update skipped", f.ID, *f.PetID)
			return nil
		}
		return err
	}
	return nil
}
