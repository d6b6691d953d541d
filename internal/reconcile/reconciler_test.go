package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokakpati/shelter-api/internal/model"
	"github.com/sokakpati/shelter-api/internal/repository"
)

// fakePetStore records SetAdopted calls and simulates missing pets.
type fakePetStore struct {
	flags   map[uint64]bool
	calls   int
	failErr error
}

func newFakePetStore(ids ...uint64) *fakePetStore {
	f := &fakePetStore{flags: make(map[uint64]bool)}
	for _, id := range ids {
		f.flags[id] = false
	}
	return f
}

func (f *fakePetStore) SetAdopted(_ context.Context, petID uint64, adopted bool) error {
	f.calls++
	if f.failErr != nil {
		return f.failErr
	}
	if _, ok := f.flags[petID]; !ok {
		return repository.ErrPetNotFound
	}
	f.flags[petID] = adopted
	return nil
}

func adoptionForm(id, petID uint64, status string) *model.Form {
	return &model.Form{ID: id, Kind: model.FormKindAdoption, Status: status, PetID: &petID}
}

func TestApproveSetsFlag(t *testing.T) {
	pets := newFakePetStore(7)
	r := New(pets)

	f := adoptionForm(1, 7, model.FormStatusPending)
	require.NoError(t, r.ApplyTransition(context.Background(), f, model.FormStatusPending, model.FormStatusApproved))
	assert.True(t, pets.flags[7])
	assert.Equal(t, 1, pets.calls)
}

func TestDemotionFromApprovedClearsFlag(t *testing.T) {
	for _, newStatus := range []string{model.FormStatusPending, model.FormStatusRejected} {
		t.Run(newStatus, func(t *testing.T) {
			pets := newFakePetStore(7)
			pets.flags[7] = true
			r := New(pets)

			f := adoptionForm(1, 7, model.FormStatusApproved)
			require.NoError(t, r.ApplyTransition(context.Background(), f, model.FormStatusApproved, newStatus))
			assert.False(t, pets.flags[7])
		})
	}
}

func TestNeverApprovedDemotionIsNoop(t *testing.T) {
	pets := newFakePetStore(7)
	r := New(pets)

	f := adoptionForm(1, 7, model.FormStatusPending)
	require.NoError(t, r.ApplyTransition(context.Background(), f, model.FormStatusPending, model.FormStatusRejected))
	assert.Zero(t, pets.calls, "no pet write expected for pending -> rejected")
	assert.False(t, pets.flags[7])
}

func TestNonAdoptionKindsNeverTouchPets(t *testing.T) {
	pets := newFakePetStore(7)
	r := New(pets)

	petID := uint64(7)
	for _, kind := range []string{model.FormKindVolunteer, model.FormKindContact} {
		f := &model.Form{ID: 1, Kind: kind, Status: model.FormStatusPending, PetID: &petID}
		require.NoError(t, r.ApplyTransition(context.Background(), f, model.FormStatusPending, model.FormStatusApproved))
		require.NoError(t, r.ApplyDeletion(context.Background(), f))
	}
	assert.Zero(t, pets.calls)
}

func TestDeletingApprovedFormClearsFlag(t *testing.T) {
	pets := newFakePetStore(7)
	pets.flags[7] = true
	r := New(pets)

	require.NoError(t, r.ApplyDeletion(context.Background(), adoptionForm(1, 7, model.FormStatusApproved)))
	assert.False(t, pets.flags[7])
}

func TestDeletingPendingFormIsNoop(t *testing.T) {
	pets := newFakePetStore(7)
	r := New(pets)

	require.NoError(t, r.ApplyDeletion(context.Background(), adoptionForm(1, 7, model.FormStatusPending)))
	assert.Zero(t, pets.calls)
}

func TestRepeatedApprovalIsIdempotent(t *testing.T) {
	pets := newFakePetStore(7)
	r := New(pets)

	f := adoptionForm(1, 7, model.FormStatusPending)
	require.NoError(t, r.ApplyTransition(context.Background(), f, model.FormStatusPending, model.FormStatusApproved))
	require.NoError(t, r.ApplyTransition(context.Background(), f, model.FormStatusApproved, model.FormStatusApproved))
	assert.True(t, pets.flags[7])
	assert.Equal(t, 2, pets.calls, "each approval issues one write; the second is a harmless overwrite")
}

func TestMissingPetIsLoggedNotFatal(t *testing.T) {
	pets := newFakePetStore() // no pets at all
	r := New(pets)

	f := adoptionForm(1, 99, model.FormStatusPending)
	assert.NoError(t, r.ApplyTransition(context.Background(), f, model.FormStatusPending, model.FormStatusApproved))
	assert.NoError(t, r.ApplyDeletion(context.Background(), adoptionForm(2, 99, model.FormStatusApproved)))
}

func TestStoreFailurePropagates(t *testing.T) {
	pets := newFakePetStore(7)
	pets.failErr = errors.New("store unavailable")
	r := New(pets)

	f := adoptionForm(1, 7, model.FormStatusPending)
	assert.Error(t, r.ApplyTransition(context.Background(), f, model.FormStatusPending, model.FormStatusApproved))
}
