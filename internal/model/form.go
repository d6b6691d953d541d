package model

import (
	"encoding/json"
	"time"
)

// Form kinds. Every public submission is stored as one of these.
const (
	FormKindVolunteer = "volunteer"
	FormKindAdoption  = "adoption"
	FormKindContact   = "contact"
)

// Form statuses. Submissions always start out pending; staff move them to
// approved or rejected from the dashboard.
const (
	FormStatusPending  = "pending"
	FormStatusApproved = "approved"
	FormStatusRejected = "rejected"
)

// ValidFormStatus reports whether s is one of the three known statuses.
func ValidFormStatus(s string) bool {
	return s == FormStatusPending || s == FormStatusApproved || s == FormStatusRejected
}

// Form represents one public submission, a row in the `forms` table. The
// kind-specific fields (contact details, experience text, message body) are
// kept opaque in Payload as the JSON the intake handler validated; the rest
// of the backend never looks inside it. PetID is set exactly when
// Kind == adoption and references pets.id.
//
// Fields:
//
//	ID        – primary key identifier.
//	Kind      – volunteer | adoption | contact.
//	Status    – pending | approved | rejected.
//	Payload   – kind-specific JSON document as submitted.
//	PetID     – referenced pet, nil unless Kind == adoption.
//	CreatedAt – timestamp of creation.
type Form struct {
	ID        uint64          `json:"id"`
	Kind      string          `json:"kind"`
	Status    string          `json:"status"`
	Payload   json.RawMessage `json:"data"`
	PetID     *uint64         `json:"petId,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
