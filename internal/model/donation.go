package model

import "time"

// Donation statuses reuse the submission vocabulary: supporters report a
// contribution, staff confirm it before it appears on the public list.
const (
	DonationStatusPending  = "pending"
	DonationStatusApproved = "approved"
	DonationStatusRejected = "rejected"
)

// ValidDonationStatus reports whether s is a known donation status.
func ValidDonationStatus(s string) bool {
	return s == DonationStatusPending || s == DonationStatusApproved || s == DonationStatusRejected
}

// Donation is a self-reported contribution, a row in the `donations` table.
// It records intent only; no payment is processed. Amount is stored as a
// decimal string to avoid float rounding on money values. IsAnonymous hides
// the donor name on the public list but keeps it for staff.
type Donation struct {
	ID          uint64    `json:"id"`
	FullName    string    `json:"fullName"`
	Phone       string    `json:"phone"`
	Amount      string    `json:"amount"`
	Message     string    `json:"message,omitempty"`
	IsAnonymous bool      `json:"isAnonymous"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
