package model

import "time"

// Pet represents a rescued animal listed for adoption, one row in the
// `pets` table. All descriptive attributes are free text entered by staff:
// the site lists cats and dogs of unknown age, so Age holds labels like
// "~2 yaş" rather than a number. IsAdopted is maintained by the
// reconciler whenever an adoption form referencing the pet changes state.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – pet name shown in the catalog.
//	Type        – species label (e.g. "Kedi", "Köpek").
//	Age         – age label.
//	Gender      – gender label.
//	Description – free-text introduction.
//	Image       – public URL of the pet photo (hosted on ImgBB).
//	Health      – health notes.
//	Character   – temperament notes.
//	IsAdopted   – true while an approved adoption form references this pet.
//	CreatedAt   – timestamp of creation.
type Pet struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Age         string    `json:"age"`
	Gender      string    `json:"gender"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Health      string    `json:"health"`
	Character   string    `json:"character"`
	IsAdopted   bool      `json:"isAdopted"`
	CreatedAt   time.Time `json:"createdAt"`
}
