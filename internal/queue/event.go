package queue

// AdoptionDecidedEvent is published after staff decide on an adoption form.
// It carries enough context for downstream consumers (audit log, notifier)
// without querying the primary database.
type AdoptionDecidedEvent struct {
	FormID    uint64 `json:"form_id"`
	PetID     uint64 `json:"pet_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	DecidedAt string `json:"decided_at"`
}
