package entity

// Slot is a derived bookable time window. Slots are produced fresh per request
// by the slot generator and never persisted; Available is false when the slot
// overlaps a break or is already held by an active booking.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}
