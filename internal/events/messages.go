package events

// Event type constants.
const (
	TypeMoodSelection   = "session:moods"
	TypeAccordsUpdated  = "session:accords"
	TypeResultsUpdated  = "session:results"
	TypeSlotUpdated     = "session:slot"
	TypeInventorySaved  = "inventory:saved"
	TypeDeviceStatus    = "device:status"
	TypeDeviceDispensed = "device:dispensed"
)

// MoodSelectionEvent is the payload for session:moods events.
// Sent whenever the selected-mood set changes or a change is rejected.
type MoodSelectionEvent struct {
	Selected []int `json:"selected"` // Selected mood IDs after the change
	Capped   bool  `json:"capped"`   // True when an add was rejected at the cap
}

// AccordsUpdatedEvent is the payload for session:accords events.
type AccordsUpdatedEvent struct {
	Count int `json:"count"` // Number of accords stored
}

// ResultsUpdatedEvent is the payload for session:results events.
type ResultsUpdatedEvent struct {
	Total int `json:"total"` // Total perfumes stored
	Owned int `json:"owned"` // Leading entries backed by the user's inventory
}

// SlotUpdatedEvent is the payload for session:slot events.
type SlotUpdatedEvent struct {
	Slot       int    `json:"slot"`       // Physical slot number
	Ingredient string `json:"ingredient"` // Assigned ingredient, empty when cleared
	Empty      bool   `json:"empty"`
}

// InventorySavedEvent is the payload for inventory:saved events.
type InventorySavedEvent struct {
	Attempted int `json:"attempted"`
	Failed    int `json:"failed"`
}

// DeviceStatusEvent is the payload for device:status events.
type DeviceStatusEvent struct {
	Status    string `json:"status"` // "connected", "disconnected", "dispensing"
	Connected bool   `json:"connected"`
}

// DeviceDispensedEvent is the payload for device:dispensed events.
type DeviceDispensedEvent struct {
	Slot   int     `json:"slot"`
	Amount float64 `json:"amount"`
}
