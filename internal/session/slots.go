package session

import (
	"errors"
	"fmt"
	"sync"
)

// SlotLayout lists the physical slot numbers of the manufacturing device.
// Positions 3 and 9 do not exist in the hardware layout.
var SlotLayout = []int{1, 2, 4, 5, 6, 7, 8, 10, 11, 12}

// DefaultSlotCapacity is the fill amount (ml) of a freshly loaded slot.
const DefaultSlotCapacity = 10.0

var (
	// ErrUnknownSlot means the slot number is not part of the layout.
	ErrUnknownSlot = errors.New("unknown slot")

	// ErrSlotEmpty means the slot has no ingredient loaded.
	ErrSlotEmpty = errors.New("slot is empty")

	// ErrInsufficientAmount means the slot holds less than requested.
	ErrInsufficientAmount = errors.New("insufficient amount in slot")
)

// Slot is one ingredient-holding position of the device.
type Slot struct {
	ID        int     `json:"id"`        // Ordinal position (1-based)
	Name      string  `json:"name"`      // Loaded ingredient, empty when unloaded
	Slot      int     `json:"slot"`      // Physical slot number
	Amount    float64 `json:"amount"`    // Remaining amount (ml)
	MaxAmount float64 `json:"maxAmount"` // Fill amount when loaded
	Color     string  `json:"color"`     // Display color for the slot
	IsEmpty   bool    `json:"isEmpty"`
}

// SlotBank is the fixed set of device slots for one session. Safe for
// concurrent use.
//
// The same ingredient may be loaded into two slots at once; the hardware
// team has not confirmed whether duplicate stock is intentional, so no
// uniqueness check is enforced here.
type SlotBank struct {
	mu        sync.RWMutex
	slots     []Slot
	maxAmount float64
}

// NewSlotBank creates a bank of empty slots over the physical layout.
func NewSlotBank(maxAmount float64) *SlotBank {
	b := &SlotBank{maxAmount: maxAmount}
	b.slots = emptySlots(maxAmount)
	return b
}

func emptySlots(maxAmount float64) []Slot {
	slots := make([]Slot, len(SlotLayout))
	for i, number := range SlotLayout {
		slots[i] = Slot{
			ID:        i + 1,
			Slot:      number,
			MaxAmount: maxAmount,
			IsEmpty:   true,
		}
	}
	return slots
}

// Len returns the slot count.
func (b *SlotBank) Len() int {
	return len(SlotLayout)
}

func (b *SlotBank) indexOf(slotNumber int) (int, error) {
	for i, number := range SlotLayout {
		if number == slotNumber {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownSlot, slotNumber)
}

// Assign loads an ingredient into a slot, filling it to capacity.
func (b *SlotBank) Assign(slotNumber int, name, color string) error {
	i, err := b.indexOf(slotNumber)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.slots[i].Name = name
	b.slots[i].Color = color
	b.slots[i].Amount = b.slots[i].MaxAmount
	b.slots[i].IsEmpty = false
	return nil
}

// Clear unloads a slot, resetting it to empty.
func (b *SlotBank) Clear(slotNumber int) error {
	i, err := b.indexOf(slotNumber)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.slots[i].Name = ""
	b.slots[i].Color = ""
	b.slots[i].Amount = 0
	b.slots[i].IsEmpty = true
	return nil
}

// Draw removes amount from a slot, returning the remaining amount.
func (b *SlotBank) Draw(slotNumber int, amount float64) (float64, error) {
	i, err := b.indexOf(slotNumber)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	slot := &b.slots[i]
	if slot.IsEmpty {
		return 0, fmt.Errorf("%w: %d", ErrSlotEmpty, slotNumber)
	}
	if slot.Amount < amount {
		return slot.Amount, fmt.Errorf("%w: %d has %.1f, need %.1f", ErrInsufficientAmount, slotNumber, slot.Amount, amount)
	}
	slot.Amount -= amount
	return slot.Amount, nil
}

// Get returns a copy of one slot.
func (b *SlotBank) Get(slotNumber int) (Slot, error) {
	i, err := b.indexOf(slotNumber)
	if err != nil {
		return Slot{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.slots[i], nil
}

// Slots returns a copy of all slots in layout order.
func (b *SlotBank) Slots() []Slot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Slot(nil), b.slots...)
}

// Loaded returns the names of all loaded ingredients in layout order.
func (b *SlotBank) Loaded() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var names []string
	for _, slot := range b.slots {
		if !slot.IsEmpty {
			names = append(names, slot.Name)
		}
	}
	return names
}

// Reset empties every slot.
func (b *SlotBank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slots = emptySlots(b.maxAmount)
}
