// Package device simulates the manufacturing device connection. All
// Bluetooth transport is mocked; the simulator operates directly on the
// session's slot bank and reports status the way the real device would.
package device

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/the-sleepless-coder/moodrop-companion/internal/events"
	"github.com/the-sleepless-coder/moodrop-companion/internal/session"
)

// Connection latency of the simulated pairing handshake.
const defaultConnectLatency = 300 * time.Millisecond

// Per-ml dispense time of the simulated pump.
const dispenseRate = 50 * time.Millisecond

var (
	// ErrNotConnected means an operation requires a connected device.
	ErrNotConnected = errors.New("device not connected")

	// ErrAlreadyConnected means Connect was called twice.
	ErrAlreadyConnected = errors.New("device already connected")
)

// Status describes the simulated device.
type Status struct {
	Status          string    `json:"status"` // "connected", "disconnected", "dispensing"
	Connected       bool      `json:"connected"`
	FirmwareVersion string    `json:"firmwareVersion"`
	SlotCount       int       `json:"slotCount"`
	LastUpdate      time.Time `json:"lastUpdate"`
}

// Simulator is a mock manufacturing device bound to a session slot bank.
// Safe for concurrent use.
type Simulator struct {
	mu         sync.Mutex
	connected  bool
	dispensing bool
	lastUpdate time.Time

	bank       *session.SlotBank
	dispatcher *events.Dispatcher
	latency    time.Duration
}

// NewSimulator creates a disconnected simulator. dispatcher may be nil.
func NewSimulator(bank *session.SlotBank, dispatcher *events.Dispatcher) *Simulator {
	return &Simulator{
		bank:       bank,
		dispatcher: dispatcher,
		latency:    defaultConnectLatency,
	}
}

// SetLatency overrides the simulated handshake latency. Used in tests.
func (s *Simulator) SetLatency(d time.Duration) {
	s.mu.Lock()
	s.latency = d
	s.mu.Unlock()
}

// Connect performs the simulated pairing handshake.
func (s *Simulator) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.connected {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}
	latency := s.latency
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(latency):
	}

	s.mu.Lock()
	s.connected = true
	s.lastUpdate = time.Now()
	s.mu.Unlock()

	log.Printf("[Device] Connected (simulated, %d slots)", s.bank.Len())
	s.notifyStatus("connected", true)
	return nil
}

// Disconnect drops the simulated connection.
func (s *Simulator) Disconnect() {
	s.mu.Lock()
	wasConnected := s.connected
	s.connected = false
	s.lastUpdate = time.Now()
	s.mu.Unlock()

	if wasConnected {
		log.Printf("[Device] Disconnected")
		s.notifyStatus("disconnected", false)
	}
}

// Status returns the current device status.
func (s *Simulator) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := "disconnected"
	if s.connected {
		state = "connected"
	}
	if s.dispensing {
		state = "dispensing"
	}
	return Status{
		Status:          state,
		Connected:       s.connected,
		FirmwareVersion: "sim-1.0",
		SlotCount:       s.bank.Len(),
		LastUpdate:      s.lastUpdate,
	}
}

// Dispense draws amount from a slot, simulating pump time proportional to
// the amount. Requires a connected device.
func (s *Simulator) Dispense(ctx context.Context, slotNumber int, amount float64) error {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return ErrNotConnected
	}
	s.dispensing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.dispensing = false
		s.lastUpdate = time.Now()
		s.mu.Unlock()
	}()

	// Check the slot before spending pump time.
	if _, err := s.bank.Get(slotNumber); err != nil {
		return err
	}

	pumpTime := time.Duration(amount * float64(dispenseRate))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(pumpTime):
	}

	remaining, err := s.bank.Draw(slotNumber, amount)
	if err != nil {
		return err
	}

	log.Printf("[Device] Dispensed %.1f from slot %d (%.1f remaining)", amount, slotNumber, remaining)
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(events.Event{
			Type:      events.TypeDeviceDispensed,
			TypedData: events.DeviceDispensedEvent{Slot: slotNumber, Amount: amount},
		})
	}
	return nil
}

// DispenseRecipe dispenses a weight-proportional amount from each loaded
// slot whose ingredient appears in the composition. Amounts are scaled so
// a weight of 100 maps to the slot capacity.
func (s *Simulator) DispenseRecipe(ctx context.Context, weights map[string]int) error {
	for _, slot := range s.bank.Slots() {
		if slot.IsEmpty {
			continue
		}
		weight, ok := weights[slot.Name]
		if !ok || weight == 0 {
			continue
		}
		amount := slot.MaxAmount * float64(weight) / 100
		if err := s.Dispense(ctx, slot.Slot, amount); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) notifyStatus(status string, connected bool) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Dispatch(events.Event{
		Type:      events.TypeDeviceStatus,
		TypedData: events.DeviceStatusEvent{Status: status, Connected: connected},
	})
}
