// Package session holds the in-memory state for one user session: selected
// moods, recommendation results and the device slot bank. Nothing here is
// persisted; a Session is constructed per use and passed explicitly to the
// components that need it.
package session

import (
	"sync"

	"github.com/the-sleepless-coder/moodrop-companion/internal/catalog"
	"github.com/the-sleepless-coder/moodrop-companion/internal/events"
	"github.com/the-sleepless-coder/moodrop-companion/internal/recommend"
)

// MaxSelectedMoods caps the number of concurrently selected moods.
const MaxSelectedMoods = 3

// Session is the state container for one user session. Safe for concurrent
// use. Mutations dispatch typed events when a dispatcher is attached.
type Session struct {
	mu         sync.RWMutex
	dispatcher *events.Dispatcher

	moods    []catalog.Mood
	accords  []recommend.Accord
	perfumes []recommend.Perfume
	owned    int
	slots    *SlotBank
}

// New creates an empty session. dispatcher may be nil.
func New(dispatcher *events.Dispatcher) *Session {
	return &Session{
		dispatcher: dispatcher,
		slots:      NewSlotBank(DefaultSlotCapacity),
	}
}

// ToggleMood adds or removes a mood from the selection. Adding a 4th mood
// while 3 are selected is a silent no-op; toggling a selected mood removes
// it regardless of set size. Returns whether the selection changed.
func (s *Session) ToggleMood(mood catalog.Mood) bool {
	s.mu.Lock()

	changed := true
	capped := false
	removed := false
	for i, selected := range s.moods {
		if selected.ID == mood.ID {
			s.moods = append(s.moods[:i], s.moods[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		if len(s.moods) >= MaxSelectedMoods {
			changed = false
			capped = true
		} else {
			s.moods = append(s.moods, mood)
		}
	}

	// Snapshot under the lock, dispatch after release so observers may
	// call back into the session.
	ids := s.moodIDsLocked()
	s.mu.Unlock()

	s.notifyMoods(ids, capped)
	return changed
}

func (s *Session) moodIDsLocked() []int {
	ids := make([]int, len(s.moods))
	for i, mood := range s.moods {
		ids[i] = mood.ID
	}
	return ids
}

// notifyMoods dispatches a mood-selection event. Called without mu held.
func (s *Session) notifyMoods(ids []int, capped bool) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Dispatch(events.Event{
		Type:      events.TypeMoodSelection,
		TypedData: events.MoodSelectionEvent{Selected: ids, Capped: capped},
	})
}

// SelectedMoods returns a copy of the current selection.
func (s *Session) SelectedMoods() []catalog.Mood {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.Mood(nil), s.moods...)
}

// SelectedMoodIDs returns the selected mood IDs in selection order.
func (s *Session) SelectedMoodIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moodIDsLocked()
}

// SetAccords stores the stage-1 accord result.
func (s *Session) SetAccords(accords []recommend.Accord) {
	s.mu.Lock()
	s.accords = append([]recommend.Accord(nil), accords...)
	s.mu.Unlock()

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(events.Event{
			Type:      events.TypeAccordsUpdated,
			TypedData: events.AccordsUpdatedEvent{Count: len(accords)},
		})
	}
}

// Accords returns a copy of the stored accords.
func (s *Session) Accords() []recommend.Accord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]recommend.Accord(nil), s.accords...)
}

// SetRecommendation stores a completed two-stage result.
func (s *Session) SetRecommendation(rec recommend.Recommendation) {
	s.mu.Lock()
	s.accords = append([]recommend.Accord(nil), rec.Accords...)
	s.perfumes = append([]recommend.Perfume(nil), rec.Perfumes...)
	s.owned = rec.Owned
	s.mu.Unlock()

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(events.Event{
			Type:      events.TypeResultsUpdated,
			TypedData: events.ResultsUpdatedEvent{Total: len(rec.Perfumes), Owned: rec.Owned},
		})
	}
}

// Perfumes returns a copy of the stored recommendation results.
func (s *Session) Perfumes() []recommend.Perfume {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]recommend.Perfume(nil), s.perfumes...)
}

// Owned returns how many leading results are inventory-backed.
func (s *Session) Owned() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owned
}

// Slots returns the session's device slot bank.
func (s *Session) Slots() *SlotBank {
	return s.slots
}

// AssignSlot assigns an ingredient to a slot and dispatches a slot event.
func (s *Session) AssignSlot(slotNumber int, ingredient, color string) error {
	if err := s.slots.Assign(slotNumber, ingredient, color); err != nil {
		return err
	}
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(events.Event{
			Type:      events.TypeSlotUpdated,
			TypedData: events.SlotUpdatedEvent{Slot: slotNumber, Ingredient: ingredient},
		})
	}
	return nil
}

// ClearSlot empties a slot and dispatches a slot event.
func (s *Session) ClearSlot(slotNumber int) error {
	if err := s.slots.Clear(slotNumber); err != nil {
		return err
	}
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(events.Event{
			Type:      events.TypeSlotUpdated,
			TypedData: events.SlotUpdatedEvent{Slot: slotNumber, Empty: true},
		})
	}
	return nil
}

// Reset clears all session state back to a fresh session.
func (s *Session) Reset() {
	s.mu.Lock()
	s.moods = nil
	s.accords = nil
	s.perfumes = nil
	s.owned = 0
	s.mu.Unlock()
	s.slots.Reset()
}
