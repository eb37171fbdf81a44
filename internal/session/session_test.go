package session

import (
	"testing"
	"time"

	"github.com/the-sleepless-coder/moodrop-companion/internal/catalog"
	"github.com/the-sleepless-coder/moodrop-companion/internal/events"
	"github.com/the-sleepless-coder/moodrop-companion/internal/recommend"
)

func mood(id int, name string) catalog.Mood {
	return catalog.Mood{ID: id, Name: name}
}

func TestToggleMood_Cap(t *testing.T) {
	s := New(nil)

	for i, m := range []catalog.Mood{mood(1, "calm"), mood(2, "quietness"), mood(3, "vitality")} {
		if !s.ToggleMood(m) {
			t.Fatalf("Toggle %d rejected below the cap", i)
		}
	}

	// 4th add while 3 are selected is a silent no-op.
	if s.ToggleMood(mood(4, "warm")) {
		t.Error("4th mood should be rejected")
	}
	if ids := s.SelectedMoodIDs(); len(ids) != 3 {
		t.Errorf("Selection changed by rejected add: %v", ids)
	}
}

func TestToggleMood_RemovesAtCap(t *testing.T) {
	s := New(nil)
	s.ToggleMood(mood(1, "calm"))
	s.ToggleMood(mood(2, "quietness"))
	s.ToggleMood(mood(3, "vitality"))

	// Toggling a selected mood removes it even at the cap.
	if !s.ToggleMood(mood(2, "quietness")) {
		t.Fatal("Toggle of selected mood should remove it")
	}
	ids := s.SelectedMoodIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("Unexpected selection after removal: %v", ids)
	}

	// Room again for one more.
	if !s.ToggleMood(mood(4, "warm")) {
		t.Error("Add should succeed after removal")
	}
}

func TestToggleMood_Events(t *testing.T) {
	d := events.NewDispatcher()
	var last events.MoodSelectionEvent
	d.Register(&events.FuncObserver{Types: []string{events.TypeMoodSelection}, Fn: func(e events.Event) error {
		last = e.TypedData.(events.MoodSelectionEvent)
		return nil
	}})

	s := New(d)
	s.ToggleMood(mood(1, "calm"))
	if len(last.Selected) != 1 || last.Capped {
		t.Errorf("Unexpected event after add: %+v", last)
	}

	s.ToggleMood(mood(2, "a"))
	s.ToggleMood(mood(3, "b"))
	s.ToggleMood(mood(4, "c"))
	if !last.Capped {
		t.Error("Rejected add should dispatch a capped event")
	}
	if len(last.Selected) != 3 {
		t.Errorf("Capped event should carry the unchanged selection: %+v", last)
	}
}

// Observers may read session state from inside their event handler; the
// session must not hold its lock while dispatching.
func TestToggleMood_ObserverReadsSession(t *testing.T) {
	d := events.NewDispatcher()
	s := New(d)

	var seen []int
	d.Register(&events.FuncObserver{Types: []string{events.TypeMoodSelection}, Fn: func(e events.Event) error {
		seen = s.SelectedMoodIDs()
		return nil
	}})

	done := make(chan struct{})
	go func() {
		s.ToggleMood(mood(1, "calm"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ToggleMood deadlocked with a session-reading observer")
	}
	if len(seen) != 1 || seen[0] != 1 {
		t.Errorf("Observer saw stale selection: %v", seen)
	}
}

func TestSetRecommendation(t *testing.T) {
	s := New(nil)
	s.SetRecommendation(recommend.Recommendation{
		Accords:  []recommend.Accord{{AccordID: 1, Accord: "citrus"}},
		Perfumes: []recommend.Perfume{{ID: 10}, {ID: 20}},
		Owned:    1,
	})

	if len(s.Accords()) != 1 || len(s.Perfumes()) != 2 || s.Owned() != 1 {
		t.Errorf("Recommendation not stored: accords=%d perfumes=%d owned=%d",
			len(s.Accords()), len(s.Perfumes()), s.Owned())
	}
}

func TestReset(t *testing.T) {
	s := New(nil)
	s.ToggleMood(mood(1, "calm"))
	s.SetAccords([]recommend.Accord{{AccordID: 1}})
	s.AssignSlot(4, "Rose", "#f0a")

	s.Reset()

	if len(s.SelectedMoods()) != 0 || len(s.Accords()) != 0 {
		t.Error("Reset left session state behind")
	}
	slot, _ := s.Slots().Get(4)
	if !slot.IsEmpty {
		t.Error("Reset left slots loaded")
	}
}

func TestSlotBank_Layout(t *testing.T) {
	b := NewSlotBank(DefaultSlotCapacity)
	slots := b.Slots()

	if len(slots) != 10 {
		t.Fatalf("Expected 10 slots, got %d", len(slots))
	}

	numbers := make(map[int]bool)
	for _, slot := range slots {
		numbers[slot.Slot] = true
		if !slot.IsEmpty || slot.Amount != 0 {
			t.Errorf("Slot %d should start empty: %+v", slot.Slot, slot)
		}
	}
	// Physical positions 3 and 9 are absent.
	if numbers[3] || numbers[9] {
		t.Error("Slots 3 and 9 must not exist")
	}
	for _, want := range []int{1, 2, 4, 5, 6, 7, 8, 10, 11, 12} {
		if !numbers[want] {
			t.Errorf("Missing slot %d", want)
		}
	}
}

func TestSlotBank_AssignAndClear(t *testing.T) {
	b := NewSlotBank(DefaultSlotCapacity)

	if err := b.Assign(4, "Rose", "#f0a"); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	slot, _ := b.Get(4)
	if slot.IsEmpty || slot.Amount != slot.MaxAmount || slot.Name != "Rose" {
		t.Errorf("Assign left slot in wrong state: %+v", slot)
	}

	if err := b.Clear(4); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	slot, _ = b.Get(4)
	if !slot.IsEmpty || slot.Amount != 0 || slot.Name != "" {
		t.Errorf("Clear left slot in wrong state: %+v", slot)
	}
}

func TestSlotBank_UnknownSlot(t *testing.T) {
	b := NewSlotBank(DefaultSlotCapacity)
	if err := b.Assign(3, "Rose", ""); err == nil {
		t.Error("Assign to absent slot 3 should fail")
	}
	if err := b.Clear(99); err == nil {
		t.Error("Clear of slot 99 should fail")
	}
}

func TestSlotBank_DuplicateIngredientAllowed(t *testing.T) {
	// Duplicate stock across slots is currently permitted; see package docs.
	b := NewSlotBank(DefaultSlotCapacity)
	b.Assign(1, "Rose", "")
	if err := b.Assign(2, "Rose", ""); err != nil {
		t.Errorf("Duplicate ingredient should be allowed: %v", err)
	}
	if loaded := b.Loaded(); len(loaded) != 2 {
		t.Errorf("Expected 2 loaded slots, got %v", loaded)
	}
}

func TestSlotBank_Draw(t *testing.T) {
	b := NewSlotBank(DefaultSlotCapacity)
	b.Assign(1, "Rose", "")

	remaining, err := b.Draw(1, 4)
	if err != nil || remaining != 6 {
		t.Errorf("Draw: remaining=%v err=%v", remaining, err)
	}

	if _, err := b.Draw(1, 100); err == nil {
		t.Error("Overdraw should fail")
	}
	if _, err := b.Draw(2, 1); err == nil {
		t.Error("Draw from empty slot should fail")
	}
}
