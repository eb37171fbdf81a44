package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"sync"

	"github.com/the-sleepless-coder/moodrop-companion/internal/api"
)

// DeterminedNote is one ingredient entry from the note catalog. Weight is
// the ingredient's contribution within a recipe; across a full recipe the
// weights sum to 100 by convention.
type DeterminedNote struct {
	Name       string  `json:"name"`
	KoreanName string  `json:"koreanName,omitempty"`
	Type       string  `json:"type"`
	Weight     float64 `json:"weight"`
}

// Ack is the acknowledgement payload for note inventory mutations.
type Ack struct {
	Message string `json:"message,omitempty"`
}

// DedupeNotes removes duplicate note names. The server repeats a note once
// per volatility tier it appears in; the first occurrence wins.
func DedupeNotes(notes []DeterminedNote) []DeterminedNote {
	seen := make(map[string]bool, len(notes))
	out := make([]DeterminedNote, 0, len(notes))
	for _, note := range notes {
		if seen[note.Name] {
			continue
		}
		seen[note.Name] = true
		out = append(out, note)
	}
	return out
}

const resourceDeterminedNotes = "determinedNotes"

// NoteService fetches the ingredient catalog and maintains the user's
// owned-note inventory.
type NoteService struct {
	client *api.Client
	cache  Cache
}

// NewNoteService creates a note service. cache may be nil.
func NewNoteService(client *api.Client, cache Cache) *NoteService {
	return &NoteService{client: client, cache: cache}
}

// AllDeterminedNotes fetches the full catalog, deduplicated by name.
func (s *NoteService) AllDeterminedNotes(ctx context.Context) api.Result[[]DeterminedNote] {
	if s.cache != nil {
		if payload, ok := s.cache.Get(resourceDeterminedNotes); ok {
			var notes []DeterminedNote
			if err := json.Unmarshal(payload, &notes); err == nil {
				return api.Ok(DedupeNotes(notes))
			}
			log.Printf("[NoteService] Discarding unreadable cache entry: %s", resourceDeterminedNotes)
		}
	}

	result := api.Get[[]DeterminedNote](ctx, s.client, "/perfume/getAllDeterminedNotes", nil)
	if result.Success && s.cache != nil {
		if payload, err := json.Marshal(result.Data); err == nil {
			s.cache.Put(resourceDeterminedNotes, payload)
		}
	}
	return api.Narrow(result, DedupeNotes)
}

// UserNotes lists the user's owned-note inventory.
func (s *NoteService) UserNotes(ctx context.Context, userID string) api.Result[[]DeterminedNote] {
	return api.Get[[]DeterminedNote](ctx, s.client, "/perfume/note/"+url.PathEscape(userID), nil)
}

// AddUserNote adds one note to the user's inventory.
func (s *NoteService) AddUserNote(ctx context.Context, userID, note string) api.Result[Ack] {
	body := map[string]string{"userId": userID, "note": note}
	return api.Post[Ack](ctx, s.client, "/perfume/note", body, nil)
}

// RemoveUserNote removes one note from the user's inventory.
func (s *NoteService) RemoveUserNote(ctx context.Context, userID, note string) api.Result[Ack] {
	query := url.Values{}
	query.Set("userId", userID)
	query.Set("noteName", note)
	return api.Del[Ack](ctx, s.client, "/perfume/note", &api.RequestOptions{Query: query})
}

// InventoryChange is a batch of inventory mutations to apply together.
type InventoryChange struct {
	Add    []string
	Remove []string
}

// InventoryResult is the aggregate outcome of a batch save. Partial failure
// is reported as a count; individual operations never abort the batch.
type InventoryResult struct {
	Attempted int
	Failed    int
}

// SaveInventory applies all adds and removes concurrently and waits for
// every request to settle. Each failure is counted independently; the batch
// never short-circuits.
func (s *NoteService) SaveInventory(ctx context.Context, userID string, change InventoryChange) InventoryResult {
	total := len(change.Add) + len(change.Remove)
	if total == 0 {
		return InventoryResult{}
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	record := func(ok bool) {
		mu.Lock()
		if !ok {
			failed++
		}
		mu.Unlock()
	}

	for _, note := range change.Add {
		wg.Add(1)
		go func(note string) {
			defer wg.Done()
			record(s.AddUserNote(ctx, userID, note).Success)
		}(note)
	}
	for _, note := range change.Remove {
		wg.Add(1)
		go func(note string) {
			defer wg.Done()
			record(s.RemoveUserNote(ctx, userID, note).Success)
		}(note)
	}

	wg.Wait()
	if failed > 0 {
		log.Printf("[NoteService] Inventory save finished with %d/%d failures", failed, total)
	}
	return InventoryResult{Attempted: total, Failed: failed}
}
