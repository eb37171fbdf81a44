package recommend

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/the-sleepless-coder/moodrop-companion/internal/api"
)

// Service runs recommendation queries against the perfume service.
type Service struct {
	client *api.Client
}

// NewService creates a recommendation service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

type accordList struct {
	Accords []Accord `json:"accords"`
}

// AccordsForMoods posts the selected mood IDs and returns the weighted
// accords the server derives from them.
func (s *Service) AccordsForMoods(ctx context.Context, moodIDs []int) api.Result[[]Accord] {
	body := map[string][]int{"moodIds": moodIDs}
	result := api.Post[accordList](ctx, s.client, "/perfume/accord", body, nil)
	return api.Narrow(result, func(l accordList) []Accord { return l.Accords })
}

// PerfumesByAccords posts accord names and returns the Match/NoMatch
// partition for the given user and page.
func (s *Service) PerfumesByAccords(ctx context.Context, userID string, accords []string, page int) api.Result[PerfumeSet] {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	body := map[string][]string{"accords": accords}
	path := "/perfume/accord/" + url.PathEscape(userID)
	return api.Post[PerfumeSet](ctx, s.client, path, body, &api.RequestOptions{Query: query})
}

// Perfume fetches the detail record for a single perfume.
func (s *Service) Perfume(ctx context.Context, id int) api.Result[Perfume] {
	return api.Get[Perfume](ctx, s.client, fmt.Sprintf("/api/perfume/%d", id), nil)
}

// Recommend runs the full two-stage flow. The stages are strictly
// sequential: stage 2's request body is built from stage 1's response, and a
// stage-1 failure aborts the flow without issuing stage 2.
func (s *Service) Recommend(ctx context.Context, userID string, moodIDs []int, page int) api.Result[Recommendation] {
	accords := s.AccordsForMoods(ctx, moodIDs)
	if !accords.Success {
		return api.Fail[Recommendation](accords.Message)
	}

	names := make([]string, len(accords.Data))
	for i, accord := range accords.Data {
		names[i] = accord.Accord
	}

	perfumes := s.PerfumesByAccords(ctx, userID, names, page)
	if !perfumes.Success {
		return api.Fail[Recommendation](perfumes.Message)
	}

	set := perfumes.Data
	combined := make([]Perfume, 0, len(set.Match)+len(set.NoMatch))
	combined = append(combined, set.Match...)
	combined = append(combined, set.NoMatch...)

	log.Printf("[Recommend] %d accords -> %d perfumes (%d inventory matches)",
		len(accords.Data), len(combined), len(set.Match))

	return api.Ok(Recommendation{
		Accords:  accords.Data,
		Perfumes: combined,
		Owned:    len(set.Match),
	})
}
