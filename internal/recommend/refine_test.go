package recommend

import (
	"reflect"
	"testing"
)

func TestMatchPercent(t *testing.T) {
	tests := []struct {
		name       string
		matchCount int
		total      int
		want       int
	}{
		{"zero matches floors at 20", 0, 10, 20},
		{"full match clamps at 100", 10, 10, 100},
		{"third match rescales high", 3, 9, 97},
		{"two of five clamps from 112", 2, 5, 100},
		{"one of ten", 1, 10, 43},
		{"empty accord set", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchPercent(tt.matchCount, tt.total); got != tt.want {
				t.Errorf("MatchPercent(%d, %d) = %d, want %d", tt.matchCount, tt.total, got, tt.want)
			}
		})
	}
}

func TestFitOf(t *testing.T) {
	tests := []struct {
		percent int
		want    Fit
		label   string
		color   string
	}{
		{100, FitHigh, "high fit", "green"},
		{85, FitHigh, "high fit", "green"},
		{84, FitModerate, "moderate fit", "amber"},
		{65, FitModerate, "moderate fit", "amber"},
		{64, FitLow, "low fit", "gray"},
		{0, FitLow, "low fit", "gray"},
	}

	for _, tt := range tests {
		fit := FitOf(tt.percent)
		if fit != tt.want {
			t.Errorf("FitOf(%d) = %v, want %v", tt.percent, fit, tt.want)
		}
		if fit.Label() != tt.label || fit.Color() != tt.color {
			t.Errorf("FitOf(%d): label=%q color=%q", tt.percent, fit.Label(), fit.Color())
		}
	}
}

func ratedPerfume(id int, rating float64, matches, year int) Perfume {
	return Perfume{
		ID:               id,
		RatingInfo:       RatingInfo{RatingVal: rating},
		AccordMatchCount: matches,
		Year:             year,
	}
}

func ids(perfumes []Perfume) []int {
	out := make([]int, len(perfumes))
	for i, p := range perfumes {
		out[i] = p.ID
	}
	return out
}

func TestSortByRating(t *testing.T) {
	perfumes := []Perfume{
		ratedPerfume(1, 3.5, 0, 0),
		ratedPerfume(2, 4.8, 0, 0),
		ratedPerfume(3, 4.1, 0, 0),
	}
	SortByRating(perfumes)
	if got := ids(perfumes); !reflect.DeepEqual(got, []int{2, 3, 1}) {
		t.Errorf("Unexpected rating order: %v", got)
	}
}

func TestSortByRating_StableIdempotent(t *testing.T) {
	// Equal ratings must keep their relative order across repeated sorts.
	perfumes := []Perfume{
		ratedPerfume(1, 4.0, 0, 0),
		ratedPerfume(2, 4.0, 0, 0),
		ratedPerfume(3, 4.5, 0, 0),
		ratedPerfume(4, 4.0, 0, 0),
	}
	SortByRating(perfumes)
	first := ids(perfumes)
	SortByRating(perfumes)
	if got := ids(perfumes); !reflect.DeepEqual(got, first) {
		t.Errorf("Re-sorting changed order: %v != %v", got, first)
	}
	if !reflect.DeepEqual(first, []int{3, 1, 2, 4}) {
		t.Errorf("Equal ratings reordered: %v", first)
	}
}

func TestSortByAccordMatch(t *testing.T) {
	perfumes := []Perfume{
		ratedPerfume(1, 0, 2, 0),
		ratedPerfume(2, 0, 5, 0),
		ratedPerfume(3, 0, 3, 0),
	}
	SortByAccordMatch(perfumes)
	if got := ids(perfumes); !reflect.DeepEqual(got, []int{2, 3, 1}) {
		t.Errorf("Unexpected match order: %v", got)
	}
}

func TestSortByYear(t *testing.T) {
	perfumes := []Perfume{
		ratedPerfume(1, 0, 0, 2003),
		ratedPerfume(2, 0, 0, 2021),
		ratedPerfume(3, 0, 0, 2015),
	}
	SortByYear(perfumes)
	if got := ids(perfumes); !reflect.DeepEqual(got, []int{2, 3, 1}) {
		t.Errorf("Unexpected year order: %v", got)
	}
}

func TestDayNightOf(t *testing.T) {
	tests := []struct {
		name       string
		day, night float64
		want       DayNightClass
	}{
		{"clear day", 80, 40, DayNightDay},
		{"clear night", 30, 70, DayNightNight},
		{"margin too small", 60, 50, DayNightNone},
		{"exactly 20 apart is unclassified", 70, 50, DayNightNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Perfume{DayNight: DayNightScore{Day: tt.day, Night: tt.night}}
			if got := DayNightOf(p); got != tt.want {
				t.Errorf("DayNightOf(day=%v, night=%v) = %v, want %v", tt.day, tt.night, got, tt.want)
			}
		})
	}
}

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		name   string
		scores SeasonScore
		want   Season
	}{
		{"dominant winter", SeasonScore{Spring: 20, Summer: 10, Fall: 40, Winter: 90}, SeasonWinter},
		{"dominant summer", SeasonScore{Spring: 50, Summer: 75, Fall: 30, Winter: 10}, SeasonSummer},
		{"below threshold", SeasonScore{Spring: 65, Summer: 60, Fall: 50, Winter: 40}, SeasonNone},
		{"threshold is inclusive", SeasonScore{Spring: 70, Summer: 10, Fall: 10, Winter: 10}, SeasonSpring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeasonOf(Perfume{Season: tt.scores}); got != tt.want {
				t.Errorf("SeasonOf(%+v) = %q, want %q", tt.scores, got, tt.want)
			}
		})
	}
}

func TestApplyFilter(t *testing.T) {
	dayWinter := Perfume{ID: 1, DayNight: DayNightScore{Day: 90, Night: 10}, Season: SeasonScore{Winter: 80}}
	nightWinter := Perfume{ID: 2, DayNight: DayNightScore{Day: 10, Night: 90}, Season: SeasonScore{Winter: 85}}
	daySpring := Perfume{ID: 3, DayNight: DayNightScore{Day: 90, Night: 10}, Season: SeasonScore{Spring: 75}}
	unclassified := Perfume{ID: 4, DayNight: DayNightScore{Day: 50, Night: 50}}

	perfumes := []Perfume{dayWinter, nightWinter, daySpring, unclassified}

	day := ApplyFilter(perfumes, Filter{DayNight: DayNightDay})
	if got := ids(day); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Day filter: %v", got)
	}

	// Unclassified perfumes are excluded from both buckets.
	night := ApplyFilter(perfumes, Filter{DayNight: DayNightNight})
	if got := ids(night); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("Night filter: %v", got)
	}

	combined := ApplyFilter(perfumes, Filter{DayNight: DayNightDay, Season: SeasonWinter})
	if got := ids(combined); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Combined filter: %v", got)
	}

	all := ApplyFilter(perfumes, Filter{})
	if len(all) != 4 {
		t.Errorf("Inactive filter should keep everything, got %d", len(all))
	}
}
