package recommend

import (
	"math"
	"sort"
)

// MatchPercent derives the displayed match percentage from the raw accord
// match count. The rescaling is deliberately non-linear (a raw 33% match
// displays as ~95%); the formula is a product decision and is part of the
// display contract:
//
//	raw = (matchCount / totalAccords) * 100
//	displayed = min(round(20 + raw*2.3), 100)
func MatchPercent(matchCount, totalAccords int) int {
	if totalAccords <= 0 {
		return 0
	}
	raw := float64(matchCount) / float64(totalAccords) * 100
	adjusted := int(math.Round(20 + raw*2.3))
	if adjusted > 100 {
		adjusted = 100
	}
	return adjusted
}

// Fit is the display band for a match percentage.
type Fit int

const (
	FitLow Fit = iota
	FitModerate
	FitHigh
)

// FitOf bands a displayed match percentage.
func FitOf(percent int) Fit {
	switch {
	case percent >= 85:
		return FitHigh
	case percent >= 65:
		return FitModerate
	default:
		return FitLow
	}
}

// Label returns the user-facing band name.
func (f Fit) Label() string {
	switch f {
	case FitHigh:
		return "high fit"
	case FitModerate:
		return "moderate fit"
	default:
		return "low fit"
	}
}

// Color returns the band accent color.
func (f Fit) Color() string {
	switch f {
	case FitHigh:
		return "green"
	case FitModerate:
		return "amber"
	default:
		return "gray"
	}
}

// SortByRating stable-sorts perfumes by rating value, descending.
func SortByRating(perfumes []Perfume) {
	sort.SliceStable(perfumes, func(i, j int) bool {
		return perfumes[i].RatingInfo.RatingVal > perfumes[j].RatingInfo.RatingVal
	})
}

// SortByAccordMatch stable-sorts perfumes by raw accord match count,
// descending. The raw count is used, not the adjusted percentage.
func SortByAccordMatch(perfumes []Perfume) {
	sort.SliceStable(perfumes, func(i, j int) bool {
		return perfumes[i].AccordMatchCount > perfumes[j].AccordMatchCount
	})
}

// SortByYear stable-sorts perfumes by release year, descending.
func SortByYear(perfumes []Perfume) {
	sort.SliceStable(perfumes, func(i, j int) bool {
		return perfumes[i].Year > perfumes[j].Year
	})
}

// DayNightClass is a perfume's time-of-day classification.
type DayNightClass int

const (
	// DayNightNone means neither score dominates; the perfume is excluded
	// from both day and night filter buckets.
	DayNightNone DayNightClass = iota
	DayNightDay
	DayNightNight
)

// DayNightOf classifies a perfume as day or night wear. A side must beat
// the other by more than 20 points to classify.
func DayNightOf(p Perfume) DayNightClass {
	switch {
	case p.DayNight.Day > p.DayNight.Night+20:
		return DayNightDay
	case p.DayNight.Night > p.DayNight.Day+20:
		return DayNightNight
	default:
		return DayNightNone
	}
}

// Season is a perfume's season classification.
type Season string

const (
	SeasonNone   Season = ""
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// seasonThreshold is the minimum winning score for a season to surface.
const seasonThreshold = 70

// SeasonOf returns the season with the highest score, or SeasonNone when
// the winning score is below the surfacing threshold. Earlier seasons win
// ties in spring-to-winter order.
func SeasonOf(p Perfume) Season {
	best := SeasonSpring
	bestScore := p.Season.Spring
	for _, candidate := range []struct {
		season Season
		score  float64
	}{
		{SeasonSummer, p.Season.Summer},
		{SeasonFall, p.Season.Fall},
		{SeasonWinter, p.Season.Winter},
	} {
		if candidate.score > bestScore {
			best = candidate.season
			bestScore = candidate.score
		}
	}
	if bestScore < seasonThreshold {
		return SeasonNone
	}
	return best
}

// Filter narrows a perfume list. Zero-value fields are inactive; active
// conditions are AND-combined.
type Filter struct {
	DayNight DayNightClass
	Season   Season
}

// ApplyFilter returns the perfumes surviving f, preserving order.
func ApplyFilter(perfumes []Perfume, f Filter) []Perfume {
	var out []Perfume
	for _, p := range perfumes {
		if f.DayNight != DayNightNone && DayNightOf(p) != f.DayNight {
			continue
		}
		if f.Season != SeasonNone && SeasonOf(p) != f.Season {
			continue
		}
		out = append(out, p)
	}
	return out
}
