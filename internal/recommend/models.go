// Package recommend implements the two-stage mood to accord to perfume
// recommendation flow and the client-side refinement applied to its results.
package recommend

// Accord is a weighted scent-family label computed server-side from the
// selected moods. The client treats it as opaque except for the name, which
// feeds the stage-2 perfume query.
type Accord struct {
	AccordID    int     `json:"accordId"`
	Accord      string  `json:"accord"`
	TotalWeight float64 `json:"totalWeight"`
}

// RatingInfo carries a perfume's community rating.
type RatingInfo struct {
	RatingVal   float64 `json:"ratingVal"`
	RatingCount int     `json:"ratingCount"`
}

// NoteTiers groups note names by volatility tier.
type NoteTiers struct {
	Top    []string `json:"top"`
	Middle []string `json:"middle"`
	Base   []string `json:"base"`
}

// DayNightScore holds day/night suitability scores in [0,100].
type DayNightScore struct {
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
}

// SeasonScore holds per-season suitability scores in [0,100].
type SeasonScore struct {
	Spring float64 `json:"spring"`
	Summer float64 `json:"summer"`
	Fall   float64 `json:"fall"`
	Winter float64 `json:"winter"`
}

// SillageScore holds projection vote shares.
type SillageScore struct {
	Intimate float64 `json:"intimate"`
	Moderate float64 `json:"moderate"`
	Strong   float64 `json:"strong"`
	Enormous float64 `json:"enormous"`
}

// LongevityScore holds wear-duration vote shares.
type LongevityScore struct {
	VeryWeak    float64 `json:"veryWeak"`
	Weak        float64 `json:"weak"`
	Moderate    float64 `json:"moderate"`
	LongLasting float64 `json:"longLasting"`
	Eternal     float64 `json:"eternal"`
}

// Perfume is one recommendation result. AccordMatchCount is a raw count of
// matching accords out of the queried accord set, not a percentage; the
// displayed percentage is derived client-side (see MatchPercent).
type Perfume struct {
	ID               int            `json:"id"`
	PerfumeName      string         `json:"perfumeName"`
	BrandName        string         `json:"brandName"`
	Year             int            `json:"year"`
	Country          string         `json:"country"`
	Gender           string         `json:"gender"`
	RatingInfo       RatingInfo     `json:"ratingInfo"`
	AccordMatchCount int            `json:"accordMatchCount"`
	Notes            NoteTiers      `json:"notes"`
	KoreanNotes      NoteTiers      `json:"koreanNotes,omitempty"`
	DayNight         DayNightScore  `json:"dayNight"`
	Season           SeasonScore    `json:"season"`
	Sillage          SillageScore   `json:"sillage"`
	Longevity        LongevityScore `json:"longevity"`
}

// PerfumeSet is the stage-2 response partition. Match holds perfumes whose
// notes intersect the user's owned-ingredient inventory; NoMatch holds
// perfumes recommended on accord relevance alone.
type PerfumeSet struct {
	Match   []Perfume `json:"Match"`
	NoMatch []Perfume `json:"NoMatch"`
}

// Recommendation is the combined outcome of a full two-stage flow.
type Recommendation struct {
	// Accords is the stage-1 result.
	Accords []Accord

	// Perfumes is Match followed by NoMatch, each preserving the
	// server-provided sub-order.
	Perfumes []Perfume

	// Owned is the number of Match entries, i.e. how many leading entries
	// of Perfumes are backed by the user's inventory.
	Owned int
}
