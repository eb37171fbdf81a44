package catalog

import "strings"

// Family is a client-side scent-family bucket for catalog browsing. The
// server does not classify notes; this taxonomy exists purely for the
// ingredient picker.
type Family string

const (
	FamilyCitrus         Family = "citrus"
	FamilyFloral         Family = "floral"
	FamilyWoody          Family = "woody"
	FamilyAmber          Family = "amber"
	FamilyOriental       Family = "oriental"
	FamilySpicy          Family = "spicy"
	FamilyFruity         Family = "fruity"
	FamilyGreen          Family = "green"
	FamilyGourmand       Family = "gourmand"
	FamilyOceanic        Family = "oceanic"
	FamilyPowdery        Family = "powdery"
	FamilyChypre         Family = "chypre"
	FamilyFougere        Family = "fougere"
	FamilyAldehyde       Family = "aldehyde"
	FamilyTobaccoLeather Family = "tobacco/leather"
	FamilyBouquet        Family = "bouquet"
	FamilyWarm           Family = "warm"
	FamilyOther          Family = "other"
)

// noteFamilies maps lowercase note names onto families. Unmapped names fall
// into FamilyOther.
var noteFamilies = map[string]Family{
	"bergamot":       FamilyCitrus,
	"lemon":          FamilyCitrus,
	"lime":           FamilyCitrus,
	"grapefruit":     FamilyCitrus,
	"mandarin":       FamilyCitrus,
	"orange":         FamilyCitrus,
	"bitter orange":  FamilyCitrus,
	"yuzu":           FamilyCitrus,
	"petitgrain":     FamilyCitrus,
	"neroli":         FamilyCitrus,
	"rose":           FamilyFloral,
	"jasmine":        FamilyFloral,
	"peony":          FamilyFloral,
	"lily":           FamilyFloral,
	"lily of the valley": FamilyFloral,
	"freesia":        FamilyFloral,
	"tuberose":       FamilyFloral,
	"ylang ylang":    FamilyFloral,
	"magnolia":       FamilyFloral,
	"gardenia":       FamilyFloral,
	"orange blossom": FamilyFloral,
	"iris":           FamilyPowdery,
	"violet":         FamilyPowdery,
	"heliotrope":     FamilyPowdery,
	"orris":          FamilyPowdery,
	"sandalwood":     FamilyWoody,
	"cedarwood":      FamilyWoody,
	"cedar":          FamilyWoody,
	"vetiver":        FamilyWoody,
	"guaiac wood":    FamilyWoody,
	"cypress":        FamilyWoody,
	"pine":           FamilyWoody,
	"agarwood":       FamilyWoody,
	"oud":            FamilyWoody,
	"amber":          FamilyAmber,
	"ambergris":      FamilyAmber,
	"labdanum":       FamilyAmber,
	"benzoin":        FamilyAmber,
	"musk":           FamilyOriental,
	"white musk":     FamilyOriental,
	"incense":        FamilyOriental,
	"frankincense":   FamilyOriental,
	"myrrh":          FamilyOriental,
	"opoponax":       FamilyOriental,
	"black pepper":   FamilySpicy,
	"pink pepper":    FamilySpicy,
	"cinnamon":       FamilySpicy,
	"clove":          FamilySpicy,
	"cardamom":       FamilySpicy,
	"nutmeg":         FamilySpicy,
	"ginger":         FamilySpicy,
	"saffron":        FamilySpicy,
	"apple":          FamilyFruity,
	"pear":           FamilyFruity,
	"peach":          FamilyFruity,
	"apricot":        FamilyFruity,
	"blackcurrant":   FamilyFruity,
	"raspberry":      FamilyFruity,
	"strawberry":     FamilyFruity,
	"plum":           FamilyFruity,
	"fig":            FamilyFruity,
	"coconut":        FamilyFruity,
	"green tea":      FamilyGreen,
	"bamboo":         FamilyGreen,
	"grass":          FamilyGreen,
	"galbanum":       FamilyGreen,
	"mint":           FamilyGreen,
	"basil":          FamilyGreen,
	"tomato leaf":    FamilyGreen,
	"vanilla":        FamilyGourmand,
	"caramel":        FamilyGourmand,
	"chocolate":      FamilyGourmand,
	"coffee":         FamilyGourmand,
	"honey":          FamilyGourmand,
	"almond":         FamilyGourmand,
	"praline":        FamilyGourmand,
	"tonka bean":     FamilyGourmand,
	"sea salt":       FamilyOceanic,
	"marine notes":   FamilyOceanic,
	"sea breeze":     FamilyOceanic,
	"water lily":     FamilyOceanic,
	"calone":         FamilyOceanic,
	"oakmoss":        FamilyChypre,
	"patchouli":      FamilyChypre,
	"bergamot mint":  FamilyChypre,
	"lavender":       FamilyFougere,
	"rosemary":       FamilyFougere,
	"sage":           FamilyFougere,
	"clary sage":     FamilyFougere,
	"coumarin":       FamilyFougere,
	"aldehydes":      FamilyAldehyde,
	"aldehyde":       FamilyAldehyde,
	"tobacco":        FamilyTobaccoLeather,
	"leather":        FamilyTobaccoLeather,
	"suede":          FamilyTobaccoLeather,
	"birch tar":      FamilyTobaccoLeather,
	"bouquet":        FamilyBouquet,
	"white bouquet":  FamilyBouquet,
	"cashmeran":      FamilyWarm,
	"cashmere wood":  FamilyWarm,
	"warm milk":      FamilyWarm,
}

// FamilyOf classifies a note name into its scent family.
func FamilyOf(name string) Family {
	if family, ok := noteFamilies[strings.ToLower(strings.TrimSpace(name))]; ok {
		return family
	}
	return FamilyOther
}

// NoteFilter narrows a note catalog. Zero-value fields are inactive; active
// conditions are AND-combined.
type NoteFilter struct {
	// Query matches note names by case-insensitive substring.
	Query string

	// Family keeps only notes classified into this family.
	Family Family

	// PopularOnly keeps only notes present in the static popular list.
	PopularOnly bool
}

// FilterNotes applies f to the catalog and returns the surviving notes.
func FilterNotes(notes []DeterminedNote, f NoteFilter) []DeterminedNote {
	query := strings.ToLower(f.Query)
	var out []DeterminedNote
	for _, note := range notes {
		if query != "" && !strings.Contains(strings.ToLower(note.Name), query) {
			continue
		}
		if f.Family != "" && FamilyOf(note.Name) != f.Family {
			continue
		}
		if f.PopularOnly && !IsPopularNote(note.Name) {
			continue
		}
		out = append(out, note)
	}
	return out
}
