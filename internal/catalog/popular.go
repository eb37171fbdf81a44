package catalog

import "strings"

// PopularNote is one entry of the static suggestion list shown before the
// catalog finishes loading. This list ships with the client and is never
// fetched from the server.
type PopularNote struct {
	Name       string `json:"name"`
	KoreanName string `json:"koreanName"`
	UsageCount int    `json:"usageCount"`
}

// PopularNotes is the fixed popular-ingredient reference list, ordered by
// usage count.
var PopularNotes = []PopularNote{
	{Name: "Bergamot", KoreanName: "베르가못", UsageCount: 1482},
	{Name: "Musk", KoreanName: "머스크", UsageCount: 1377},
	{Name: "Jasmine", KoreanName: "자스민", UsageCount: 1204},
	{Name: "Rose", KoreanName: "로즈", UsageCount: 1160},
	{Name: "Sandalwood", KoreanName: "샌달우드", UsageCount: 1098},
	{Name: "Vanilla", KoreanName: "바닐라", UsageCount: 1034},
	{Name: "Patchouli", KoreanName: "패츌리", UsageCount: 927},
	{Name: "Amber", KoreanName: "앰버", UsageCount: 871},
	{Name: "Cedarwood", KoreanName: "시더우드", UsageCount: 808},
	{Name: "Vetiver", KoreanName: "베티버", UsageCount: 742},
	{Name: "Lavender", KoreanName: "라벤더", UsageCount: 699},
	{Name: "Lemon", KoreanName: "레몬", UsageCount: 655},
	{Name: "White Musk", KoreanName: "화이트 머스크", UsageCount: 601},
	{Name: "Tonka Bean", KoreanName: "통카빈", UsageCount: 548},
	{Name: "Neroli", KoreanName: "네롤리", UsageCount: 512},
	{Name: "Black Pepper", KoreanName: "블랙페퍼", UsageCount: 477},
	{Name: "Grapefruit", KoreanName: "자몽", UsageCount: 431},
	{Name: "Peony", KoreanName: "피오니", UsageCount: 389},
	{Name: "Ylang Ylang", KoreanName: "일랑일랑", UsageCount: 344},
	{Name: "Green Tea", KoreanName: "녹차", UsageCount: 301},
}

var popularNames = func() map[string]bool {
	names := make(map[string]bool, len(PopularNotes))
	for _, note := range PopularNotes {
		names[strings.ToLower(note.Name)] = true
	}
	return names
}()

// IsPopularNote reports whether name appears in the popular list,
// case-insensitive.
func IsPopularNote(name string) bool {
	return popularNames[strings.ToLower(strings.TrimSpace(name))]
}
