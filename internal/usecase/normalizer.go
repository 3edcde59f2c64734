package usecase

import "strings"

// noiseReplacements is applied in order; later replacements see the already
// partially cleaned string. Replacement is plain substring based, NOT word
// boundary aware — "tea latte" must collapse to "tea" before the standalone
// "latte" and "tea" removals run, and both datasets were built against this
// exact sequence. Changing it shifts scores for any label whose words embed
// one of these tokens.
var noiseReplacements = []struct {
	old string
	new string
}{
	{"extracted", ""},
	{"brewed", ""},
	{"hot tea", ""},
	{"iced tea", ""},
	{"hot", ""},
	{"ice", ""},
	{"tea latte", "tea"},
	{"latte", ""},
	{"pure tea", ""},
	{"tea", ""},
	{"bo ya", ""},
}

// NormalizeName folds a free-text beverage name into the canonical form
// used for similarity comparison: lower case, parenthesis characters
// dropped (their content kept), noise tokens stripped, outer whitespace
// trimmed. Interior double spaces left by removed tokens stay as-is; the
// scorer is character based and tolerates them. Total over any input,
// including empty.
func NormalizeName(raw string) string {
	name := strings.ToLower(raw)
	name = strings.ReplaceAll(name, "(", "")
	name = strings.ReplaceAll(name, ")", "")
	for _, r := range noiseReplacements {
		name = strings.ReplaceAll(name, r.old, r.new)
	}
	return strings.TrimSpace(name)
}

// DecomposeLabel splits a nutrition identifier into its leading two-token
// size expression and the descriptive remainder. "16 oz Jasmine Green Tea"
// yields ("16 oz", "Jasmine Green Tea"). Labels with fewer than three
// whitespace-separated parts have no size token and pass through whole;
// the candidate filter then skips the size constraint for them.
func DecomposeLabel(label string) (sizeToken, nameRemainder string) {
	parts := strings.SplitN(label, " ", 3)
	if len(parts) >= 3 {
		return parts[0] + " " + parts[1], parts[2]
	}
	return "", label
}

// sizeNames translates catalog size vocabulary into the ounce form the
// nutrition dataset uses. Closed table; unknown keys pass through.
var sizeNames = map[string]string{
	"Small":   "12 oz",
	"Regular": "16 oz",
	"Large":   "22 oz",
}

// temperatureNames translates catalog temperature vocabulary. Currently an
// identity table, kept so the vocabularies can drift independently.
var temperatureNames = map[string]string{
	"Hot":     "Hot",
	"Ice":     "Ice",
	"Regular": "Regular",
	"Less":    "Less",
}

// MapSize returns the nutrition-dataset form of a catalog size name.
func MapSize(size string) string {
	if mapped, ok := sizeNames[size]; ok {
		return mapped
	}
	return size
}

// MapTemperature returns the nutrition-dataset form of a catalog
// temperature name.
func MapTemperature(temp string) string {
	if mapped, ok := temperatureNames[temp]; ok {
		return mapped
	}
	return temp
}

// isLatteLabel reports whether a raw label names a latte variant. Computed
// on the raw text, before normalization strips the word.
func isLatteLabel(label string) bool {
	return strings.Contains(strings.ToLower(label), "latte")
}
