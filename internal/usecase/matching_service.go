package usecase

import (
	"log"
	"math"
	"strings"

	"github.com/bevmap/backend/internal/domain"
)

// Scoring defaults
const (
	defaultMinScore     = 75 // acceptance threshold on the 0-100 ratio scale
	defaultKeywordBonus = 10 // added once when both sides share a boost keyword
)

// defaultBoostKeywords are the tea types that discriminate between
// otherwise near-identical names. The base ratio under-weights a single
// distinguishing word inside similar surrounding text; sharing one of these
// earns the fixed bonus.
var defaultBoostKeywords = []string{"jasmine", "peach", "oolong", "ceylon", "black"}

// MatchConfig holds configuration for the matching service.
type MatchConfig struct {
	MinScore           int
	KeywordBonus       int
	BoostKeywords      []string
	EnableDebugLogging bool
}

// MatchingService resolves a free-text nutrition label to its catalog entry
// by hard-filtering candidates on size and latte-ness, then scoring the
// normalized names.
type MatchingService struct {
	minScore           int
	keywordBonus       int
	boostKeywords      []string
	enableDebugLogging bool
}

// NewMatchingService creates a matching service with the given
// configuration, falling back to defaults for unset fields.
func NewMatchingService(config MatchConfig) *MatchingService {
	minScore := config.MinScore
	if minScore <= 0 {
		minScore = defaultMinScore
	}

	bonus := config.KeywordBonus
	if bonus <= 0 {
		bonus = defaultKeywordBonus
	}

	keywords := config.BoostKeywords
	if len(keywords) == 0 {
		keywords = defaultBoostKeywords
	}

	return &MatchingService{
		minScore:           minScore,
		keywordBonus:       bonus,
		boostKeywords:      keywords,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// FilterCandidates applies the hard constraints that precede scoring: exact
// ounce equality when a size token is present, and latte/non-latte parity
// always. Candidate order follows catalog order, which the tie-break
// depends on. An empty size token skips the size constraint entirely (the
// degraded mode for labels without a leading size expression).
func (s *MatchingService) FilterCandidates(sizeToken string, isLatte bool, catalog []domain.CatalogEntry) []domain.CatalogEntry {
	var candidates []domain.CatalogEntry
	for _, entry := range catalog {
		if sizeToken != "" && entry.Ounce != sizeToken {
			continue
		}
		if entry.IsLatte() != isLatte {
			continue
		}
		candidates = append(candidates, entry)
	}
	return candidates
}

// Score computes the similarity between two already-normalized names:
// a Levenshtein ratio scaled to 0-100, plus the keyword bonus when the same
// boost keyword appears in both. Identical strings score 100 before the
// bonus; the bonus can push past 100 and is deliberately not clamped — the
// score only feeds the threshold comparison and the best-of tie-break, and
// a ceiling would erase the difference between two boosted candidates.
func (s *MatchingService) Score(a, b string) int {
	score := levenshteinRatio(a, b)
	for _, keyword := range s.boostKeywords {
		if strings.Contains(a, keyword) && strings.Contains(b, keyword) {
			score += s.keywordBonus
			break
		}
	}
	return score
}

// FindBestMatch resolves one nutrition identifier against the catalog.
// Returns the winning entry and its score, or domain.ErrNoMatch when no
// candidate survives the filter or the best score is below the threshold.
// Exact ties keep the first candidate in catalog order, so results are
// reproducible for a fixed catalog sequence.
func (s *MatchingService) FindBestMatch(identifier string, catalog []domain.CatalogEntry) (*domain.CatalogEntry, int, error) {
	sizeToken, nameRemainder := DecomposeLabel(identifier)
	normalized := NormalizeName(nameRemainder)
	isLatte := isLatteLabel(identifier)

	candidates := s.FilterCandidates(sizeToken, isLatte, catalog)

	var best *domain.CatalogEntry
	bestScore := 0

	for i := range candidates {
		score := s.Score(normalized, NormalizeName(candidates[i].ProductName))

		if s.enableDebugLogging {
			log.Printf("[MATCH] %q vs %q (%s) score=%d", identifier, candidates[i].ProductName, candidates[i].Ounce, score)
		}

		if score > bestScore {
			bestScore = score
			best = &candidates[i]
		}
	}

	if best == nil || bestScore < s.minScore {
		return nil, 0, domain.ErrNoMatch
	}

	if s.enableDebugLogging {
		log.Printf("[MATCH] best for %q: %q score=%d", identifier, best.ProductName, bestScore)
	}

	return best, bestScore, nil
}

// levenshteinRatio scales edit distance into a 0-100 similarity:
// round(100 * (1 - distance/maxLen)). Two empty strings are identical and
// score 100.
func levenshteinRatio(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}
	if longer == 0 {
		return 100
	}

	dist := levenshteinDistance(ra, rb)
	return int(math.Round(100 * (1 - float64(dist)/float64(longer))))
}

// levenshteinDistance calculates the edit distance between two rune slices
// using two rows instead of the full matrix.
func levenshteinDistance(r1, r2 []rune) int {
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	m := len(r1)
	n := len(r2)

	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
