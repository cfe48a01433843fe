package matcher

import (
	"math"
	"regexp"
	"strings"

	"github.com/ZaryabShah/matching-score/internal/models"
	"github.com/ZaryabShah/matching-score/internal/record"
)

// Candidate path lists probed by the comparators. The same list is used for
// both sides of a comparison (the union of Amazon-shaped and Target-shaped
// field variants), which keeps every comparator symmetric.
var (
	upcPaths = []string{
		"specifications.upc", "specifications.gtin", "specifications.ean",
		"identifiers.upc", "identifiers.gtin", "identifiers.ean",
		"basic_info.upc", "basic_info.gtin",
		"technical_specs.specifications.upc", "product_details.upc",
		"upc",
	}
	modelPaths = []string{
		"specifications.model_number", "specifications.model",
		"identifiers.model_number", "basic_info.model_number",
		"technical_specs.specifications.model_number", "product_details.model",
		"model",
	}
	brandPaths = []string{"brand", "basic_info.brand"}
	titlePaths = []string{"title", "basic_info.name", "name"}
	dimPaths   = []string{
		"physical_attributes", "specifications.dimensions",
		"technical_specs.specifications", "dimensions",
	}
	weightPaths = []string{
		"physical_attributes.weight", "specifications.weight",
		"technical_specs.specifications.weight", "weight",
	}
	pricePaths = []string{
		"pricing.current_price", "pricing.formatted_current_price",
		"pricing.price", "price",
	}
	categoryPaths = []string{
		"categories", "category_info.category_name", "breadcrumbs", "category",
	}
	colorPaths = []string{
		"variations.color", "specifications.color", "product_details.color",
		"color",
	}
	materialPaths = []string{
		"specifications.material", "product_details.materials",
		"technical_specs.specifications.material", "material",
	}
	featurePaths = []string{
		"specifications", "product_details.highlights",
		"product_details.features", "technical_specs.specifications",
		"features",
	}

	punctuation = regexp.MustCompile(`[^\w\s]`)
	digitsOnly  = regexp.MustCompile(`^\d+$`)
)

// compareIdentifiers awards full points for an exact UPC/GTIN/EAN match
// after whitespace and case normalization.
func (s *Scorer) compareIdentifiers(a, b models.Record) float64 {
	idA := normalizeIdentifier(record.FirstString(a, upcPaths))
	idB := normalizeIdentifier(record.FirstString(b, upcPaths))

	if len(idA) < s.weights.MinIdentifierLen || len(idB) < s.weights.MinIdentifierLen {
		return 0
	}
	if idA == idB {
		return s.weights.UPCMatch
	}
	return 0
}

func normalizeIdentifier(id string) string {
	return strings.ToLower(strings.Join(strings.Fields(id), ""))
}

// compareModel awards full points for an exact model number match, and a
// reduced share when one model string contains the other.
func (s *Scorer) compareModel(a, b models.Record) float64 {
	modelA := strings.ToLower(record.FirstString(a, modelPaths))
	modelB := strings.ToLower(record.FirstString(b, modelPaths))

	if len(modelA) < s.weights.MinModelLen || len(modelB) < s.weights.MinModelLen {
		return 0
	}
	if modelA == modelB {
		return s.weights.ModelMatch
	}
	if strings.Contains(modelA, modelB) || strings.Contains(modelB, modelA) {
		return s.weights.ModelMatch * s.weights.ModelPartialFactor
	}
	return 0
}

// compareBrand awards full points for an exact brand match, and a reduced
// share for alias-table, containment, or initials-abbreviation matches.
func (s *Scorer) compareBrand(a, b models.Record) float64 {
	brandA := strings.ToLower(record.FirstString(a, brandPaths))
	brandB := strings.ToLower(record.FirstString(b, brandPaths))

	if brandA == "" || brandB == "" {
		return 0
	}
	if brandA == brandB {
		return s.weights.BrandMatch
	}
	if s.brandsSimilar(brandA, brandB) {
		return s.weights.BrandMatch * s.weights.BrandSimilarFactor
	}
	return 0
}

func (s *Scorer) brandsSimilar(b1, b2 string) bool {
	b1 = strings.TrimSpace(b1)
	b2 = strings.TrimSpace(b2)

	for canonical, variants := range s.tables.BrandAliases {
		if matchesAlias(b1, canonical, variants) && matchesAlias(b2, canonical, variants) {
			return true
		}
	}

	// Containment covers suffix/prefix variations ("bestoffice" vs
	// "best office chairs"). Short names are excluded to avoid noise.
	if len(b1) > 3 && len(b2) > 3 {
		if strings.Contains(b1, b2) || strings.Contains(b2, b1) {
			return true
		}
	}

	return initialsMatch(b1, b2) || initialsMatch(b2, b1)
}

func matchesAlias(brand, canonical string, variants []string) bool {
	if brand == canonical {
		return true
	}
	for _, v := range variants {
		if brand == v {
			return true
		}
	}
	return false
}

// initialsMatch reports whether short is the first-letter abbreviation of
// the multi-word brand long.
func initialsMatch(long, short string) bool {
	words := strings.Fields(long)
	if len(words) < 2 || len(short) > 4 {
		return false
	}
	var sb strings.Builder
	for _, w := range words {
		sb.WriteByte(w[0])
	}
	return sb.String() == short
}

// compareTitle normalizes both titles, computes token Jaccard similarity
// with a bonus for shared meaningful words, and maps the result to banded
// points.
func (s *Scorer) compareTitle(a, b models.Record) float64 {
	tokensA := s.titleTokens(record.FirstString(a, titlePaths))
	tokensB := s.titleTokens(record.FirstString(b, titlePaths))

	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	shared := intersectionSize(tokensA, tokensB)
	union := len(tokensA) + len(tokensB) - shared

	similarity := float64(shared) / float64(union)
	similarity += math.Min(float64(shared)*s.weights.WordBonusStep, s.weights.WordBonusCap)

	switch {
	case similarity >= s.weights.TitleHighSim:
		return s.weights.TitleHigh
	case similarity >= s.weights.TitleMediumSim:
		return s.weights.TitleMedium
	case similarity >= s.weights.TitleLowSim:
		return s.weights.TitleLow
	case similarity >= s.weights.TitlePartialSim:
		return s.weights.TitleLow * s.weights.TitlePartialFactor
	}
	return 0
}

// titleTokens lowercases, strips punctuation, and drops stop words and
// short tokens.
func (s *Scorer) titleTokens(title string) map[string]bool {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(title), " ")

	tokens := make(map[string]bool)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 || s.tables.StopWords[word] {
			continue
		}
		tokens[word] = true
	}
	return tokens
}

// compareDimensions requires at least two commonly-present dimensions on
// each side and awards exact or close points when all of them agree within
// tolerance.
func (s *Scorer) compareDimensions(a, b models.Record) float64 {
	dimsA := extractDimensions(a)
	dimsB := extractDimensions(b)

	if len(dimsA) < 2 || len(dimsB) < 2 {
		return 0
	}
	if dimensionsWithin(dimsA, dimsB, 0) {
		return s.weights.DimensionsExact
	}
	if dimensionsWithin(dimsA, dimsB, s.weights.DimensionTolerance) {
		return s.weights.DimensionsClose
	}
	return 0
}

func extractDimensions(rec models.Record) map[string]float64 {
	node, ok := record.Subtree(rec, dimPaths)
	if !ok {
		return nil
	}

	dims := make(map[string]float64)
	for _, key := range []string{"length", "width", "height"} {
		if v, ok := record.AsFloat(node[key]); ok {
			dims[key] = v
		}
	}
	return dims
}

func dimensionsWithin(dims1, dims2 map[string]float64, tolerance float64) bool {
	common := 0
	for key := range dims1 {
		if _, ok := dims2[key]; ok {
			common++
		}
	}
	if common < 2 {
		return false
	}

	for key, v1 := range dims1 {
		v2, ok := dims2[key]
		if !ok || v1 == 0 || v2 == 0 {
			continue
		}
		if relativeDiff(v1, v2) > tolerance {
			return false
		}
	}
	return true
}

// compareWeight awards exact points for identical weights and close points
// within the relative tolerance.
func (s *Scorer) compareWeight(a, b models.Record) float64 {
	weightA, okA := record.FirstFloat(a, weightPaths)
	weightB, okB := record.FirstFloat(b, weightPaths)

	if !okA || !okB || weightA <= 0 || weightB <= 0 {
		return 0
	}

	diff := relativeDiff(weightA, weightB)
	if diff == 0 {
		return s.weights.WeightExact
	}
	if diff <= s.weights.WeightTolerance {
		return s.weights.WeightClose
	}
	return 0
}

// comparePrice awards points when prices agree within the relative
// tolerance.
func (s *Scorer) comparePrice(a, b models.Record) float64 {
	priceA, okA := record.FirstFloat(a, pricePaths)
	priceB, okB := record.FirstFloat(b, pricePaths)

	if !okA || !okB || priceA <= 0 || priceB <= 0 {
		return 0
	}
	if relativeDiff(priceA, priceB) <= s.weights.PriceTolerance {
		return s.weights.PriceMatch
	}
	return 0
}

// relativeDiff measures the difference relative to the smaller value, so a
// $100 vs $121 pair reads as 21%, not 17%.
func relativeDiff(a, b float64) float64 {
	return math.Abs(a-b) / math.Min(a, b)
}

// compareCategory checks direct category/breadcrumb overlap first, then
// falls back to product-type keywords mined from the titles, then to the
// curated related-type groups.
func (s *Scorer) compareCategory(a, b models.Record) float64 {
	catsA := record.StringSet(a, categoryPaths)
	catsB := record.StringSet(b, categoryPaths)

	if intersectionSize(catsA, catsB) > 0 {
		return s.weights.CategoryMatch
	}

	typesA := s.minedTypeKeywords(record.FirstString(a, titlePaths))
	typesB := s.minedTypeKeywords(record.FirstString(b, titlePaths))

	if len(typesA) == 0 || len(typesB) == 0 {
		return 0
	}
	if intersectionSize(typesA, typesB) > 0 {
		return s.weights.CategoryMatch
	}

	for _, group := range s.tables.RelatedTypeGroups {
		if typesInGroup(typesA, group) && typesInGroup(typesB, group) {
			return s.weights.CategoryMatch * s.weights.RelatedFactor
		}
	}
	return 0
}

// minedTypeKeywords pulls product-type indicators out of a title: the
// leading noun, known type words, and marker-qualified compounds.
func (s *Scorer) minedTypeKeywords(title string) map[string]bool {
	words := strings.Fields(strings.ToLower(title))
	types := make(map[string]bool)

	for i, word := range words {
		if len(word) <= 2 || digitsOnly.MatchString(word) {
			continue
		}
		if i == 0 || s.tables.TypeKeywords[word] {
			types[word] = true
		}
		if i < len(words)-1 {
			for _, marker := range s.tables.CompoundMarkers {
				if word == marker {
					types[word+" "+words[i+1]] = true
					break
				}
			}
		}
	}
	return types
}

func typesInGroup(types map[string]bool, group []string) bool {
	for t := range types {
		for _, member := range group {
			if strings.Contains(t, member) || strings.Contains(member, t) {
				return true
			}
		}
	}
	return false
}

// compareColor awards points for a case-insensitive exact color match.
func (s *Scorer) compareColor(a, b models.Record) float64 {
	colorA := strings.ToLower(record.FirstString(a, colorPaths))
	colorB := strings.ToLower(record.FirstString(b, colorPaths))

	if colorA != "" && colorA == colorB {
		return s.weights.ColorMatch
	}
	return 0
}

// compareMaterial awards points when the material token sets intersect.
func (s *Scorer) compareMaterial(a, b models.Record) float64 {
	matsA := record.StringSet(a, materialPaths)
	matsB := record.StringSet(b, materialPaths)

	if intersectionSize(matsA, matsB) > 0 {
		return s.weights.MaterialMatch
	}
	return 0
}

// compareFeatures mines keyword sets from free-text spec and feature fields
// and awards a fixed amount per token present on both sides, bounded by the
// configured cap.
func (s *Scorer) compareFeatures(a, b models.Record) float64 {
	featsA := extractFeatures(a)
	featsB := extractFeatures(b)

	points := float64(intersectionSize(featsA, featsB)) * s.weights.FeatureKeyword
	if s.weights.FeatureCap > 0 && points > s.weights.FeatureCap {
		points = s.weights.FeatureCap
	}
	return points
}

func extractFeatures(rec models.Record) map[string]bool {
	raw := make(map[string]bool)
	for _, path := range featurePaths {
		value, ok := record.Lookup(rec, path)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case map[string]any:
			for key, item := range v {
				raw[strings.ToLower(key)] = true
				addScalarToken(raw, item)
			}
		case []any:
			for _, item := range v {
				addScalarToken(raw, item)
			}
		}
	}

	features := make(map[string]bool, len(raw))
	for token := range raw {
		if len(token) > 3 && !digitsOnly.MatchString(token) {
			features[token] = true
		}
	}
	return features
}

func addScalarToken(set map[string]bool, value any) {
	if s := record.AsString(value); s != "" {
		set[strings.ToLower(s)] = true
	}
}

// compatibilityOrder fixes the department evaluation order so scoring is
// deterministic.
var compatibilityOrder = []string{"electronics", "furniture", "apparel", "kitchen"}

// compareCompatibility extracts product types from both titles against the
// fixed vocabulary and scores how compatible the two product kinds are:
// a directly shared keyword, then a shared subgroup, then a shared
// department, then a bounded generic word-overlap fallback.
func (s *Scorer) compareCompatibility(a, b models.Record) float64 {
	typesA := s.vocabularyTypes(record.FirstString(a, titlePaths))
	typesB := s.vocabularyTypes(record.FirstString(b, titlePaths))

	if len(typesA) == 0 || len(typesB) == 0 {
		return 0
	}
	if intersectionSize(typesA, typesB) > 0 {
		return s.weights.CompatibilityDirect
	}

	for _, dept := range compatibilityOrder {
		subgroups := s.tables.Compatibility[dept]

		matchesA := subgroupMatches(typesA, subgroups)
		matchesB := subgroupMatches(typesB, subgroups)

		if intersectionSize(matchesA, matchesB) > 0 {
			return s.weights.CompatibilitySubgroup
		}
		if len(matchesA) > 0 && len(matchesB) > 0 {
			return s.weights.CompatibilityGroup
		}
	}

	return s.overlapFallback(typesA, typesB)
}

func (s *Scorer) vocabularyTypes(title string) map[string]bool {
	words := strings.Fields(strings.ToLower(title))
	types := make(map[string]bool)

	for i, word := range words {
		if s.tables.ProductVocabulary[word] {
			types[word] = true
		}
		if i < len(words)-1 {
			compound := word + " " + words[i+1]
			if s.tables.ProductVocabulary[compound] {
				types[compound] = true
			}
		}
	}
	return types
}

func subgroupMatches(types map[string]bool, subgroups map[string][]string) map[string]bool {
	matches := make(map[string]bool)
	for name, members := range subgroups {
		for _, member := range members {
			if types[member] {
				matches[name] = true
				break
			}
		}
	}
	return matches
}

// overlapFallback awards a small bounded score for generic word overlap
// between the two type sets when no structured relationship was found.
func (s *Scorer) overlapFallback(typesA, typesB map[string]bool) float64 {
	wordsA := splitTypeWords(typesA)
	wordsB := splitTypeWords(typesB)

	overlap := intersectionSize(wordsA, wordsB)
	if overlap == 0 {
		return 0
	}
	return math.Min(float64(overlap)*s.weights.CompatibilityOverlap, s.weights.CompatibilityCap)
}

func splitTypeWords(types map[string]bool) map[string]bool {
	words := make(map[string]bool)
	for t := range types {
		for _, w := range strings.Fields(t) {
			words[w] = true
		}
	}
	return words
}

func intersectionSize(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for key := range a {
		if b[key] {
			count++
		}
	}
	return count
}
