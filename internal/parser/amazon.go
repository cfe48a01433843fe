package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ZaryabShah/matching-score/internal/models"
)

type AmazonParser struct {
	dimensionPatterns []*regexp.Regexp
	weightPatterns    []*regexp.Regexp
	pricePattern      *regexp.Regexp
}

func NewAmazonParser() *AmazonParser {
	return &AmazonParser{
		// Covers both `21.6"D x 20"W x 35.2"H` and `27 x 25 x 42 inches`.
		dimensionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*"?[dwhl]?\s*x\s*(\d+(?:\.\d+)?)\s*"?[dwhl]?\s*x\s*(\d+(?:\.\d+)?)\s*"?[dwhl]?`),
		},
		weightPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(pounds|pound|lbs|lb|ounces|oz|kilograms|kg)`),
		},
		pricePattern: regexp.MustCompile(`\$?\s*(\d+(?:,\d{3})*(?:\.\d+)?)`),
	}
}

// ParseProduct extracts the full attribute record from an Amazon product
// detail page.
func (p *AmazonParser) ParseProduct(payload []byte, asin string) (models.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(payload)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := p.extractTitle(doc)
	if title == "" {
		return nil, fmt.Errorf("product title not found for %s", asin)
	}

	rec := models.Record{
		"asin":  asin,
		"url":   "https://www.amazon.com/dp/" + asin,
		"title": title,
	}

	if brand := p.extractBrand(doc); brand != "" {
		rec["brand"] = brand
	}
	if price, ok := p.extractPrice(doc); ok {
		rec["price"] = price
	}
	if cats := p.extractBreadcrumbs(doc); len(cats) > 0 {
		rec["categories"] = cats
	}
	if features := p.extractFeatureBullets(doc); len(features) > 0 {
		rec["features"] = features
	}

	specs := p.extractSpecifications(doc)
	if len(specs) > 0 {
		rec["specifications"] = specs
	}
	p.liftKnownSpecs(rec, specs)

	return rec, nil
}

// ParseSearch extracts candidate listings from an Amazon search results
// page, in page order.
func (p *AmazonParser) ParseSearch(payload []byte, limit int) ([]models.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(payload)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var candidates []models.Candidate
	doc.Find(`div[data-component-type="s-search-result"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if limit > 0 && len(candidates) >= limit {
			return false
		}

		asin, ok := s.Attr("data-asin")
		if !ok || asin == "" {
			return true
		}

		candidate := models.Candidate{
			Platform: "amazon",
			ID:       asin,
			Title:    strings.TrimSpace(s.Find("h2 span").First().Text()),
			URL:      "https://www.amazon.com/dp/" + asin,
			Price:    strings.TrimSpace(s.Find(".a-price .a-offscreen").First().Text()),
		}
		candidates = append(candidates, candidate)
		return true
	})

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no search results found")
	}
	return candidates, nil
}

func (p *AmazonParser) extractTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("#productTitle").First().Text())
}

func (p *AmazonParser) extractBrand(doc *goquery.Document) string {
	byline := strings.TrimSpace(doc.Find("#bylineInfo").First().Text())
	if byline == "" {
		return ""
	}

	// "Visit the BestOffice Store" / "Brand: BestOffice"
	byline = strings.TrimPrefix(byline, "Visit the ")
	byline = strings.TrimSuffix(byline, " Store")
	byline = strings.TrimPrefix(byline, "Brand: ")
	return strings.TrimSpace(byline)
}

func (p *AmazonParser) extractPrice(doc *goquery.Document) (float64, bool) {
	selectors := []string{
		".a-price .a-offscreen",
		"#priceblock_ourprice",
		"#priceblock_dealprice",
		".a-price-whole",
	}

	for _, selector := range selectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text == "" {
			continue
		}
		if price, ok := p.parsePrice(text); ok {
			return price, true
		}
	}
	return 0, false
}

func (p *AmazonParser) parsePrice(text string) (float64, bool) {
	matches := p.pricePattern.FindStringSubmatch(text)
	if len(matches) < 2 {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(matches[1], ",", ""), 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func (p *AmazonParser) extractBreadcrumbs(doc *goquery.Document) []any {
	var crumbs []any
	doc.Find("#wayfinding-breadcrumbs_feature_div li a").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			crumbs = append(crumbs, text)
		}
	})
	return crumbs
}

func (p *AmazonParser) extractFeatureBullets(doc *goquery.Document) []any {
	var features []any
	doc.Find("#feature-bullets li span.a-list-item").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" && !strings.EqualFold(text, "see more product details") {
			features = append(features, text)
		}
	})
	return features
}

// extractSpecifications collects the technical detail tables and the detail
// bullets into one lowercase-keyed map.
func (p *AmazonParser) extractSpecifications(doc *goquery.Document) map[string]any {
	specs := make(map[string]any)

	doc.Find("#productDetails_techSpec_section_1 tr, #productDetails_detailBullets_sections1 tr").Each(func(i int, s *goquery.Selection) {
		key := strings.TrimSpace(s.Find("th").First().Text())
		value := strings.TrimSpace(s.Find("td").First().Text())
		if key != "" && value != "" {
			specs[normalizeSpecKey(key)] = value
		}
	})

	doc.Find("#detailBullets_feature_div li").Each(func(i int, s *goquery.Selection) {
		parts := strings.SplitN(s.Text(), ":", 2)
		if len(parts) != 2 {
			return
		}
		key := strings.TrimSpace(strings.Trim(parts[0], "‏‎ \n"))
		value := strings.TrimSpace(strings.Trim(parts[1], "‏‎ \n"))
		if key != "" && value != "" {
			specs[normalizeSpecKey(key)] = value
		}
	})

	return specs
}

func normalizeSpecKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
}

// liftKnownSpecs promotes well-known spec rows into the typed branches the
// comparators probe directly.
func (p *AmazonParser) liftKnownSpecs(rec models.Record, specs map[string]any) {
	attrs := make(map[string]any)

	if raw, ok := specs["product_dimensions"].(string); ok {
		if dims, ok := p.parseDimensions(raw); ok {
			for k, v := range dims {
				attrs[k] = v
			}
		}
	}
	if raw, ok := specs["item_weight"].(string); ok {
		if weight, ok := p.parseWeight(raw); ok {
			attrs["weight"] = weight
		}
	}
	if len(attrs) > 0 {
		rec["physical_attributes"] = attrs
	}

	for specKey, recKey := range map[string]string{
		"item_model_number": "model",
		"color":             "color",
		"material":          "material",
	} {
		if value, ok := specs[specKey].(string); ok && value != "" {
			rec[recKey] = value
		}
	}
}

// parseDimensions parses `21.6"D x 20"W x 35.2"H` and `27 x 25 x 42 inches`
// style strings.
func (p *AmazonParser) parseDimensions(raw string) (map[string]any, bool) {
	for _, pattern := range p.dimensionPatterns {
		matches := pattern.FindStringSubmatch(raw)
		if len(matches) < 4 {
			continue
		}

		length, err1 := strconv.ParseFloat(matches[1], 64)
		width, err2 := strconv.ParseFloat(matches[2], 64)
		height, err3 := strconv.ParseFloat(matches[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		if length <= 0 || width <= 0 || height <= 0 {
			continue
		}

		return map[string]any{
			"length": length,
			"width":  width,
			"height": height,
		}, true
	}
	return nil, false
}

// parseWeight returns the weight in pounds.
func (p *AmazonParser) parseWeight(raw string) (float64, bool) {
	for _, pattern := range p.weightPatterns {
		matches := pattern.FindStringSubmatch(raw)
		if len(matches) < 3 {
			continue
		}

		value, err := strconv.ParseFloat(matches[1], 64)
		if err != nil || value <= 0 {
			continue
		}

		switch strings.ToLower(matches[2]) {
		case "ounces", "oz":
			value /= 16
		case "kilograms", "kg":
			value *= 2.20462
		}
		return value, true
	}
	return 0, false
}
