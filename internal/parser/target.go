package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZaryabShah/matching-score/internal/models"
	"github.com/ZaryabShah/matching-score/internal/record"
)

// TargetParser decodes RedSky API responses. RedSky is Target's storefront
// JSON API, so unlike the Amazon side there is no HTML to scrape; parsing is
// a walk over a deeply nested document.
type TargetParser struct{}

func NewTargetParser() *TargetParser {
	return &TargetParser{}
}

var htmlTags = regexp.MustCompile(`<[^>]+>`)

// ParseProduct extracts the full attribute record from a RedSky product
// detail response.
func (p *TargetParser) ParseProduct(payload []byte, tcin string) (models.Record, error) {
	raw, err := models.RecordFromJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode product response: %w", err)
	}

	product, ok := record.Subtree(raw, []string{"data.product"})
	if !ok {
		return nil, fmt.Errorf("product payload missing for %s", tcin)
	}
	item := models.Record(product)

	title := record.FirstString(item, []string{"item.product_description.title"})
	if title == "" {
		return nil, fmt.Errorf("product title not found for %s", tcin)
	}

	basicInfo := map[string]any{
		"tcin": tcin,
		"name": title,
	}
	if brand := record.FirstString(item, []string{"item.primary_brand.name"}); brand != "" {
		basicInfo["brand"] = brand
	}
	if upc := record.FirstString(item, []string{"item.primary_barcode"}); upc != "" {
		basicInfo["upc"] = upc
	}
	if url := record.FirstString(item, []string{"item.enrichment.buy_url"}); url != "" {
		basicInfo["url"] = url
	}

	rec := models.Record{"basic_info": basicInfo}

	pricing := make(map[string]any)
	if price, ok := record.FirstFloat(item, []string{"price.current_retail"}); ok {
		pricing["current_price"] = price
	}
	if formatted := record.FirstString(item, []string{"price.formatted_current_price"}); formatted != "" {
		pricing["formatted_current_price"] = formatted
	}
	if len(pricing) > 0 {
		rec["pricing"] = pricing
	}

	if attrs := p.packageDimensions(item); len(attrs) > 0 {
		rec["physical_attributes"] = attrs
	}

	if details := p.productDetails(item); len(details) > 0 {
		rec["product_details"] = details
	}

	if specs := p.technicalSpecs(item); len(specs) > 0 {
		rec["technical_specs"] = map[string]any{"specifications": specs}
	}

	if variations := p.variations(item); len(variations) > 0 {
		rec["variations"] = variations
	}

	if category := record.FirstString(item, []string{
		"category.name", "item.product_classification.item_type.name",
	}); category != "" {
		rec["category_info"] = map[string]any{"category_name": category}
	}

	return rec, nil
}

// ParseSearch extracts candidate listings from a RedSky search response, in
// relevance order.
func (p *TargetParser) ParseSearch(payload []byte, limit int) ([]models.Candidate, error) {
	raw, err := models.RecordFromJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	products, ok := record.Lookup(raw, "data.search.products")
	if !ok {
		return nil, fmt.Errorf("no search results found")
	}
	list, ok := products.([]any)
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf("no search results found")
	}

	var candidates []models.Candidate
	for _, entry := range list {
		if limit > 0 && len(candidates) >= limit {
			break
		}
		node, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item := models.Record(node)

		tcin := record.FirstString(item, []string{"tcin"})
		if tcin == "" {
			continue
		}

		candidates = append(candidates, models.Candidate{
			Platform: "target",
			ID:       tcin,
			Title:    record.FirstString(item, []string{"item.product_description.title"}),
			URL:      record.FirstString(item, []string{"item.enrichment.buy_url"}),
			Price:    record.FirstString(item, []string{"price.formatted_current_price"}),
		})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no search results found")
	}
	return candidates, nil
}

// packageDimensions maps RedSky's depth/width/height/weight block onto the
// canonical physical attributes. RedSky calls the length axis "depth".
func (p *TargetParser) packageDimensions(item models.Record) map[string]any {
	attrs := make(map[string]any)

	for redskyKey, recKey := range map[string]string{
		"depth":  "length",
		"width":  "width",
		"height": "height",
		"weight": "weight",
	} {
		value, ok := record.FirstFloat(item, []string{"item.package_dimensions." + redskyKey})
		if ok && value > 0 {
			attrs[recKey] = value
		}
	}
	return attrs
}

// technicalSpecs mines "Key: value" pairs out of the bullet descriptions.
// RedSky has no dedicated spec table; attributes like material and model
// number only appear as formatted bullets.
func (p *TargetParser) technicalSpecs(item models.Record) map[string]any {
	bullets, ok := record.Lookup(item, "item.product_description.bullet_descriptions")
	if !ok {
		return nil
	}
	list, ok := bullets.([]any)
	if !ok {
		return nil
	}

	specs := make(map[string]any)
	for _, entry := range list {
		text, ok := entry.(string)
		if !ok {
			continue
		}
		text = strings.TrimSpace(htmlTags.ReplaceAllString(text, ""))
		key, value, found := strings.Cut(text, ":")
		if !found || key == "" {
			continue
		}
		specs[normalizeSpecKey(key)] = strings.TrimSpace(value)
	}
	return specs
}

// variations flattens the variation hierarchy (color, size) into
// name-to-value form.
func (p *TargetParser) variations(item models.Record) map[string]any {
	hierarchy, ok := record.Lookup(item, "variation_hierarchy")
	if !ok {
		return nil
	}
	list, ok := hierarchy.([]any)
	if !ok {
		return nil
	}

	variations := make(map[string]any)
	for _, entry := range list {
		node, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := node["name"].(string)
		value, _ := node["value"].(string)
		if name == "" || value == "" {
			continue
		}
		if _, seen := variations[name]; !seen {
			variations[name] = value
		}
	}
	return variations
}

func (p *TargetParser) productDetails(item models.Record) map[string]any {
	details := make(map[string]any)

	if bullets, ok := record.Lookup(item, "item.product_description.soft_bullets.bullets"); ok {
		if list, ok := bullets.([]any); ok && len(list) > 0 {
			details["highlights"] = list
		}
	}

	if descriptions, ok := record.Lookup(item, "item.product_description.bullet_descriptions"); ok {
		if list, ok := descriptions.([]any); ok && len(list) > 0 {
			cleaned := make([]any, 0, len(list))
			for _, entry := range list {
				if text, ok := entry.(string); ok {
					cleaned = append(cleaned, strings.TrimSpace(htmlTags.ReplaceAllString(text, " ")))
				}
			}
			details["features"] = cleaned
		}
	}

	return details
}
