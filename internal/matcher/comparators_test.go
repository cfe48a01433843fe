package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZaryabShah/matching-score/internal/models"
)

func TestCompareIdentifiers(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name   string
		source models.Record
		target models.Record
		want   float64
	}{
		{
			name:   "exact match flat paths",
			source: models.Record{"upc": "012345678905"},
			target: models.Record{"upc": "012345678905"},
			want:   100,
		},
		{
			name:   "match across differently shaped records",
			source: models.Record{"specifications": map[string]any{"upc": "012345678905"}},
			target: models.Record{"basic_info": map[string]any{"upc": "012345678905"}},
			want:   100,
		},
		{
			name:   "whitespace and case normalized",
			source: models.Record{"upc": " 012345678905 "},
			target: models.Record{"upc": "012345678905"},
			want:   100,
		},
		{
			name:   "different identifiers",
			source: models.Record{"upc": "012345678905"},
			target: models.Record{"upc": "112345678905"},
			want:   0,
		},
		{
			name:   "too short to be trusted",
			source: models.Record{"upc": "12345678"},
			target: models.Record{"upc": "12345678"},
			want:   0,
		},
		{
			name:   "missing on one side",
			source: models.Record{"upc": "012345678905"},
			target: models.Record{},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.compareIdentifiers(tt.source, tt.target))
		})
	}
}

func TestCompareModel(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name   string
		source string
		target string
		want   float64
	}{
		{"exact match", "WX-4400", "wx-4400", 80},
		{"substring match", "WX-4400", "WX-4400-B", 56},
		{"no relation", "WX-4400", "ZK-9100", 0},
		{"too short", "X1", "X1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := models.Record{"model": tt.source}
			tgt := models.Record{"basic_info": map[string]any{"model_number": tt.target}}
			assert.InDelta(t, tt.want, s.compareModel(src, tgt), 0.0001)
		})
	}
}

func TestCompareBrand(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name   string
		source string
		target string
		want   float64
	}{
		{"exact match", "BestOffice", "bestoffice", 40},
		{"alias table", "best office", "bestoffice", 32},
		{"legal suffix alias", "Samsung", "Samsung Electronics", 32},
		{"containment", "Logitech", "Logitech G", 32},
		{"initials abbreviation", "Herman Miller", "HM", 32},
		{"unrelated brands", "Nike", "Adidas", 0},
		{"missing side", "", "Nike", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := models.Record{"brand": tt.source}
			tgt := models.Record{"basic_info": map[string]any{"brand": tt.target}}
			assert.InDelta(t, tt.want, s.compareBrand(src, tgt), 0.0001)
		})
	}
}

func TestCompareTitleBands(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name   string
		source string
		target string
		want   float64
	}{
		{
			"near identical titles",
			"Home Office Chair Ergonomic Desk Chair Mesh Computer Chair",
			"Home Office Chair Ergonomic Desk Chair",
			70,
		},
		{
			"single shared meaningful word",
			"X Rocker Racing Gaming Chair Footrest Recliner",
			"Mid Back Mesh Office Chair Black",
			15,
		},
		{
			"no overlap at all",
			"Stainless Steel Water Bottle",
			"Leather Wallet Bifold",
			0,
		},
		{
			"one side empty",
			"",
			"Office Chair",
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := models.Record{"title": tt.source}
			tgt := models.Record{"basic_info": map[string]any{"name": tt.target}}
			assert.Equal(t, tt.want, s.compareTitle(src, tgt))
		})
	}
}

func dimRecord(length, width, height any) models.Record {
	return models.Record{
		"physical_attributes": map[string]any{
			"length": length,
			"width":  width,
			"height": height,
		},
	}
}

func TestCompareDimensions(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name   string
		source models.Record
		target models.Record
		want   float64
	}{
		{
			"exact match",
			dimRecord(20.0, 20.0, 30.0),
			dimRecord(20.0, 20.0, 30.0),
			60,
		},
		{
			"within five percent",
			dimRecord(20.0, 20.0, 30.0),
			dimRecord(20.0, 20.0, 31.4),
			40,
		},
		{
			"outside tolerance",
			dimRecord(20.0, 20.0, 30.0),
			dimRecord(20.0, 20.0, 33.0),
			0,
		},
		{
			"string values coerced",
			dimRecord("20 in", "20", "30.0"),
			dimRecord(20.0, 20.0, 30.0),
			60,
		},
		{
			"only one dimension present",
			models.Record{"physical_attributes": map[string]any{"length": 20.0}},
			dimRecord(20.0, 20.0, 30.0),
			0,
		},
		{
			"missing entirely",
			models.Record{},
			dimRecord(20.0, 20.0, 30.0),
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.compareDimensions(tt.source, tt.target))
		})
	}
}

func TestCompareWeightBoundaries(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name   string
		source any
		target any
		want   float64
	}{
		{"identical", 10.0, 10.0, 50},
		{"nine percent apart", 10.0, 10.9, 30},
		{"eleven percent apart", 10.0, 11.1, 0},
		{"unit-suffixed strings", "10.0 pounds", "10.9 lbs", 30},
		{"malformed value", "heavy", 10.0, 0},
		{"missing side", nil, 10.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := models.Record{}
			if tt.source != nil {
				src["weight"] = tt.source
			}
			tgt := models.Record{"physical_attributes": map[string]any{"weight": tt.target}}
			assert.Equal(t, tt.want, s.compareWeight(src, tgt))
		})
	}
}

func TestComparePriceBoundaries(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name   string
		source any
		target any
		want   float64
	}{
		{"nineteen percent apart awards", 100.0, 119.0, 25},
		{"twenty-one percent apart does not", 100.0, 121.0, 0},
		{"currency strings", "$38.97", "$39.99", 25},
		{"malformed price", "call for price", 100.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := models.Record{"price": tt.source}
			tgt := models.Record{"pricing": map[string]any{"current_price": tt.target}}
			assert.Equal(t, tt.want, s.comparePrice(src, tgt))
		})
	}
}

func TestCompareCategory(t *testing.T) {
	s := NewScorer()

	t.Run("direct breadcrumb overlap", func(t *testing.T) {
		src := models.Record{"categories": []any{"Furniture", "Office Chairs"}}
		tgt := models.Record{"breadcrumbs": []any{"office chairs", "Home"}}
		assert.Equal(t, 20.0, s.compareCategory(src, tgt))
	})

	t.Run("shared product type mined from titles", func(t *testing.T) {
		src := models.Record{"title": "Ergonomic Gaming Chair with Lumbar Support"}
		tgt := models.Record{"basic_info": map[string]any{"name": "Swivel Office Chair Adjustable"}}
		assert.Equal(t, 20.0, s.compareCategory(src, tgt))
	})

	t.Run("related type group", func(t *testing.T) {
		src := models.Record{"title": "Desk Riser Adjustable"}
		tgt := models.Record{"title": "Folding Table Portable"}
		assert.InDelta(t, 14.0, s.compareCategory(src, tgt), 0.0001)
	})

	t.Run("unrelated products", func(t *testing.T) {
		src := models.Record{"title": "Vitamin Gummies"}
		tgt := models.Record{"title": "Snow Shovel"}
		assert.Equal(t, 0.0, s.compareCategory(src, tgt))
	})
}

func TestCompareColorAndMaterial(t *testing.T) {
	s := NewScorer()

	t.Run("color exact case-insensitive", func(t *testing.T) {
		src := models.Record{"color": "Black"}
		tgt := models.Record{"variations": map[string]any{"color": "black"}}
		assert.Equal(t, 15.0, s.compareColor(src, tgt))
	})

	t.Run("color mismatch", func(t *testing.T) {
		src := models.Record{"color": "Black"}
		tgt := models.Record{"color": "Gray"}
		assert.Equal(t, 0.0, s.compareColor(src, tgt))
	})

	t.Run("material set intersection", func(t *testing.T) {
		src := models.Record{"material": "Mesh"}
		tgt := models.Record{"product_details": map[string]any{"materials": []any{"mesh", "steel"}}}
		assert.Equal(t, 15.0, s.compareMaterial(src, tgt))
	})

	t.Run("material disjoint", func(t *testing.T) {
		src := models.Record{"material": "Leather"}
		tgt := models.Record{"material": "Plastic"}
		assert.Equal(t, 0.0, s.compareMaterial(src, tgt))
	})
}

func TestCompareFeatures(t *testing.T) {
	t.Run("five points per shared keyword", func(t *testing.T) {
		s := NewScorer()
		src := models.Record{"features": []any{"adjustable height", "lumbar support", "tilt lock"}}
		tgt := models.Record{"product_details": map[string]any{
			"highlights": []any{"lumbar support", "adjustable height", "headrest"},
		}}
		assert.Equal(t, 10.0, s.compareFeatures(src, tgt))
	})

	t.Run("short and numeric tokens filtered", func(t *testing.T) {
		s := NewScorer()
		src := models.Record{"features": []any{"usb", "12345", "fast charging"}}
		tgt := models.Record{"features": []any{"usb", "12345", "fast charging"}}
		assert.Equal(t, 5.0, s.compareFeatures(src, tgt))
	})

	t.Run("cap bounds the signal", func(t *testing.T) {
		features := make([]any, 0, 12)
		for _, f := range []string{
			"alpha one", "bravo two", "charlie three", "delta four",
			"echo five", "foxtrot six", "golf seven", "hotel eight",
			"india nine", "juliet ten", "kilo eleven", "lima twelve",
		} {
			features = append(features, f)
		}
		src := models.Record{"features": features}
		tgt := models.Record{"features": features}

		capped := NewScorer()
		assert.Equal(t, 50.0, capped.compareFeatures(src, tgt))

		uncappedWeights := DefaultWeights()
		uncappedWeights.FeatureCap = 0
		uncapped := NewScorer(WithWeights(uncappedWeights))
		assert.Equal(t, 60.0, uncapped.compareFeatures(src, tgt))
	})
}

func TestCompareCompatibility(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name   string
		source string
		target string
		want   float64
	}{
		{"direct shared keyword", "Racing Gaming Chair", "Mesh Office Chair", 35},
		{"same subgroup", "Android Smartphone Unlocked", "Apple Tablet WiFi", 30},
		{"same department only", "Wireless Mouse Ergonomic", "Phone Fast Charger", 20},
		{"no types on one side", "Mystery Item", "Office Chair", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := models.Record{"title": tt.source}
			tgt := models.Record{"basic_info": map[string]any{"name": tt.target}}
			assert.Equal(t, tt.want, s.compareCompatibility(src, tgt))
		})
	}
}

func TestRelativeDiffUsesSmallerDenominator(t *testing.T) {
	assert.InDelta(t, 0.21, relativeDiff(100, 121), 0.0001)
	assert.InDelta(t, 0.21, relativeDiff(121, 100), 0.0001)
}
