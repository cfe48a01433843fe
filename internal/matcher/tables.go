package matcher

// Static, hand-curated lookup tables used by the categorical comparators.
// They are immutable after construction and injected into the scorer, so
// the scoring core stays pure and independently testable. Every lookup is a
// total function: anything not listed resolves to "no match".

// Tables bundles the curated vocabularies for one scorer instance.
type Tables struct {
	BrandAliases      map[string][]string
	RelatedTypeGroups [][]string
	TypeKeywords      map[string]bool
	CompoundMarkers   []string
	ProductVocabulary map[string]bool
	Compatibility     map[string]map[string][]string
	StopWords         map[string]bool
}

// DefaultTables returns the built-in curated tables.
func DefaultTables() *Tables {
	return &Tables{
		BrandAliases:      brandAliases,
		RelatedTypeGroups: relatedTypeGroups,
		TypeKeywords:      typeKeywords,
		CompoundMarkers:   compoundMarkers,
		ProductVocabulary: productVocabulary,
		Compatibility:     compatibilityGroups,
		StopWords:         stopWords,
	}
}

// brandAliases maps canonical brand names to known variations across
// marketplaces (legal suffixes, spacing, abbreviations).
var brandAliases = map[string][]string{
	// Tech
	"amazon basics": {"amazonbasics", "amazon", "basics"},
	"apple":         {"apple inc", "apple computer"},
	"samsung":       {"samsung electronics", "samsung group"},
	"google":        {"google llc", "alphabet"},
	"microsoft":     {"microsoft corporation", "msft"},
	"sony":          {"sony corporation", "sony group"},
	"lg":            {"lg electronics", "lg corp"},
	"hp":            {"hewlett-packard", "hewlett packard"},
	"dell":          {"dell technologies", "dell inc"},
	"lenovo":        {"lenovo group"},

	// Furniture
	"best office": {"bestoffice"},
	"ikea":        {"ikea group"},
	"wayfair":     {"wayfair llc"},

	// Fashion
	"nike":         {"nike inc"},
	"adidas":       {"adidas ag"},
	"under armour": {"underarmour"},

	// Home & kitchen
	"cuisinart":    {"conair cuisinart"},
	"kitchenaid":   {"kitchen aid"},
	"black decker": {"black & decker", "blackdecker"},

	// Generic marketing variants
	"pro":   {"professional"},
	"max":   {"maximum"},
	"ultra": {"ultra-"},
	"plus":  {"+"},
}

// relatedTypeGroups clusters product types that describe the same kind of
// item under different names. Partial category credit is given when both
// sides land in the same group.
var relatedTypeGroups = [][]string{
	{"chair", "seat", "stool", "bench"},
	{"table", "desk", "workstation", "stand"},
	{"phone", "smartphone", "mobile", "cell phone"},
	{"laptop", "notebook", "computer", "pc"},
	{"headphone", "headset", "earphone", "earbuds"},
	{"speaker", "soundbar", "audio", "sound system"},
	{"mouse", "trackball", "touchpad", "pointing device"},
	{"keyboard", "keypad", "input device"},
	{"monitor", "display", "screen", "lcd", "led"},
	{"tablet", "ipad", "android tablet", "slate"},
	{"camera", "webcam", "camcorder", "video camera"},
	{"watch", "smartwatch", "fitness tracker", "wearable"},
	{"bag", "backpack", "case", "pouch", "sleeve"},
	{"cable", "cord", "wire", "connector"},
	{"charger", "adapter", "power supply", "battery"},
	{"light", "lamp", "led", "bulb", "lighting"},
	{"tool", "equipment", "instrument", "device"},
}

// typeKeywords are single words that usually name the product itself when
// they appear in a listing title.
var typeKeywords = map[string]bool{
	"chair": true, "table": true, "phone": true, "laptop": true, "book": true,
	"speaker": true, "headphone": true, "mouse": true, "keyboard": true,
	"monitor": true, "tablet": true, "camera": true, "watch": true, "bag": true,
	"case": true, "cable": true, "charger": true, "stand": true, "holder": true,
	"rack": true, "shelf": true, "light": true, "lamp": true, "fan": true,
	"heater": true, "cooler": true, "bottle": true, "cup": true, "mug": true,
	"tool": true, "drill": true, "saw": true, "hammer": true,
	"screwdriver": true, "wrench": true, "kit": true, "game": true,
	"controller": true, "console": true, "tv": true, "remote": true,
	"adapter": true,
}

// compoundMarkers qualify a following noun into a compound product type
// ("office chair", "gaming mouse").
var compoundMarkers = []string{
	"office", "gaming", "wireless", "bluetooth", "smart", "digital",
	"electric", "manual", "portable", "desktop", "mobile",
}

// productVocabulary is the broad fixed vocabulary of product type indicators
// spanning the marketplaces' major departments. Used by the compatibility
// comparator.
var productVocabulary = buildSet(
	// Electronics
	"electronics", "electronic", "digital", "smart", "wireless", "bluetooth",
	"phone", "smartphone", "mobile", "iphone", "android", "cell",
	"laptop", "computer", "pc", "desktop", "notebook", "macbook",
	"tablet", "ipad", "kindle", "e-reader",
	"headphone", "headphones", "headset", "earphones", "earbuds",
	"speaker", "speakers", "soundbar", "audio", "bluetooth speaker",
	"mouse", "keyboard", "monitor", "display", "screen",
	"camera", "webcam", "gopro", "camcorder",
	"watch", "smartwatch", "fitness", "tracker", "fitbit", "apple watch",
	"charger", "cable", "adapter", "power", "battery", "charging",

	// Furniture & home
	"chair", "table", "desk", "bed", "sofa", "couch", "dresser", "cabinet",
	"office", "gaming", "ergonomic", "executive", "task", "swivel",
	"dining", "coffee", "side", "end", "nightstand", "bookshelf",

	// Clothing & accessories
	"shirt", "pants", "dress", "jacket", "shoes", "boots", "sneakers",
	"bag", "backpack", "purse", "wallet", "belt", "hat", "cap",
	"jewelry", "necklace", "bracelet", "ring",

	// Kitchen & dining
	"kitchen", "cooking", "baking",
	"pot", "pan", "knife", "spoon", "fork", "plate", "bowl", "cup", "mug",
	"blender", "mixer", "toaster", "microwave", "oven", "refrigerator",

	// Sports & outdoors
	"sports", "outdoor", "camping", "hiking", "running",
	"bike", "bicycle", "skateboard", "scooter",
	"ball", "basketball", "football", "soccer", "tennis", "baseball",

	// Tools & hardware
	"tool", "tools", "drill", "saw", "hammer", "screwdriver", "wrench",
	"kit", "set", "toolbox", "hardware", "equipment",

	// Books & media
	"book", "books", "novel", "textbook", "magazine", "comic",
	"movie", "dvd", "blu-ray", "cd", "vinyl", "record",
	"game", "games", "video game", "board game", "puzzle",

	// Health & beauty
	"health", "beauty", "skincare", "makeup", "cosmetic",
	"shampoo", "soap", "lotion", "cream", "serum",
	"vitamin", "supplement", "medicine", "first aid",

	// Automotive
	"car", "auto", "automotive", "vehicle", "truck", "motorcycle",
	"tire", "wheel", "oil", "parts", "accessory",
)

// compatibilityGroups arranges the vocabulary into top-level departments and
// tighter subgroups. A shared subgroup scores higher than merely sharing the
// department.
var compatibilityGroups = map[string]map[string][]string{
	"electronics": {
		"mobile_devices": {"phone", "smartphone", "mobile", "iphone", "android", "cell", "tablet", "ipad"},
		"computers":      {"laptop", "computer", "pc", "desktop", "notebook", "macbook"},
		"audio":          {"headphone", "headphones", "headset", "earphones", "earbuds", "speaker", "speakers", "soundbar", "audio"},
		"peripherals":    {"mouse", "keyboard", "monitor", "display", "screen"},
		"accessories":    {"charger", "cable", "adapter", "power", "battery", "charging", "case"},
		"wearables":      {"watch", "smartwatch", "fitness", "tracker", "fitbit"},
	},
	"furniture": {
		"seating": {"chair", "sofa", "couch", "bench", "stool", "seat"},
		"tables":  {"table", "desk", "dining", "coffee", "side", "end", "nightstand"},
		"office":  {"office", "desk", "chair", "gaming", "ergonomic", "executive", "task"},
		"storage": {"dresser", "cabinet", "bookshelf", "shelf", "rack"},
	},
	"apparel": {
		"clothing":    {"shirt", "pants", "dress", "jacket", "clothes"},
		"footwear":    {"shoes", "boots", "sneakers", "sandals"},
		"accessories": {"bag", "backpack", "purse", "wallet", "belt", "hat", "cap"},
	},
	"kitchen": {
		"cookware":   {"pot", "pan", "skillet", "wok"},
		"utensils":   {"knife", "spoon", "fork", "spatula"},
		"appliances": {"blender", "mixer", "toaster", "microwave", "oven"},
		"dinnerware": {"plate", "bowl", "cup", "mug", "glass"},
	},
}

// stopWords are dropped during title normalization.
var stopWords = buildSet(
	"for", "with", "and", "the", "a", "an", "in", "on", "at", "by", "of",
	"to", "from",
)

func buildSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
