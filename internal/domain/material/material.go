package material

import (
	"fmt"
	"strings"
)

// Quality is the ordinal rank of a material or crafted item.
// Higher tiers satisfy requirements written against lower tiers.
type Quality int

const (
	QualityCommon Quality = iota
	QualityUncommon
	QualityRare
	QualityEpic
	QualityLegendary
)

// String returns the canonical upper-case name of the quality tier
func (q Quality) String() string {
	switch q {
	case QualityCommon:
		return "COMMON"
	case QualityUncommon:
		return "UNCOMMON"
	case QualityRare:
		return "RARE"
	case QualityEpic:
		return "EPIC"
	case QualityLegendary:
		return "LEGENDARY"
	default:
		return fmt.Sprintf("QUALITY(%d)", int(q))
	}
}

// IsValid returns true if the quality is a known tier
func (q Quality) IsValid() bool {
	return q >= QualityCommon && q <= QualityLegendary
}

// ParseQuality converts a tier name to a Quality. Case-insensitive.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "COMMON":
		return QualityCommon, nil
	case "UNCOMMON":
		return QualityUncommon, nil
	case "RARE":
		return QualityRare, nil
	case "EPIC":
		return QualityEpic, nil
	case "LEGENDARY":
		return QualityLegendary, nil
	default:
		return QualityCommon, fmt.Errorf("unknown quality tier: %q", s)
	}
}

// ClampQuality bounds a tier to the valid range
func ClampQuality(q Quality) Quality {
	if q < QualityCommon {
		return QualityCommon
	}
	if q > QualityLegendary {
		return QualityLegendary
	}
	return q
}

// Category classifies raw materials
type Category string

const (
	CategoryMetal   Category = "METAL"
	CategoryWood    Category = "WOOD"
	CategoryLeather Category = "LEATHER"
	CategoryCloth   Category = "CLOTH"
	CategoryGem     Category = "GEM"
	CategoryEssence Category = "ESSENCE"
)

// Categories returns all known material categories
func Categories() []Category {
	return []Category{
		CategoryMetal,
		CategoryWood,
		CategoryLeather,
		CategoryCloth,
		CategoryGem,
		CategoryEssence,
	}
}

// ParseCategory converts a category name to a Category. Case-insensitive.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown material category: %q", s)
}

// Instance is one reserved material tuple supplied by the inventory layer.
// The caller has already allocated it; this subsystem only validates and
// consumes it.
type Instance struct {
	ID       string
	Category Category
	Quality  Quality
}

// String provides human-readable representation
func (i Instance) String() string {
	return fmt.Sprintf("%s[%s %s]", i.ID, i.Quality, i.Category)
}
