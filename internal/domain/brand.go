package domain

import "strings"

// Brand - метка оператора area di servizio.
// Известные значения перечислены ниже, но удалённый источник может вернуть любую строку.
type Brand string

const (
	BrandAutogrill   Brand = "Autogrill"
	BrandChefExpress Brand = "Chef Express"
	BrandSarni       Brand = "Sarni"
	BrandOther       Brand = "Altro"
)

// BrandAll matches every area regardless of its brand.
const BrandAll = "ALL"

// brandAllLegacy - значение чипа "Tutti" из мобильного приложения
const brandAllLegacy = "Tutti"

const DefaultBrandColor = "#006633"

var brandColors = map[Brand]string{
	BrandAutogrill:   "#E21937",
	BrandChefExpress: "#F47B20",
	BrandSarni:       "#FFC220",
}

// KnownBrands returns the fixed brand vocabulary in display order.
func KnownBrands() []Brand {
	return []Brand{BrandAutogrill, BrandChefExpress, BrandSarni, BrandOther}
}

// IsKnown reports whether b belongs to the fixed vocabulary.
func (b Brand) IsKnown() bool {
	switch b {
	case BrandAutogrill, BrandChefExpress, BrandSarni, BrandOther:
		return true
	}
	return false
}

// Color возвращает цвет пина бренда, для неизвестных брендов - цвет по умолчанию
func (b Brand) Color() string {
	if c, ok := brandColors[b]; ok {
		return c
	}
	return DefaultBrandColor
}

// NormalizeBrand maps a raw operator/brand tag to the vocabulary.
// Matching is a case-insensitive substring test, anything else is BrandOther.
func NormalizeBrand(raw string) Brand {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "autogrill"):
		return BrandAutogrill
	case strings.Contains(s, "chef express"):
		return BrandChefExpress
	case strings.Contains(s, "sarni"):
		return BrandSarni
	default:
		return BrandOther
	}
}

// IsAllBrands reports whether the filter value selects every brand.
// Any other value, including "", is matched exactly.
func IsAllBrands(filter string) bool {
	return filter == BrandAll || filter == brandAllLegacy
}
