package importer

import (
	"strings"
	"unicode"
)

// ProductInfo is everything the orchestrator needs to persist one row.
type ProductInfo struct {
	Brand           string
	BrandSlug       string
	ProductName     string
	Category        string
	CategorySlug    string
	ParentCategory  string
	Slug            string
	FullDescription string
}

const maxProductNameLen = 50

// Extract derives a clean product name, brand, category and slug from a raw
// description and part number. It always succeeds given well-formed strings.
func (rs *RuleSet) Extract(description, partNo string) ProductInfo {
	brand := rs.DetectBrand(description)

	name := stripLeadingBrand(description, brand.Name)
	if idx := strings.Index(name, ","); idx >= 0 {
		name = name[:idx]
	} else {
		name = truncate(name, maxProductNameLen)
	}
	name = strings.TrimSpace(name)

	category := rs.DetectCategory(description)

	return ProductInfo{
		Brand:           brand.Name,
		BrandSlug:       brand.Slug,
		ProductName:     name,
		Category:        category.Name,
		CategorySlug:    category.Slug,
		ParentCategory:  category.ParentCategory,
		Slug:            brand.Slug + "-" + SlugifyPartNo(partNo),
		FullDescription: description,
	}
}

// stripLeadingBrand removes a leading, whitespace-terminated occurrence of
// the brand name, case-insensitively.
func stripLeadingBrand(description, brandName string) string {
	if brandName == "" || len(description) <= len(brandName) {
		return description
	}
	prefix := description[:len(brandName)]
	if !strings.EqualFold(prefix, brandName) {
		return description
	}
	rest := description[len(brandName):]
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if trimmed == rest {
		// Brand name not followed by whitespace; leave the description alone.
		return description
	}
	return trimmed
}

// SlugifyPartNo lowercases a part number and replaces every run of
// non-alphanumeric characters with a hyphen.
func SlugifyPartNo(partNo string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(partNo)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// SlugifyName turns a display name into a slug: lowercase, spaces and other
// separators collapsed into hyphens. Used for parent-category resolution and
// admin-created records.
func SlugifyName(name string) string {
	return SlugifyPartNo(name)
}
