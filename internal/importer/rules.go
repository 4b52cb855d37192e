// Package importer implements the bulk product import pipeline: a spreadsheet
// parser, a rules-based brand/category classifier, and the orchestrator that
// turns parsed rows into catalog records.
package importer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// CategoryRule classifies a product description into a category. A rule
// matches only when every keyword is a case-insensitive substring of the
// description. Rules are evaluated in descending priority order; the first
// full match wins.
type CategoryRule struct {
	Name           string   `toml:"name"`
	Slug           string   `toml:"slug"`
	Description    string   `toml:"description"`
	ParentCategory string   `toml:"parent_category"`
	Keywords       []string `toml:"keywords"`
	Priority       int      `toml:"priority"`
	DDRTypes       bool     `toml:"ddr_types"`
}

// BrandRule maps a description to a brand. Patterns are tried in order; the
// first pattern of the first rule that matches wins. Rule order in the table
// is significant.
type BrandRule struct {
	Name     string
	Slug     string
	Patterns []*regexp.Regexp
}

type CategoryMatch struct {
	Name           string
	Slug           string
	ParentCategory string
}

type BrandMatch struct {
	Name string
	Slug string
}

// RuleSet holds the classification tables plus the defaults returned when no
// rule matches. Both detectors are total functions.
type RuleSet struct {
	categories      []CategoryRule
	brands          []BrandRule
	defaultCategory CategoryMatch
	defaultBrand    BrandMatch
}

// ddrTypes in detection order: the first token found in the description wins.
var ddrTypes = []string{"ddr5", "ddr4", "ddr3"}

func NewRuleSet(categories []CategoryRule, brands []BrandRule, defaultCategory CategoryMatch, defaultBrand BrandMatch) *RuleSet {
	sorted := make([]CategoryRule, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &RuleSet{
		categories:      sorted,
		brands:          brands,
		defaultCategory: defaultCategory,
		defaultBrand:    defaultBrand,
	}
}

// DetectCategory resolves a description to a category. DDR suffixing is
// applied when the matched rule opts in via DDRTypes and the description
// carries a DDR generation token.
func (rs *RuleSet) DetectCategory(description string) CategoryMatch {
	lower := strings.ToLower(description)

	var ddr string
	for _, t := range ddrTypes {
		if strings.Contains(lower, t) {
			ddr = t
			break
		}
	}

	for _, rule := range rs.categories {
		if !matchesAllKeywords(lower, rule.Keywords) {
			continue
		}
		match := CategoryMatch{
			Name:           rule.Name,
			Slug:           rule.Slug,
			ParentCategory: rule.ParentCategory,
		}
		if rule.DDRTypes && ddr != "" {
			match.Name = rule.Name + " " + strings.ToUpper(ddr)
			match.Slug = rule.Slug + "-" + ddr
		}
		return match
	}
	return rs.defaultCategory
}

func matchesAllKeywords(lowerDescription string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, keyword := range keywords {
		if !strings.Contains(lowerDescription, strings.ToLower(keyword)) {
			return false
		}
	}
	return true
}

// DetectBrand resolves a description to a brand, falling back to the default
// brand when no pattern matches.
func (rs *RuleSet) DetectBrand(description string) BrandMatch {
	for _, rule := range rs.brands {
		for _, pattern := range rule.Patterns {
			if pattern.MatchString(description) {
				return BrandMatch{Name: rule.Name, Slug: rule.Slug}
			}
		}
	}
	return rs.defaultBrand
}

// ruleConfig is the TOML shape for operator-supplied rule tables.
type ruleConfig struct {
	DefaultCategoryName string `toml:"default_category_name"`
	DefaultCategorySlug string `toml:"default_category_slug"`
	DefaultBrandName    string `toml:"default_brand_name"`
	DefaultBrandSlug    string `toml:"default_brand_slug"`

	Categories []CategoryRule `toml:"category"`
	Brands     []struct {
		Name     string   `toml:"name"`
		Slug     string   `toml:"slug"`
		Patterns []string `toml:"patterns"`
	} `toml:"brand"`
}

// LoadRuleSet reads a rule table from a TOML file. File-defined rules are
// evaluated ahead of the built-in ones: category rules compete on priority as
// usual, brand rules are prepended to the table.
func LoadRuleSet(filename string) (*RuleSet, error) {
	var cfg ruleConfig
	if _, err := toml.DecodeFile(filename, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load rules file: %w", err)
	}

	base := DefaultRuleSet()

	categories := append([]CategoryRule{}, cfg.Categories...)
	categories = append(categories, base.categories...)

	var brands []BrandRule
	for _, b := range cfg.Brands {
		rule := BrandRule{Name: b.Name, Slug: b.Slug}
		for _, p := range b.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q for brand %s: %w", p, b.Name, err)
			}
			rule.Patterns = append(rule.Patterns, re)
		}
		brands = append(brands, rule)
	}
	brands = append(brands, base.brands...)

	defaultCategory := base.defaultCategory
	if cfg.DefaultCategoryName != "" && cfg.DefaultCategorySlug != "" {
		defaultCategory = CategoryMatch{Name: cfg.DefaultCategoryName, Slug: cfg.DefaultCategorySlug}
	}
	defaultBrand := base.defaultBrand
	if cfg.DefaultBrandName != "" && cfg.DefaultBrandSlug != "" {
		defaultBrand = BrandMatch{Name: cfg.DefaultBrandName, Slug: cfg.DefaultBrandSlug}
	}

	return NewRuleSet(categories, brands, defaultCategory, defaultBrand), nil
}
