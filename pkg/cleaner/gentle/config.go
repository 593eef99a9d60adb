// Package gentle implements a rule-based HTML page cleaner.
// It strips tracking scripts, SEO metadata, consent widgets and cosmetic
// cruft from a downloaded page while deliberately preserving navigation
// structure (menus, dropdowns, hamburger toggles).
package gentle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds every deny-list and threshold the cleaner consults.
// The lists are data, not code: they can be extended from a rules file
// without touching the traversal logic.
type Config struct {
	// === Blunt removals ===

	// UnwantedTags are removed outright together with their subtrees.
	UnwantedTags []string `json:"unwanted_tags" yaml:"unwanted_tags" validate:"dive,required"`

	// HeaderKeepClasses spare a <header> from removal when its class string
	// contains any of these fragments (a <nav> descendant also spares it).
	HeaderKeepClasses []string `json:"header_keep_classes" yaml:"header_keep_classes"`

	// === Script filtering ===

	// TrackerFragments are matched case-insensitively against script src
	// attributes. Any hit removes the script.
	TrackerFragments []string `json:"tracker_fragments" yaml:"tracker_fragments" validate:"dive,required"`

	// ScriptIDFragments are matched against script id attributes.
	ScriptIDFragments []string `json:"script_id_fragments" yaml:"script_id_fragments"`

	// InlineScriptMarkers are literal substrings of inline script text that
	// identify tracking bootstrap code.
	InlineScriptMarkers []string `json:"inline_script_markers" yaml:"inline_script_markers"`

	// === Browser extension artifacts ===

	// ExtensionTags are element names injected by browser extensions.
	ExtensionTags []string `json:"extension_tags" yaml:"extension_tags"`

	// ExtensionClassMarkers are matched as substrings of class attributes.
	ExtensionClassMarkers []string `json:"extension_class_markers" yaml:"extension_class_markers"`

	// === Link / meta pruning ===

	// ResourceHintRels removes <link> elements whose rel carries one of
	// these tokens (performance hints).
	ResourceHintRels []string `json:"resource_hint_rels" yaml:"resource_hint_rels"`

	// SEORels removes <link> elements whose rel carries one of these
	// tokens (SEO metadata).
	SEORels []string `json:"seo_rels" yaml:"seo_rels"`

	// === Consent / banner removal ===

	// ConsentIDs name consent-manager containers removed by exact id.
	// Only the first element per id is removed.
	ConsentIDs []string `json:"consent_ids" yaml:"consent_ids"`

	// BannerClassTokens remove elements whose class token list contains
	// exactly one of these tokens.
	BannerClassTokens []string `json:"banner_class_tokens" yaml:"banner_class_tokens"`

	// === Attribute stripping ===

	// NoiseAttributes are removed from every element unconditionally
	// (form-validation and component-tagging metadata).
	NoiseAttributes []string `json:"noise_attributes" yaml:"noise_attributes"`

	// IconAttributes are icon-font data attributes removed only outside
	// navigation; menu icons keep them.
	IconAttributes []string `json:"icon_attributes" yaml:"icon_attributes"`

	// ToggleAttributes are component-framework toggle attributes removed
	// only outside navigation; dropdown behavior depends on them.
	ToggleAttributes []string `json:"toggle_attributes" yaml:"toggle_attributes"`

	// === Navigation detection ===

	// NavTags are element names that mark a navigation region.
	NavTags []string `json:"nav_tags" yaml:"nav_tags" validate:"dive,required"`

	// NavClassFragments mark a navigation region when found as a SUBSTRING
	// of an ancestor's class string. The loose match is intentional: it
	// catches navbar-brand, offcanvas-menu and friends.
	NavClassFragments []string `json:"nav_class_fragments" yaml:"nav_class_fragments"`

	// NavIDs mark a navigation region by exact ancestor id.
	NavIDs []string `json:"nav_ids" yaml:"nav_ids"`

	// === Thresholds ===

	// MinTextRunes is the text length below which hidden or display:none
	// elements are considered decorative and removed. Tunable, not a law.
	MinTextRunes int `json:"min_text_runes" yaml:"min_text_runes" validate:"gte=0"`

	// Debug enables per-rule debug logging.
	Debug bool `json:"debug" yaml:"debug"`
}

// DefaultConfig returns the stock deny-lists. The vendor strings were
// collected from real scraped pages; extend them via Merge or a rules file.
func DefaultConfig() *Config {
	return &Config{
		UnwantedTags: []string{"style", "footer", "iframe", "noscript"},

		HeaderKeepClasses: []string{"nav", "navigation", "menu", "header-nav"},

		TrackerFragments: []string{
			"analytics", "gtag", "google-analytics", "googletagmanager",
			"facebook.net", "fbevents", "connect.facebook",
			"linkedin.com", "li.lms-analytics",
			"reddit", "pixel",
			"pinterest", "pintrk",
			"tiq.sunlife", "utag", "tealium",
			"cookielaw", "onetrust",
			"decibelinsight",
			"go-mpulse", "boomerang",
			"chrome-extension://",
			"coveo",
		},
		ScriptIDFragments: []string{"utag"},
		InlineScriptMarkers: []string{
			"BOOMR", "utag_data", "fbq(", "gtag(", "_linkedin_data_partner_ids",
		},

		ExtensionTags: []string{
			"grammarly-desktop-integration",
			"simplify-jobs-page-script",
		},
		ExtensionClassMarkers: []string{"apolloio", "extension-opener", "simplify-jobs"},

		ResourceHintRels: []string{"preload", "prefetch"},
		SEORels:          []string{"canonical", "alternate"},

		ConsentIDs: []string{
			"onetrust-consent-sdk", "onetrust-banner-sdk", "onetrust-pc-sdk",
		},
		BannerClassTokens: []string{"cookie", "banner"},

		NoiseAttributes: []string{
			"data-sl-aem-component", "data-sl-component", "data-cmp-hook-accordion",
			"data-class", "data-class-icon",
			"data-parsley-validate", "data-parsley-error-message",
			"data-parsley-id", "data-parsley-pattern", "data-parsley-pattern-message",
			"data-parsley-required", "data-parsley-required-message", "data-single-expansion",
			"data-title", "data-cy", "data-grammarly-shadow-root",
		},
		IconAttributes:   []string{"data-fa-i2svg", "data-icon", "data-prefix"},
		ToggleAttributes: []string{"data-bs-target", "data-bs-toggle", "data-bs-dismiss"},

		NavTags:           []string{"nav", "header"},
		NavClassFragments: []string{"nav", "navigation", "menu", "navbar", "sl-nav", "offcanvas"},
		NavIDs: []string{
			"nav-header", "sl-nav", "sl-header-offcanvas", "menuOpen", "menuClose",
		},

		MinTextRunes: 10,
	}
}

// Merge merges another config into this one and returns the result.
// List values from other are appended (deduplicated); a positive
// MinTextRunes and Debug=true override.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	merged := *c

	merged.UnwantedTags = appendUnique(merged.UnwantedTags, other.UnwantedTags)
	merged.HeaderKeepClasses = appendUnique(merged.HeaderKeepClasses, other.HeaderKeepClasses)
	merged.TrackerFragments = appendUnique(merged.TrackerFragments, other.TrackerFragments)
	merged.ScriptIDFragments = appendUnique(merged.ScriptIDFragments, other.ScriptIDFragments)
	merged.InlineScriptMarkers = appendUnique(merged.InlineScriptMarkers, other.InlineScriptMarkers)
	merged.ExtensionTags = appendUnique(merged.ExtensionTags, other.ExtensionTags)
	merged.ExtensionClassMarkers = appendUnique(merged.ExtensionClassMarkers, other.ExtensionClassMarkers)
	merged.ResourceHintRels = appendUnique(merged.ResourceHintRels, other.ResourceHintRels)
	merged.SEORels = appendUnique(merged.SEORels, other.SEORels)
	merged.ConsentIDs = appendUnique(merged.ConsentIDs, other.ConsentIDs)
	merged.BannerClassTokens = appendUnique(merged.BannerClassTokens, other.BannerClassTokens)
	merged.NoiseAttributes = appendUnique(merged.NoiseAttributes, other.NoiseAttributes)
	merged.IconAttributes = appendUnique(merged.IconAttributes, other.IconAttributes)
	merged.ToggleAttributes = appendUnique(merged.ToggleAttributes, other.ToggleAttributes)
	merged.NavTags = appendUnique(merged.NavTags, other.NavTags)
	merged.NavClassFragments = appendUnique(merged.NavClassFragments, other.NavClassFragments)
	merged.NavIDs = appendUnique(merged.NavIDs, other.NavIDs)

	if other.MinTextRunes > 0 {
		merged.MinTextRunes = other.MinTextRunes
	}
	if other.Debug {
		merged.Debug = true
	}

	return &merged
}

// appendUnique appends entries from add that base does not already contain.
func appendUnique(base, add []string) []string {
	if len(add) == 0 {
		return base
	}
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base)+len(add))
	for _, s := range base {
		seen[s] = true
		out = append(out, s)
	}
	for _, s := range add {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	return out
}

// FromFile loads config overrides from a JSON or YAML rules file.
// The result is meant to be merged onto DefaultConfig.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing JSON rules file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML rules file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported rules file extension: %s", filepath.Ext(path))
	}

	return &cfg, nil
}

// Validate checks the config for structural problems.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid cleaner config: %w", err)
	}
	return nil
}
