package styles

import (
	"regexp"
	"strings"
)

// Style text is matched textually, not parsed as a stylesheet: the input is
// whatever a scraped page carries in <style> blocks and style attributes,
// and a permissive scan survives the broken CSS found in the wild.
var (
	hexColorRe = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b`)
	rgbColorRe = regexp.MustCompile(`(?i)rgba?\([^)]+\)`)
	hslColorRe = regexp.MustCompile(`(?i)hsla?\([^)]+\)`)

	// Named colors are only captured as the value of these five properties.
	// A bare color word anywhere else (e.g. "border: 1px solid red") is
	// deliberately not captured.
	namedColorRe = regexp.MustCompile(`(?i)\b(color|background-color|border-color|fill|stroke)\s*:\s*([a-z]+)\b`)

	fontFamilyRe = regexp.MustCompile(`(?i)font-family\s*:\s*([^;]+)`)
)

// cssWideValues are keywords a named-color match must not capture.
// The comparison is exact: the post-count noise filter handles the
// case-insensitive variants it knows about.
var cssWideValues = map[string]bool{
	"inherit":      true,
	"initial":      true,
	"unset":        true,
	"transparent":  true,
	"currentColor": true,
}

// extractColors pulls raw color tokens out of style text: hex codes,
// rgb()/rgba() and hsl()/hsla() notation, then property-qualified named
// colors. Duplicates across patterns are all kept; counting happens later.
func extractColors(styleText string) []string {
	var colors []string

	colors = append(colors, hexColorRe.FindAllString(styleText, -1)...)
	colors = append(colors, rgbColorRe.FindAllString(styleText, -1)...)
	colors = append(colors, hslColorRe.FindAllString(styleText, -1)...)

	for _, loc := range namedColorRe.FindAllStringSubmatchIndex(styleText, -1) {
		val := styleText[loc[4]:loc[5]]
		// Functional notation (rgba(...), var(...), url(...)) is not a
		// named color; the functional matchers above already handled it.
		if loc[5] < len(styleText) && styleText[loc[5]] == '(' {
			continue
		}
		if !cssWideValues[val] {
			colors = append(colors, val)
		}
	}

	return colors
}

// extractFonts pulls individual family names out of every font-family
// declaration: the value list up to the next semicolon, split on commas,
// each name trimmed of whitespace and surrounding quotes.
func extractFonts(styleText string) []string {
	var fonts []string
	for _, m := range fontFamilyRe.FindAllStringSubmatch(styleText, -1) {
		for _, name := range strings.Split(m[1], ",") {
			name = strings.TrimSpace(name)
			name = strings.Trim(name, `"`)
			name = strings.Trim(name, `'`)
			fonts = append(fonts, name)
		}
	}
	return fonts
}
