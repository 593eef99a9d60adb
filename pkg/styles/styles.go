// Package styles profiles a page's visual design tokens. It scans style
// blocks, inline style attributes and SVG presentation attributes for color
// and font usage, and records external stylesheet references.
//
// The scan is textual: no cascade resolution, no computed styles.
package styles

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// noiseColors never make it into the final table.
var noiseColors = map[string]bool{
	"none":         true,
	"transparent":  true,
	"inherit":      true,
	"currentcolor": true,
}

// genericFonts are CSS generic family keywords, excluded from the final
// table because they say nothing about the page's design.
var genericFonts = map[string]bool{
	"serif":      true,
	"sans-serif": true,
	"monospace":  true,
	"cursive":    true,
	"fantasy":    true,
	"system-ui":  true,
}

// Analysis is the profiled design-token usage of one page.
type Analysis struct {
	Colors *Frequency `json:"colors" yaml:"colors"`
	Fonts  *Frequency `json:"fonts" yaml:"fonts"`

	// Stylesheets lists external stylesheet hrefs in order of appearance.
	// Duplicates are kept.
	Stylesheets []string `json:"stylesheets" yaml:"stylesheets"`
}

// Analyze parses markup and profiles its colors, fonts and stylesheet
// references.
func Analyze(markup string) (*Analysis, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	return AnalyzeDocument(doc), nil
}

// AnalyzeDocument profiles an already parsed document.
//
// Four sources feed the token lists: <style> text, inline style attributes,
// link rel=stylesheet hrefs, and the fill/stroke attributes of every <svg>
// and its descendants (taken verbatim, no pattern matching).
func AnalyzeDocument(doc *goquery.Document) *Analysis {
	var rawColors, rawFonts []string
	var stylesheets []string

	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		rawColors = append(rawColors, extractColors(text)...)
		rawFonts = append(rawFonts, extractFonts(text)...)
	})

	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		rawColors = append(rawColors, extractColors(style)...)
		rawFonts = append(rawFonts, extractFonts(style)...)
	})

	doc.Find("link").Each(func(_ int, s *goquery.Selection) {
		if !hasRelToken(s.Nodes[0], "stylesheet") {
			return
		}
		if href, _ := s.Attr("href"); href != "" {
			stylesheets = append(stylesheets, href)
		}
	})

	doc.Find("svg").Each(func(_ int, s *goquery.Selection) {
		rawColors = append(rawColors, presentationColors(s.Nodes[0])...)
		s.Find("*").Each(func(_ int, child *goquery.Selection) {
			rawColors = append(rawColors, presentationColors(child.Nodes[0])...)
		})
	})

	return &Analysis{
		Colors:      countFiltered(rawColors, noiseColors),
		Fonts:       countFiltered(rawFonts, genericFonts),
		Stylesheets: stylesheets,
	}
}

// presentationColors reads the fill and stroke attributes off one element.
func presentationColors(n *html.Node) []string {
	var colors []string
	for _, a := range n.Attr {
		if (a.Key == "fill" || a.Key == "stroke") && a.Val != "" {
			colors = append(colors, a.Val)
		}
	}
	return colors
}

// hasRelToken matches one token of a (multi-valued) rel attribute,
// ignoring case; rel keywords are ASCII case-insensitive in HTML.
func hasRelToken(n *html.Node, want string) bool {
	for _, a := range n.Attr {
		if a.Key != "rel" {
			continue
		}
		for _, token := range strings.Fields(a.Val) {
			if strings.EqualFold(token, want) {
				return true
			}
		}
	}
	return false
}

// countFiltered tallies raw tokens, dropping noise entries
// case-insensitively.
func countFiltered(tokens []string, noise map[string]bool) *Frequency {
	f := NewFrequency()
	for _, token := range tokens {
		if noise[strings.ToLower(token)] {
			continue
		}
		f.Add(token)
	}
	return f
}
