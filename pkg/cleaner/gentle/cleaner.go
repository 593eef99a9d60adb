package gentle

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aymerick/douceur/parser"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// jsonLDType marks structured-data scripts (SEO payloads).
const jsonLDType = "application/ld+json"

// Cleaner applies the ordered rule pipeline to parsed markup.
// It implements the cleaner.Cleaner interface.
type Cleaner struct {
	config *Config
	nav    *NavClassifier
	stats  *Stats
}

// New creates a Cleaner with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Cleaner{
		config: config,
		nav:    NewNavClassifier(config),
	}
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "gentle"
}

// Clean transforms the markup through the rule pipeline.
// This method implements the cleaner.Cleaner interface.
func (c *Cleaner) Clean(markup string) (string, error) {
	result := c.CleanWithStats(markup)
	return result.Content, nil
}

// Stats returns the stats from the last cleaning run.
func (c *Cleaner) Stats() *Stats {
	return c.stats
}

// CleanWithStats performs cleaning and returns detailed stats.
// Parse or serialization failures degrade gracefully: the original
// content is returned together with a warning.
func (c *Cleaner) CleanWithStats(markup string) *Result {
	startTime := time.Now()
	result := &Result{Stats: NewStats()}
	result.Stats.InputBytes = len(markup)

	parseStart := time.Now()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	result.Stats.ParseDuration = time.Since(parseStart)

	if err != nil {
		result.Content = markup
		result.AddWarning("parse", "markup parse failed, returning original", err.Error())
		result.Stats.OutputBytes = len(markup)
		result.Stats.TotalDuration = time.Since(startTime)
		c.stats = result.Stats
		return result
	}

	transformStart := time.Now()
	c.transform(doc, result)
	result.Stats.TransformDuration = time.Since(transformStart)

	outputStart := time.Now()
	output, err := c.render(doc)
	result.Stats.OutputDuration = time.Since(outputStart)

	if err != nil {
		result.Content = markup
		result.AddWarning("output", "serialization failed, returning original", err.Error())
		result.Stats.OutputBytes = len(markup)
	} else {
		result.Content = output
		result.Stats.OutputBytes = len(output)
	}

	result.Stats.TotalDuration = time.Since(startTime)
	c.stats = result.Stats

	return result
}

// transform runs the rule pipeline. The order is a correctness dependency,
// not a preference: later rules inspect state earlier rules have already
// normalized (style stripping must not run before the inline display:none
// check, attribute stripping must not run before navigation detection has
// seen the classes it keys on).
func (c *Cleaner) transform(doc *goquery.Document, result *Result) {
	c.removeUnwantedTags(doc, result)
	c.pruneHeaders(doc, result)
	c.filterScripts(doc, result)
	c.removeExtensionArtifacts(doc, result)
	c.removeLinksByRel(doc, result, "resource_hints", c.config.ResourceHintRels)
	c.pruneMetaTags(doc, result)
	c.removeLinksByRel(doc, result, "seo_links", c.config.SEORels)
	c.removeConsentWidgets(doc, result)
	c.removeBannerClasses(doc, result)
	c.removeHiddenDecorative(doc, result)
	c.pruneDisplayNone(doc, result)
	c.stripInlineStyles(doc, result)
	c.stripNoiseAttributes(doc, result)
	c.pruneEmptyContainers(doc, result)

	doc.Find("*").Each(func(_ int, _ *goquery.Selection) {
		result.Stats.ElementsKept++
	})
}

// removeNodes detaches collected nodes, skipping ones already carried away
// inside an earlier removal. Collect-then-detach keeps sibling iteration
// valid while the tree mutates.
func (c *Cleaner) removeNodes(rule string, nodes []*html.Node, result *Result) {
	for _, n := range nodes {
		if !inDocument(n) {
			continue
		}
		result.Stats.RecordRemoval(rule, n.Data)
		detach(n)
	}
}

// Rule 1: blunt removal by tag.
func (c *Cleaner) removeUnwantedTags(doc *goquery.Document, result *Result) {
	var doomed []*html.Node
	for _, tag := range c.config.UnwantedTags {
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			doomed = append(doomed, s.Nodes[0])
		})
	}
	c.removeNodes("unwanted_tags", doomed, result)
}

// Rule 2: headers go unless they hold navigation.
func (c *Cleaner) pruneHeaders(doc *goquery.Document, result *Result) {
	navTag := map[string]bool{"nav": true}
	var doomed []*html.Node
	doc.Find("header").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		if hasDescendantTag(n, navTag) {
			return
		}
		if containsAny(attrValue(n, "class"), c.config.HeaderKeepClasses) {
			return
		}
		doomed = append(doomed, n)
	})
	c.removeNodes("headers", doomed, result)
}

// Rule 3: tracking, structured-data and inline analytics scripts.
func (c *Cleaner) filterScripts(doc *goquery.Document, result *Result) {
	var doomed []*html.Node
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		text := s.Text()
		switch {
		case containsAnyFold(attrValue(n, "src"), c.config.TrackerFragments),
			containsAny(attrValue(n, "id"), c.config.ScriptIDFragments),
			attrValue(n, "type") == jsonLDType,
			containsAny(text, c.config.InlineScriptMarkers):
			doomed = append(doomed, n)
		}
	})
	c.removeNodes("scripts", doomed, result)
}

// Rule 4: browser-extension injections, by tag and by class marker.
func (c *Cleaner) removeExtensionArtifacts(doc *goquery.Document, result *Result) {
	var doomed []*html.Node
	for _, tag := range c.config.ExtensionTags {
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			doomed = append(doomed, s.Nodes[0])
		})
	}
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		if containsAny(attrValue(n, "class"), c.config.ExtensionClassMarkers) {
			doomed = append(doomed, n)
		}
	})
	c.removeNodes("extensions", doomed, result)
}

// Rules 5 and 7: <link> removal by rel token. Tokens match ignoring case;
// rel keywords are ASCII case-insensitive in HTML.
func (c *Cleaner) removeLinksByRel(doc *goquery.Document, result *Result, rule string, rels []string) {
	var doomed []*html.Node
	doc.Find("link").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		for _, token := range relTokens(n) {
			for _, rel := range rels {
				if strings.EqualFold(token, rel) {
					doomed = append(doomed, n)
					return
				}
			}
		}
	})
	c.removeNodes(rule, doomed, result)
}

// Rule 6: meta tags go except charset and viewport.
func (c *Cleaner) pruneMetaTags(doc *goquery.Document, result *Result) {
	var doomed []*html.Node
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		if attrValue(n, "charset") != "" {
			return
		}
		if name := attrValue(n, "name"); name == "viewport" || name == "charset" {
			return
		}
		doomed = append(doomed, n)
	})
	c.removeNodes("meta", doomed, result)
}

// Rule 8: consent-manager containers, first match per id.
func (c *Cleaner) removeConsentWidgets(doc *goquery.Document, result *Result) {
	var doomed []*html.Node
	for _, id := range c.config.ConsentIDs {
		sel := doc.Find("#" + id).First()
		if len(sel.Nodes) > 0 {
			doomed = append(doomed, sel.Nodes[0])
		}
	}
	c.removeNodes("consent", doomed, result)
}

// Rule 9: cookie/banner elements by exact class token.
func (c *Cleaner) removeBannerClasses(doc *goquery.Document, result *Result) {
	var doomed []*html.Node
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		for _, token := range classTokens(n) {
			for _, banned := range c.config.BannerClassTokens {
				if token == banned {
					doomed = append(doomed, n)
					return
				}
			}
		}
	})
	c.removeNodes("banner_classes", doomed, result)
}

// Rule 10: aria-hidden decorations without substantial text. SVG icons and
// navigation interiors are exempt; hidden dropdown content stays.
func (c *Cleaner) removeHiddenDecorative(doc *goquery.Document, result *Result) {
	var doomed []*html.Node
	doc.Find("[aria-hidden='true']").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		if n.Data == "svg" || c.nav.InNavigation(n) {
			return
		}
		if textRunes(n) < c.config.MinTextRunes {
			doomed = append(doomed, n)
		}
	})
	c.removeNodes("hidden_decorative", doomed, result)
}

// displayNoneRe is the fallback matcher for style text douceur cannot parse.
var displayNoneRe = regexp.MustCompile(`(?i)display\s*:\s*none`)

// hasDisplayNone parses inline style text into declarations and looks for
// display:none, tolerating case and whitespace. Malformed style text falls
// back to a loose textual match rather than failing.
func hasDisplayNone(style string) bool {
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return displayNoneRe.MatchString(style)
	}
	for _, d := range decls {
		if !strings.EqualFold(strings.TrimSpace(d.Property), "display") {
			continue
		}
		value := strings.TrimSpace(d.Value)
		if value == "" {
			// Without a trailing semicolon the parser hands back the last
			// declaration with an empty value. Decide textually instead.
			return displayNoneRe.MatchString(style)
		}
		if strings.HasPrefix(strings.ToLower(value), "none") {
			return true
		}
	}
	return false
}

// Rule 11: display:none containers without substantial text.
func (c *Cleaner) pruneDisplayNone(doc *goquery.Document, result *Result) {
	var doomed []*html.Node
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		if !hasDisplayNone(attrValue(n, "style")) {
			return
		}
		if textRunes(n) < c.config.MinTextRunes {
			doomed = append(doomed, n)
		}
	})
	c.removeNodes("display_none", doomed, result)
}

// Rule 12: inline styles go everywhere except inside navigation.
func (c *Cleaner) stripInlineStyles(doc *goquery.Document, result *Result) {
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		if c.nav.InNavigation(n) {
			return
		}
		if removeAttr(n, "style") {
			result.Stats.AttributesRemoved++
		}
	})
}

// Rule 13: vendor/framework metadata attributes. Icon-font and toggle
// attributes survive inside navigation because menu behavior depends
// on them.
func (c *Cleaner) stripNoiseAttributes(doc *goquery.Document, result *Result) {
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		for _, attr := range c.config.NoiseAttributes {
			if removeAttr(n, attr) {
				result.Stats.AttributesRemoved++
			}
		}
		if c.nav.InNavigation(n) {
			return
		}
		for _, attr := range c.config.IconAttributes {
			if removeAttr(n, attr) {
				result.Stats.AttributesRemoved++
			}
		}
		for _, attr := range c.config.ToggleAttributes {
			if removeAttr(n, attr) {
				result.Stats.AttributesRemoved++
			}
		}
	})
}

// importantDescendants are the tags that keep an otherwise empty container.
var importantDescendants = map[string]bool{
	"img": true, "a": true, "svg": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var svgTag = map[string]bool{"svg": true}

// Rule 14: empty div/span pruning. Navigation interiors and SVG wrappers
// are exempt.
func (c *Cleaner) pruneEmptyContainers(doc *goquery.Document, result *Result) {
	var doomed []*html.Node
	doc.Find("div, span").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		if c.nav.InNavigation(n) || hasDescendantTag(n, svgTag) {
			return
		}
		if strippedText(n) != "" {
			return
		}
		if hasDescendantTag(n, importantDescendants) {
			return
		}
		doomed = append(doomed, n)
	})
	c.removeNodes("empty_containers", doomed, result)
}

// render serializes the mutated document, pretty-printed. Indentation is
// cosmetic, not contractual.
func (c *Cleaner) render(doc *goquery.Document) (string, error) {
	markup, err := doc.Html()
	if err != nil {
		return "", err
	}
	return gohtml.Format(markup), nil
}
