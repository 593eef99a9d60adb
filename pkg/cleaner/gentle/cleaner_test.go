package gentle

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("nil config uses default", func(t *testing.T) {
		c := New(nil)
		if c == nil {
			t.Fatal("expected non-nil cleaner")
		}
		if c.config == nil {
			t.Fatal("expected non-nil config")
		}
		if c.config.MinTextRunes != 10 {
			t.Errorf("expected default MinTextRunes 10, got %d", c.config.MinTextRunes)
		}
	})

	t.Run("custom config is used", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinTextRunes = 25
		c := New(cfg)
		if c.config.MinTextRunes != 25 {
			t.Errorf("expected MinTextRunes 25, got %d", c.config.MinTextRunes)
		}
	})
}

func TestName(t *testing.T) {
	c := New(nil)
	if c.Name() != "gentle" {
		t.Errorf("expected name 'gentle', got %q", c.Name())
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		contains []string
		excludes []string
	}{
		{
			name:     "removes style tags",
			html:     `<html><body><style>.foo{color:red}</style><p>Hello there everyone</p></body></html>`,
			contains: []string{"Hello there everyone"},
			excludes: []string{"<style>", "color:red"},
		},
		{
			name:     "removes footers",
			html:     `<html><body><p>Content stays</p><footer><p>Copyright</p></footer></body></html>`,
			contains: []string{"Content stays"},
			excludes: []string{"<footer>", "Copyright"},
		},
		{
			name:     "removes iframes and noscript",
			html:     `<html><body><iframe src="ad.html"></iframe><noscript>No JS</noscript><p>Hello</p></body></html>`,
			contains: []string{"Hello"},
			excludes: []string{"iframe", "noscript", "No JS"},
		},
		{
			name:     "removes plain headers",
			html:     `<html><body><header><div>Hero banner copy</div></header><p>Body text</p></body></html>`,
			contains: []string{"Body text"},
			excludes: []string{"<header>", "Hero banner copy"},
		},
		{
			name:     "keeps headers containing nav",
			html:     `<html><body><header><nav><a href="/">Home</a></nav></header></body></html>`,
			contains: []string{"<header>", "<nav>", "Home"},
		},
		{
			name:     "keeps headers with navigation class",
			html:     `<html><body><header class="site-menu"><a href="/">Home</a></header></body></html>`,
			contains: []string{"site-menu", "Home"},
		},
		{
			name:     "removes tracking scripts by src",
			html:     `<html><head><script src="https://www.googletagmanager.com/gtm.js"></script></head><body><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"googletagmanager"},
		},
		{
			name:     "keeps application scripts",
			html:     `<html><head><script src="/app.js"></script></head><body></body></html>`,
			contains: []string{`src="/app.js"`},
		},
		{
			name:     "removes scripts by id fragment",
			html:     `<html><body><script id="utag_loader">var x = 1;</script><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"utag_loader"},
		},
		{
			name:     "removes structured data scripts",
			html:     `<html><body><script type="application/ld+json">{"@type":"Product"}</script><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"ld+json", "@type"},
		},
		{
			name:     "removes inline tracking bootstrap",
			html:     `<html><body><script>fbq('init', '123');</script><script>window.BOOMR = {};</script><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"fbq(", "BOOMR"},
		},
		{
			name:     "keeps harmless inline scripts",
			html:     `<html><body><script>console.log("boot");</script></body></html>`,
			contains: []string{"console.log"},
		},
		{
			name:     "removes extension tags",
			html:     `<html><body><grammarly-desktop-integration data-grammarly-shadow-root="true"></grammarly-desktop-integration><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"grammarly-desktop-integration"},
		},
		{
			name:     "removes extension class markers",
			html:     `<html><body><div class="apolloio-root"><p>Injected panel content</p></div><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"apolloio", "Injected panel"},
		},
		{
			name:     "removes resource hint links",
			html:     `<html><head><link rel="preload" href="/font.woff2"><link rel="prefetch" href="/next.js"><link rel="stylesheet" href="/main.css"></head><body></body></html>`,
			contains: []string{`href="/main.css"`},
			excludes: []string{"preload", "prefetch"},
		},
		{
			name:     "prunes meta tags except charset and viewport",
			html:     `<html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width"><meta name="description" content="seo blurb"><meta property="og:title" content="seo"></head><body></body></html>`,
			contains: []string{`charset="utf-8"`, "viewport"},
			excludes: []string{"description", "og:title"},
		},
		{
			name:     "removes seo links",
			html:     `<html><head><link rel="canonical" href="https://example.com/page"><link rel="alternate" href="https://example.com/fr"></head><body></body></html>`,
			excludes: []string{"canonical", "alternate"},
		},
		{
			name:     "removes consent widgets by id",
			html:     `<html><body><div id="onetrust-banner-sdk"><p>We value your privacy and cookies</p></div><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"onetrust-banner-sdk", "value your privacy"},
		},
		{
			name:     "removes cookie and banner class tokens",
			html:     `<html><body><div class="cookie"><p>Accept all</p></div><div class="banner">Promo</div><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"Accept all", "Promo"},
		},
		{
			name:     "keeps compound class names that merely contain cookie",
			html:     `<html><body><div class="cookie-recipes"><p>Bake at 180 degrees for ten minutes</p></div></body></html>`,
			contains: []string{"cookie-recipes", "Bake at 180"},
		},
		{
			name:     "removes short aria-hidden decorations",
			html:     `<html><body><div aria-hidden="true">&times;</div><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"aria-hidden"},
		},
		{
			name:     "keeps aria-hidden elements with substantial text",
			html:     `<html><body><div aria-hidden="true">Hidden dropdown content</div></body></html>`,
			contains: []string{"Hidden dropdown content"},
		},
		{
			name:     "keeps aria-hidden svg icons",
			html:     `<html><body><svg aria-hidden="true"><path d="M0 0h24v24"></path></svg></body></html>`,
			contains: []string{"<svg", "M0 0h24v24"},
		},
		{
			name:     "removes empty display none containers",
			html:     `<html><body><div style="display: none"></div><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"display"},
		},
		{
			name:     "removes display none containers with short text",
			html:     `<html><body><div style="display:none">stub</div><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"stub"},
		},
		{
			name:     "keeps display none containers with substantial text",
			html:     `<html><body><div style="display:none">Hidden menu panel text</div></body></html>`,
			contains: []string{"Hidden menu panel text"},
		},
		{
			name:     "tolerates odd display none spelling",
			html:     `<html><body><div style="DISPLAY : NONE"></div><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"DISPLAY"},
		},
		{
			name:     "strips inline styles outside navigation",
			html:     `<html><body><p style="color: red">Painted paragraph</p></body></html>`,
			contains: []string{"Painted paragraph"},
			excludes: []string{"style="},
		},
		{
			name:     "keeps inline styles inside navigation",
			html:     `<html><body><nav><a style="color: red" href="/">Home</a></nav></body></html>`,
			contains: []string{`style="color: red"`},
		},
		{
			name:     "strips noise attributes everywhere",
			html:     `<html><body><nav><form data-parsley-validate="true"><input name="q"></form></nav><div data-cy="hero" data-sl-component="x"><p>Some real content</p></div></body></html>`,
			contains: []string{`name="q"`, "Some real content"},
			excludes: []string{"data-parsley-validate", "data-cy", "data-sl-component"},
		},
		{
			name:     "strips toggle attributes outside navigation only",
			html:     `<html><body><nav><a data-bs-toggle="dropdown" href="#">Menu</a></nav><button data-bs-toggle="modal">Open dialog</button></body></html>`,
			contains: []string{`<a data-bs-toggle="dropdown"`, "Open dialog"},
			excludes: []string{`data-bs-toggle="modal"`},
		},
		{
			name:     "strips icon attributes outside navigation only",
			html:     `<html><body><nav><i data-icon="burger"></i></nav><i data-icon="star" data-prefix="fas"></i><p>Hi</p></body></html>`,
			contains: []string{`data-icon="burger"`},
			excludes: []string{`data-icon="star"`, "data-prefix"},
		},
		{
			name:     "removes empty containers",
			html:     `<html><body><div class="spacer"></div><span></span><p>Hi</p></body></html>`,
			contains: []string{"Hi"},
			excludes: []string{"spacer", "<span>"},
		},
		{
			name:     "keeps containers with meaningful descendants",
			html:     `<html><body><div><img src="/logo.png"></div><div><a href="/about"></a></div><div><svg></svg></div></body></html>`,
			contains: []string{"/logo.png", "/about", "<svg>"},
		},
		{
			name:     "keeps empty containers inside navigation",
			html:     `<html><body><nav><span class="hamburger-line"></span></nav></body></html>`,
			contains: []string{"hamburger-line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil)
			result, err := c.Clean(tt.html)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, result)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(result, s) {
					t.Errorf("expected output to not contain %q, got:\n%s", s, result)
				}
			}
		})
	}
}

func TestCleanHiddenTextThreshold(t *testing.T) {
	// The threshold is strict: text of exactly 9 runes goes, 10 stays.
	t.Run("nine runes removed", func(t *testing.T) {
		c := New(nil)
		out, _ := c.Clean(`<html><body><div aria-hidden="true">123456789</div><p>keep</p></body></html>`)
		if strings.Contains(out, "123456789") {
			t.Errorf("expected 9-rune hidden element to be removed, got:\n%s", out)
		}
	})

	t.Run("ten runes kept", func(t *testing.T) {
		c := New(nil)
		out, _ := c.Clean(`<html><body><div aria-hidden="true">1234567890</div></body></html>`)
		if !strings.Contains(out, "1234567890") {
			t.Errorf("expected 10-rune hidden element to be kept, got:\n%s", out)
		}
	})

	t.Run("rune counting not byte counting", func(t *testing.T) {
		c := New(nil)
		// Ten multibyte runes: well past the byte threshold, exactly at
		// the rune threshold.
		out, _ := c.Clean(`<html><body><div aria-hidden="true">éééééééééé</div></body></html>`)
		if !strings.Contains(out, "éééééééééé") {
			t.Errorf("expected 10-rune multibyte text to be kept, got:\n%s", out)
		}
	})

	t.Run("svg child keeps hidden element", func(t *testing.T) {
		c := New(nil)
		out, _ := c.Clean(`<html><body><svg aria-hidden="true"><path d="M0 0"></path></svg></body></html>`)
		if !strings.Contains(out, "<svg") {
			t.Errorf("expected aria-hidden svg to survive, got:\n%s", out)
		}
	})
}

func TestCleanPreservesNavigation(t *testing.T) {
	// Everything under <nav> survives, including elements the empty
	// container and hidden decoration rules would otherwise remove.
	html := `<html><body>
<nav class="navbar">
  <ul class="menu">
    <li><a data-bs-toggle="dropdown" data-bs-target="#main-menu" href="#">Products</a>
      <div class="dropdown-panel" aria-hidden="true">
        <span class="icon" data-icon="chevron" style="color: blue"></span>
        <a href="/one">One</a>
      </div>
    </li>
  </ul>
</nav>
<div aria-hidden="true"><span data-icon="star"></span></div>
</body></html>`

	c := New(nil)
	out, err := c.Clean(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"<nav", `data-bs-toggle="dropdown"`, `data-bs-target="#main-menu"`,
		"dropdown-panel", `data-icon="chevron"`, `style="color: blue"`, `href="/one"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected navigation content %q to survive, got:\n%s", want, out)
		}
	}

	// The identical markup outside navigation is removed.
	if strings.Contains(out, `data-icon="star"`) {
		t.Errorf("expected non-navigation hidden decoration to be removed, got:\n%s", out)
	}
}

func TestCleanIdempotent(t *testing.T) {
	html := `<html><head>
<meta charset="utf-8"><meta name="description" content="seo">
<link rel="canonical" href="https://example.com"><link rel="stylesheet" href="/main.css">
<script src="https://www.googletagmanager.com/gtm.js"></script>
<style>body{color:red}</style>
</head><body>
<header><div>Plain hero</div></header>
<nav class="navbar"><a data-bs-toggle="dropdown" style="color:blue" href="#">Menu</a></nav>
<div class="cookie">Accept</div>
<div aria-hidden="true">x</div>
<div style="display:none"></div>
<div><span></span></div>
<article><p style="margin:0">Real content that should remain here.</p></article>
<footer>Bye</footer>
</body></html>`

	c := New(nil)
	first := c.CleanWithStats(html)
	if first.Stats.TotalElementsRemoved() == 0 {
		t.Fatal("expected the first pass to remove elements")
	}

	second := New(nil).CleanWithStats(first.Content)
	if got := second.Stats.TotalElementsRemoved(); got != 0 {
		t.Errorf("expected no removals on the second pass, got %d (%v)",
			got, second.Stats.ElementsRemoved)
	}
	if second.Stats.AttributesRemoved != 0 {
		t.Errorf("expected no attribute removals on the second pass, got %d",
			second.Stats.AttributesRemoved)
	}
}

func TestCleanWithStats(t *testing.T) {
	t.Run("tracks sizes and removals", func(t *testing.T) {
		html := `<html><body><script>fbq('init');</script><footer>bye</footer><p>Hello</p></body></html>`
		c := New(nil)
		result := c.CleanWithStats(html)

		if result.Stats == nil {
			t.Fatal("expected non-nil stats")
		}
		if result.Stats.InputBytes != len(html) {
			t.Errorf("expected input bytes %d, got %d", len(html), result.Stats.InputBytes)
		}
		if result.Stats.ElementsRemoved["script"] != 1 {
			t.Errorf("expected 1 script removal, got %d", result.Stats.ElementsRemoved["script"])
		}
		if result.Stats.ElementsRemoved["footer"] != 1 {
			t.Errorf("expected 1 footer removal, got %d", result.Stats.ElementsRemoved["footer"])
		}
		if result.Stats.RuleRemovals["scripts"] != 1 {
			t.Errorf("expected scripts rule to record 1 removal, got %d", result.Stats.RuleRemovals["scripts"])
		}
		if result.Stats.ElementsKept == 0 {
			t.Error("expected surviving elements to be counted")
		}
	})

	t.Run("stats accessor returns last run", func(t *testing.T) {
		c := New(nil)
		if c.Stats() != nil {
			t.Error("expected nil stats before any run")
		}
		result := c.CleanWithStats(`<html><body></body></html>`)
		if c.Stats() != result.Stats {
			t.Error("expected Stats() to return the last run's stats")
		}
	})

	t.Run("malformed markup is tolerated", func(t *testing.T) {
		c := New(nil)
		result := c.CleanWithStats(`<div><p>unclosed <span>stray</div>
			<script src="https://connect.facebook.net/fbevents.js"></script>`)
		if result.Content == "" {
			t.Error("expected content for malformed input")
		}
		if strings.Contains(result.Content, "facebook") {
			t.Error("expected tracking script to be removed from malformed input")
		}
	})

	t.Run("missing attributes never panic", func(t *testing.T) {
		c := New(nil)
		// Scripts without src/id/type, links without rel, metas without
		// name. Rules treat absent attributes as empty.
		result := c.CleanWithStats(`<html><head><link><meta></head><body><script></script></body></html>`)
		if result.Content == "" {
			t.Error("expected output")
		}
	})
}

func TestHasDisplayNone(t *testing.T) {
	tests := []struct {
		style string
		want  bool
	}{
		{"display: none", true},
		{"display:none", true},
		{"display: none;", true},
		{"display:none; color: red", true},
		{"DISPLAY : NONE", true},
		{"color: red; display: none !important", true},
		{"display: block", false},
		{"display: block;", false},
		{"color: red", false},
		{"", false},
		// Garbage falls back to the loose textual match.
		{"display:none;{{{", true},
	}

	for _, tt := range tests {
		if got := hasDisplayNone(tt.style); got != tt.want {
			t.Errorf("hasDisplayNone(%q) = %v, want %v", tt.style, got, tt.want)
		}
	}
}
