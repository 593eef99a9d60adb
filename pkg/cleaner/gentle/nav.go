package gentle

import (
	"strings"

	"golang.org/x/net/html"
)

// NavClassifier decides whether an element sits inside a navigation region.
// The cleaner consults it constantly: navigation subtrees are exempt from
// most removal and attribute-stripping rules.
type NavClassifier struct {
	tags           map[string]bool
	classFragments []string
	ids            map[string]bool
}

// NewNavClassifier builds a classifier from the config's navigation lists.
func NewNavClassifier(cfg *Config) *NavClassifier {
	nc := &NavClassifier{
		tags:           make(map[string]bool, len(cfg.NavTags)),
		classFragments: cfg.NavClassFragments,
		ids:            make(map[string]bool, len(cfg.NavIDs)),
	}
	for _, t := range cfg.NavTags {
		nc.tags[t] = true
	}
	for _, id := range cfg.NavIDs {
		nc.ids[id] = true
	}
	return nc
}

// InNavigation walks the ancestor chain from n's parent up to the root and
// returns true at the first ancestor that is a nav tag, carries a
// navigation-flavored class, or has a known navigation id.
//
// Class matching is substring matching against the whole class string, not
// token matching. That is intentional: it catches navbar-brand,
// offcanvas-menu and similar derived names. Tightening it to exact tokens
// would under-detect navigation regions.
func (nc *NavClassifier) InNavigation(n *html.Node) bool {
	if n == nil {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if nc.tags[p.Data] {
			return true
		}
		if class := attrValue(p, "class"); class != "" {
			for _, frag := range nc.classFragments {
				if strings.Contains(class, frag) {
					return true
				}
			}
		}
		if id := attrValue(p, "id"); id != "" && nc.ids[id] {
			return true
		}
	}
	return false
}
