package gentle

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// attrValue returns the value of the named attribute, or "" when absent.
// Absent and empty attributes are deliberately indistinguishable here;
// scraped markup is missing attributes all the time and the rules must
// tolerate that.
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// removeAttr deletes the named attribute in place. It reports whether
// anything was removed.
func removeAttr(n *html.Node, key string) bool {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return true
		}
	}
	return false
}

// detach removes n and its entire subtree from the document.
func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// inDocument reports whether n is still reachable from the document root.
// Rules collect nodes before mutating, so a node may have been carried
// away inside an earlier removal by the time it is visited.
func inDocument(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.DocumentNode {
			return true
		}
	}
	return false
}

// strippedText concatenates the trimmed text of every descendant text node.
func strippedText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(c.Data))
			return
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

// textRunes counts the runes of an element's stripped text content.
// Thresholds are rune counts, not byte counts.
func textRunes(n *html.Node) int {
	return utf8.RuneCountInString(strippedText(n))
}

// hasDescendantTag reports whether any element below n has one of the
// given tag names. n itself is not considered.
func hasDescendantTag(n *html.Node, tags map[string]bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && tags[c.Data] {
			return true
		}
		if hasDescendantTag(c, tags) {
			return true
		}
	}
	return false
}

// classTokens splits a class attribute into its whitespace-separated tokens.
func classTokens(n *html.Node) []string {
	return strings.Fields(attrValue(n, "class"))
}

// relTokens splits a rel attribute into tokens for multi-valued matching.
func relTokens(n *html.Node) []string {
	return strings.Fields(attrValue(n, "rel"))
}

// containsAnyFold reports whether s contains any fragment, ignoring case.
func containsAnyFold(s string, fragments []string) bool {
	ls := strings.ToLower(s)
	for _, f := range fragments {
		if strings.Contains(ls, strings.ToLower(f)) {
			return true
		}
	}
	return false
}

// containsAny reports whether s contains any fragment, case-sensitively.
func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
