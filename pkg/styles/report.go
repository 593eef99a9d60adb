package styles

import (
	"fmt"
	"strings"
)

// Truncation limits for the console summary. The file report is never
// truncated.
const (
	summaryFontLimit  = 15
	summaryColorLimit = 20
)

const reportRule = "============================================================"
const sectionRule = "------------------------------------------------------------"

// Summary renders the truncated console view: top fonts and colors, the
// full stylesheet list, and unique-token totals.
func Summary(a *Analysis) string {
	return render(a, summaryFontLimit, summaryColorLimit)
}

// Full renders the untruncated report for writing to a file.
func Full(a *Analysis) string {
	return render(a, 0, 0)
}

func render(a *Analysis, fontLimit, colorLimit int) string {
	var sb strings.Builder

	sb.WriteString(reportRule + "\n")
	sb.WriteString("STYLE ANALYSIS RESULTS\n")
	sb.WriteString(reportRule + "\n")

	sb.WriteString("\nCOMMON FONTS:\n")
	sb.WriteString(sectionRule + "\n")
	writeEntries(&sb, a.Fonts.Top(fontLimit), "No fonts found.")

	sb.WriteString("\nCOMMON COLORS:\n")
	sb.WriteString(sectionRule + "\n")
	writeEntries(&sb, a.Colors.Top(colorLimit), "No colors found.")

	if len(a.Stylesheets) > 0 {
		sb.WriteString("\nEXTERNAL STYLESHEETS:\n")
		sb.WriteString(sectionRule + "\n")
		for i, href := range a.Stylesheets {
			sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, href))
		}
	}

	sb.WriteString("\n" + reportRule + "\n")
	sb.WriteString(fmt.Sprintf("Total unique fonts: %d\n", a.Fonts.Len()))
	sb.WriteString(fmt.Sprintf("Total unique colors: %d\n", a.Colors.Len()))
	sb.WriteString(fmt.Sprintf("Total external stylesheets: %d\n", len(a.Stylesheets)))
	sb.WriteString(reportRule + "\n")

	return sb.String()
}

// writeEntries prints numbered "token (count occurrences)" lines.
func writeEntries(sb *strings.Builder, entries []Entry, empty string) {
	if len(entries) == 0 {
		sb.WriteString(empty + "\n")
		return
	}
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("%2d. %-40s (%3d occurrences)\n", i+1, e.Token, e.Count))
	}
}
