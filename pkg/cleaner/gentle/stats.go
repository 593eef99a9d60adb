package gentle

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Stats captures what a cleaning run did.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// Element counts
	ElementsRemoved map[string]int `json:"elements_removed" yaml:"elements_removed"` // tag -> count
	ElementsKept    int            `json:"elements_kept" yaml:"elements_kept"`

	// Per-rule removal counts
	RuleRemovals map[string]int `json:"rule_removals" yaml:"rule_removals"` // rule -> count

	// Attribute stripping
	AttributesRemoved int `json:"attributes_removed" yaml:"attributes_removed"`

	// Timing
	ParseDuration     time.Duration `json:"parse_duration_ms" yaml:"parse_duration_ms"`
	TransformDuration time.Duration `json:"transform_duration_ms" yaml:"transform_duration_ms"`
	OutputDuration    time.Duration `json:"output_duration_ms" yaml:"output_duration_ms"`
	TotalDuration     time.Duration `json:"total_duration_ms" yaml:"total_duration_ms"`
}

// NewStats returns a Stats with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsRemoved: make(map[string]int),
		RuleRemovals:    make(map[string]int),
	}
}

// RecordRemoval notes that rule removed an element with the given tag.
func (s *Stats) RecordRemoval(rule, tag string) {
	s.ElementsRemoved[strings.ToLower(tag)]++
	s.RuleRemovals[rule]++
}

// TotalElementsRemoved sums removals across all tags.
func (s *Stats) TotalElementsRemoved() int {
	total := 0
	for _, count := range s.ElementsRemoved {
		total += count
	}
	return total
}

// ReductionPercent returns the size reduction as a percentage of the input.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String renders a human-readable summary.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent()))
	sb.WriteString(fmt.Sprintf("Elements: %d removed, %d kept\n",
		s.TotalElementsRemoved(), s.ElementsKept))

	if len(s.ElementsRemoved) > 0 {
		sb.WriteString("Removed by tag: ")
		sb.WriteString(formatCounts(s.ElementsRemoved))
		sb.WriteString("\n")
	}
	if len(s.RuleRemovals) > 0 {
		sb.WriteString("Removed by rule: ")
		sb.WriteString(formatCounts(s.RuleRemovals))
		sb.WriteString("\n")
	}
	if s.AttributesRemoved > 0 {
		sb.WriteString(fmt.Sprintf("Attributes removed: %d\n", s.AttributesRemoved))
	}

	sb.WriteString(fmt.Sprintf("Timing: parse=%v, transform=%v, output=%v, total=%v\n",
		s.ParseDuration.Round(time.Millisecond),
		s.TransformDuration.Round(time.Millisecond),
		s.OutputDuration.Round(time.Millisecond),
		s.TotalDuration.Round(time.Millisecond)))

	return sb.String()
}

// formatCounts renders a count map as "key=n" pairs in key order.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}

// Warning is a non-fatal issue encountered during cleaning.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`     // "parse", "transform", "output"
	Message string `json:"message" yaml:"message"` // human-readable description
	Context string `json:"context" yaml:"context"` // element or value that caused it
}

// String formats the warning for logs.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result is the outcome of a cleaning run.
type Result struct {
	// Content is the cleaned markup. On parse failure it holds the
	// original input (graceful degradation, never a hard error).
	Content string `json:"content"`

	// Stats describes what was removed.
	Stats *Stats `json:"stats"`

	// Warnings lists non-fatal issues.
	Warnings []Warning `json:"warnings,omitempty"`
}

// AddWarning appends a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{Phase: phase, Message: message, Context: context})
}

// HasWarnings reports whether any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
