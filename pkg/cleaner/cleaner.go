// Package cleaner defines the interface for markup-cleaning stages.
// The gentle subpackage provides the rule-based page cleaner; Chain and
// Noop compose and stub stages for pipelines and tests.
package cleaner

// Cleaner transforms markup into a cleaner form.
type Cleaner interface {
	// Clean transforms the input markup and returns the result.
	Clean(markup string) (string, error)

	// Name identifies the cleaner for logging.
	Name() string
}
