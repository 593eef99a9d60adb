package cleaner

// NoopCleaner passes markup through untouched. Use it when the caller
// wants the raw page, or as a placeholder stage in tests.
type NoopCleaner struct{}

// NewNoop creates a pass-through cleaner.
func NewNoop() *NoopCleaner {
	return &NoopCleaner{}
}

// Clean returns the input unchanged.
func (c *NoopCleaner) Clean(markup string) (string, error) {
	return markup, nil
}

// Name returns the cleaner type.
func (c *NoopCleaner) Name() string {
	return "noop"
}
