package cleaner

import (
	"fmt"
	"strings"
)

// ChainCleaner applies a sequence of cleaners in order. The output of one
// stage feeds the next.
type ChainCleaner struct {
	stages []Cleaner
}

// NewChain composes cleaners into a single stage, applied in the order
// provided.
func NewChain(stages ...Cleaner) *ChainCleaner {
	return &ChainCleaner{stages: stages}
}

// Clean runs the markup through every stage. The first stage error aborts
// the chain.
func (c *ChainCleaner) Clean(markup string) (string, error) {
	for _, stage := range c.stages {
		out, err := stage.Clean(markup)
		if err != nil {
			return "", fmt.Errorf("cleaner %s: %w", stage.Name(), err)
		}
		markup = out
	}
	return markup, nil
}

// Name lists the chained stage names.
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.stages))
	for i, stage := range c.stages {
		names[i] = stage.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
