package pipeline

import "context"

// Explainer turns a plain-text run summary into a free-text explanation for
// planners. The pipeline treats the returned text as opaque: it is attached
// to the schedule and never parsed. Hosted text generators implement this
// interface outside the core; scheduling never blocks on one.
type Explainer interface {
	Explain(ctx context.Context, summary string) (string, error)
}

// NopExplainer returns the summary unchanged.
type NopExplainer struct{}

func (NopExplainer) Explain(_ context.Context, summary string) (string, error) {
	return summary, nil
}
