package ch

import "math"

// Params controls the node-ordering heuristic and the witness-search cost
// caps used during automatic contraction. All fields have sensible defaults;
// use the With* options to override individual ones.
type Params struct {
	// HierarchyDepthFactor weights the "level" term of the relevance score;
	// favors contracting flat, uncontracted regions before deep ones.
	HierarchyDepthFactor float32
	// EdgeQuotientFactor weights the shortcut-to-degree ratio term.
	EdgeQuotientFactor float32
	// MaxSettledNodesInitialRelevance caps the witness search performed when
	// priorities are calculated for all nodes initially.
	MaxSettledNodesInitialRelevance int
	// MaxSettledNodesNeighborRelevance caps the witness search performed when
	// updating priorities of a just-contracted node's neighbors. Strongly
	// affects preparation time; smaller values trade slower queries and more
	// shortcuts for faster preparation.
	MaxSettledNodesNeighborRelevance int
	// MaxSettledNodesContraction caps the witness search performed when
	// actually deciding whether a shortcut is needed during contraction.
	// Higher values mean fewer shortcuts, slower preparation, faster queries.
	MaxSettledNodesContraction int
}

// Option configures a Params value.
type Option func(*Params)

// DefaultParams returns the recommended defaults.
func DefaultParams() *Params {
	return &Params{
		HierarchyDepthFactor:             0.1,
		EdgeQuotientFactor:               1.0,
		MaxSettledNodesInitialRelevance:  100,
		MaxSettledNodesNeighborRelevance: 3,
		MaxSettledNodesContraction:       100,
	}
}

// NewParams builds a Params from the defaults, applying the given options.
func NewParams(opts ...Option) *Params {
	p := DefaultParams()
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithHierarchyDepthFactor overrides HierarchyDepthFactor.
func WithHierarchyDepthFactor(v float32) Option {
	return func(p *Params) { p.HierarchyDepthFactor = v }
}

// WithEdgeQuotientFactor overrides EdgeQuotientFactor.
func WithEdgeQuotientFactor(v float32) Option {
	return func(p *Params) { p.EdgeQuotientFactor = v }
}

// WithMaxSettledNodesInitialRelevance overrides MaxSettledNodesInitialRelevance.
func WithMaxSettledNodesInitialRelevance(v int) Option {
	return func(p *Params) { p.MaxSettledNodesInitialRelevance = v }
}

// WithMaxSettledNodesNeighborRelevance overrides MaxSettledNodesNeighborRelevance.
func WithMaxSettledNodesNeighborRelevance(v int) Option {
	return func(p *Params) { p.MaxSettledNodesNeighborRelevance = v }
}

// WithMaxSettledNodesContraction overrides MaxSettledNodesContraction.
func WithMaxSettledNodesContraction(v int) Option {
	return func(p *Params) { p.MaxSettledNodesContraction = v }
}

// ParamsWithOrder controls the witness-search cost cap used when contracting
// with a caller-supplied fixed node ordering.
type ParamsWithOrder struct {
	// MaxSettledNodesContractionWithOrder should generally match the
	// MaxSettledNodesContraction used to produce the order in the first
	// place.
	MaxSettledNodesContractionWithOrder int
}

// DefaultParamsWithOrder returns the recommended defaults.
func DefaultParamsWithOrder() *ParamsWithOrder {
	return &ParamsWithOrder{MaxSettledNodesContractionWithOrder: 100}
}

// clampRelevance saturates a scaled relevance score to fit the int priority
// used by the ordering heap, per the documented open question about
// wraparound on pathological graphs.
func clampRelevance(v float64) int {
	if v > float64(math.MaxInt32) {
		return math.MaxInt32
	}
	if v < float64(math.MinInt32) {
		return math.MinInt32
	}
	return int(v)
}
