// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single optimization directive.
type Summary struct {
	Scope      string `json:"scope"`
	TargetName string `json:"targetName"`
	Field      string `json:"field"`
	// Target is the metric driven to zero, e.g. npv.
	Target          string   `json:"target"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	TargetValue     float64  `json:"targetValue"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}
