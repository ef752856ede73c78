// Package optimization provides shared data structures for goal seek results.
package optimization

// Summary captures the result of a single goal seek.
type Summary struct {
	TargetName      string   `json:"targetName"`
	Field           string   `json:"field"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	Target          float64  `json:"target"`
	Achieved        float64  `json:"achieved"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}
