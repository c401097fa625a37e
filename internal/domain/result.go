package domain

// Outcome classifies a completed estimate call that did not fail.
type Outcome string

const (
	// OutcomeEstimated means Result.Estimate holds a prediction.
	OutcomeEstimated Outcome = "estimated"
	// OutcomeNoData means the archive has no captures for the coordinate.
	OutcomeNoData Outcome = "no_data"
)

// Result is the structured answer for one coordinate.
type Result struct {
	ID         string     `json:"id"`
	Coordinate Coordinate `json:"coordinate"`
	Outcome    Outcome    `json:"outcome"`
	Estimate   Estimate   `json:"estimate,omitzero"`
}
