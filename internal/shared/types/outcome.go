package types

// Outcome reports how a gated operation ended
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeDenied    Outcome = "denied"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeNoop      Outcome = "noop"
)

// Applied reports whether state was changed
func (o Outcome) Applied() bool {
	return o == OutcomeApplied
}
