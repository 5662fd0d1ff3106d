package domain

// Outcome reports the result of a policy-gated operation. Refusals are
// expected user-facing results, not errors: cancelling a non-refundable
// ticket or releasing an already-free seat ends up here.
type Outcome struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func Allowed() Outcome {
	return Outcome{Allowed: true}
}

func Refused(reason string) Outcome {
	return Outcome{Allowed: false, Reason: reason}
}
