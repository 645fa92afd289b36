package models

import "saucebot/internal/rewards"

// ResultStatus classifies an engine operation for the presentation layer.
type ResultStatus string

const (
	StatusOK                  ResultStatus = "ok"
	StatusExpired             ResultStatus = "expired"
	StatusAlreadyClaimed      ResultStatus = "already_claimed"
	StatusNothingToClaim      ResultStatus = "nothing_to_claim"
	StatusInsufficientFunds   ResultStatus = "insufficient_funds"
	StatusMissingPrerequisite ResultStatus = "missing_prerequisite"
	StatusAttemptsExhausted   ResultStatus = "attempts_exhausted"
	StatusWrongAnswer         ResultStatus = "wrong_answer"
	StatusCooldown            ResultStatus = "cooldown"
	StatusMaxLevel            ResultStatus = "max_level"
)

// Result is the structured output of an engine operation. The engine never
// formats user-facing text; the bot and API render this.
type Result struct {
	Status   ResultStatus      `json:"status"`
	Outcomes []rewards.Outcome `json:"outcomes,omitempty"`
	Detail   map[string]any    `json:"detail,omitempty"`
}

func OK(outcomes ...rewards.Outcome) *Result {
	return &Result{Status: StatusOK, Outcomes: outcomes}
}

func Failed(status ResultStatus) *Result {
	return &Result{Status: status}
}

func (r *Result) WithDetail(key string, value any) *Result {
	if r.Detail == nil {
		r.Detail = map[string]any{}
	}
	r.Detail[key] = value
	return r
}
