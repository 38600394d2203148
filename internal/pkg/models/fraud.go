package models

// FraudOutcome is the verdict band a fraud score falls into
type FraudOutcome string

const (
	FraudAllow  FraudOutcome = "allow"
	FraudReview FraudOutcome = "review"
	FraudBlock  FraudOutcome = "block"
)

// FraudVerdict is the result of scoring one transaction request
type FraudVerdict struct {
	Score   float64      `json:"score"`
	Verdict FraudOutcome `json:"verdict"`
	Factors []string     `json:"factors,omitempty"`
}
