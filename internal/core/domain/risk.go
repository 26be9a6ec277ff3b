package domain

// RiskAssessment is the advisory verdict of the login risk detector. A suspicious
// classification is recorded and surfaced to the caller but never blocks a login
// by itself.
type RiskAssessment struct {
	Suspicious bool   `json:"suspicious"`
	Reason     string `json:"reason,omitempty"`
}
