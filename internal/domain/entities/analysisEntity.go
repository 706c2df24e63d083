package entities

type Severity string

const (
	SeverityMild     Severity = "MILD"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
	SeverityUnknown  Severity = "UNKNOWN"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere, SeverityUnknown:
		return true
	}
	return false
}

type AnalysisResult struct {
	Severity         Severity `json:"severity"`
	Summary          string   `json:"summary"`
	PossibleCauses   []string `json:"possibleCauses"`
	Remedies         []string `json:"remedies"`
	MedicalAdvice    string   `json:"medicalAdvice"`
	Disclaimer       string   `json:"disclaimer"`
	EmergencyContact bool     `json:"emergencyContact"`
}
