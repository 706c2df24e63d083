package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"health-assistant/internal/domain/entities"
)

// analysisPayload mirrors the response schema with pointers so that a missing
// or null field can be told apart from a zero value.
type analysisPayload struct {
	Severity         *string   `json:"severity"`
	Summary          *string   `json:"summary"`
	PossibleCauses   *[]string `json:"possibleCauses"`
	Remedies         *[]string `json:"remedies"`
	MedicalAdvice    *string   `json:"medicalAdvice"`
	Disclaimer       *string   `json:"disclaimer"`
	EmergencyContact *bool     `json:"emergencyContact"`
}

// ParseAnalysis validates a raw model response and builds the typed result.
// All seven fields are required and severity must be one of the known levels.
func ParseAnalysis(raw []byte) (*entities.AnalysisResult, error) {
	raw = stripCodeFence(raw)

	var p analysisPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: analysis is not valid JSON: %v", ErrValidation, err)
	}

	var missing []string
	if p.Severity == nil {
		missing = append(missing, "severity")
	}
	if p.Summary == nil {
		missing = append(missing, "summary")
	}
	if p.PossibleCauses == nil {
		missing = append(missing, "possibleCauses")
	}
	if p.Remedies == nil {
		missing = append(missing, "remedies")
	}
	if p.MedicalAdvice == nil {
		missing = append(missing, "medicalAdvice")
	}
	if p.Disclaimer == nil {
		missing = append(missing, "disclaimer")
	}
	if p.EmergencyContact == nil {
		missing = append(missing, "emergencyContact")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: analysis missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	severity := entities.Severity(*p.Severity)
	if !severity.Valid() {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrValidation, *p.Severity)
	}

	return &entities.AnalysisResult{
		Severity:         severity,
		Summary:          *p.Summary,
		PossibleCauses:   *p.PossibleCauses,
		Remedies:         *p.Remedies,
		MedicalAdvice:    *p.MedicalAdvice,
		Disclaimer:       *p.Disclaimer,
		EmergencyContact: *p.EmergencyContact,
	}, nil
}

func stripCodeFence(raw []byte) []byte {
	raw = bytes.TrimSpace(raw)
	if !bytes.HasPrefix(raw, []byte("```")) {
		return raw
	}
	raw = bytes.TrimPrefix(raw, []byte("```json"))
	raw = bytes.TrimPrefix(raw, []byte("```"))
	raw = bytes.TrimSuffix(bytes.TrimSpace(raw), []byte("```"))
	return bytes.TrimSpace(raw)
}
