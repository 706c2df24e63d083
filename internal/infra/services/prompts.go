package services

import (
	"fmt"
	"strings"

	"health-assistant/internal/domain/entities"
)

const baseSystemInstruction = `You are HealBuddy, a compassionate and careful AI health assistant.
Analyze the user's symptoms (text, a voice note transcript, or a photo of a rash or wound) and give structured health guidance.

RULES:
1. You are not a doctor. Always include a disclaimer.
2. Never give a definitive diagnosis. Phrase causes as possibilities.
3. Only suggest over-the-counter medicines or home remedies.
4. Classify severity:
   - MILD: cold, minor headache, fatigue, sore throat, acidity, minor rashes.
   - MODERATE: persistent pain, fever above 101F, dizziness, migraine, spreading rashes, signs of infection.
   - SEVERE: chest pain, trouble breathing, fainting, severe dehydration, uncontrolled bleeding, stroke symptoms, severe allergic reactions.
   - UNKNOWN: the input is not enough to judge.

Respond with a single JSON object with exactly these fields:
{"severity": "MILD|MODERATE|SEVERE|UNKNOWN", "summary": string, "possibleCauses": [string], "remedies": [string], "medicalAdvice": string, "disclaimer": string, "emergencyContact": boolean}
If the case is SEVERE, set "emergencyContact" to true and advise immediate medical attention.`

// BuildSystemInstruction appends the output-language directive and the user's
// profile to the fixed rubric.
func BuildSystemInstruction(profile *entities.UserProfile, language entities.LanguageCode) string {
	var b strings.Builder
	b.WriteString(baseSystemInstruction)

	if language != "" && language != entities.DefaultLanguage {
		if lang, ok := entities.LookupLanguage(language); ok {
			fmt.Fprintf(&b, "\n\nIMPORTANT: Respond in %s (%s). Every text field of the JSON (summary, possibleCauses, remedies, medicalAdvice, disclaimer) MUST be written in %s. Keep the severity value in English.",
				lang.Name, lang.NativeName, lang.Name)
		}
	}

	if profile != nil {
		fmt.Fprintf(&b, "\n\nUSER CONTEXT:\nName: %s\nAge: %d\nGender: %s\nMedical History: %s\n\nTailor the advice to this profile and medical history. Address the user by name where appropriate.",
			profile.FullName, profile.Age, profile.Gender, profile.MedicalHistory)
	}

	return b.String()
}

func translationInstruction(from, to entities.Language) string {
	return fmt.Sprintf("You are a professional medical translator. Translate the following text from %s to %s. Keep medical terminology accurate and be culturally sensitive. Return ONLY the translated text, nothing else.",
		from.Name, to.Name)
}

func detectionInstruction() string {
	codes := make([]string, 0, len(entities.SupportedLanguages))
	for _, l := range entities.SupportedLanguages {
		codes = append(codes, fmt.Sprintf("%s (%s)", l.Code, l.Name))
	}
	return "Identify the language of the following text. Answer with ONLY the two-letter code from this list: " +
		strings.Join(codes, ", ") + ". If unsure, answer en."
}
