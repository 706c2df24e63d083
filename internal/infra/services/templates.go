package services

import (
	"strings"

	"health-assistant/internal/domain/entities"
)

const (
	ApologyMessage  = "I'm sorry, I had trouble processing that. Please try again."
	VoiceInputLabel = "🎤 Voice Input"
)

// MessageTemplates are the assistant lines rendered into the transcript.
// Each may contain a {name} placeholder.
type MessageTemplates struct {
	Greeting      string
	Assessment    string
	SevereWarning string
	ChatCleared   string
}

var messageTemplates = map[entities.LanguageCode]MessageTemplates{
	"en": {
		Greeting:      "Hello {name}! I'm your health assistant. Describe your symptoms by typing, recording your voice or uploading a photo.",
		Assessment:    "Here is my assessment, {name}:",
		SevereWarning: "⚠️ {name}, your symptoms may need urgent medical attention. Please contact emergency services or visit the nearest hospital immediately.",
		ChatCleared:   "Chat cleared, {name}. How can I help you now?",
	},
	"hi": {
		Greeting:      "नमस्ते {name}! मैं आपका स्वास्थ्य सहायक हूँ। अपने लक्षण लिखकर, बोलकर या फ़ोटो अपलोड करके बताएं।",
		Assessment:    "{name}, यह रहा मेरा आकलन:",
		SevereWarning: "⚠️ {name}, आपके लक्षणों पर तुरंत चिकित्सा ध्यान देने की आवश्यकता हो सकती है। कृपया तुरंत आपातकालीन सेवाओं से संपर्क करें या नज़दीकी अस्पताल जाएं।",
		ChatCleared:   "{name}, चैट साफ़ कर दी गई है। अब मैं आपकी कैसे मदद कर सकता हूँ?",
	},
}

// TemplatesFor returns the language's templates, falling back to English.
func TemplatesFor(language entities.LanguageCode) MessageTemplates {
	if t, ok := messageTemplates[language]; ok {
		return t
	}
	return messageTemplates[entities.DefaultLanguage]
}

func personalize(template, name string) string {
	return strings.ReplaceAll(template, "{name}", name)
}

// ResponseTemplate picks the assistant line for an analysis. It depends on the
// emergency flag only.
func ResponseTemplate(t MessageTemplates, emergency bool, name string) string {
	if emergency {
		return personalize(t.SevereWarning, name)
	}
	return personalize(t.Assessment, name)
}
