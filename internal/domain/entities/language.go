package entities

type LanguageCode string

const DefaultLanguage LanguageCode = "en"

// DefaultLocale is used for any code missing from SupportedLanguages.
const DefaultLocale = "en-US"

type Language struct {
	Code       LanguageCode `json:"code"`
	Name       string       `json:"name"`
	NativeName string       `json:"nativeName"`
	Locale     string       `json:"locale"`
}

// SupportedLanguages is the single lookup table shared by analysis, speech and translation.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English", NativeName: "English", Locale: "en-US"},
	{Code: "hi", Name: "Hindi", NativeName: "हिंदी", Locale: "hi-IN"},
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা", Locale: "bn-IN"},
	{Code: "te", Name: "Telugu", NativeName: "తెలుగు", Locale: "te-IN"},
	{Code: "ta", Name: "Tamil", NativeName: "தமிழ்", Locale: "ta-IN"},
	{Code: "mr", Name: "Marathi", NativeName: "मराठी", Locale: "mr-IN"},
	{Code: "gu", Name: "Gujarati", NativeName: "ગુજરાતી", Locale: "gu-IN"},
	{Code: "kn", Name: "Kannada", NativeName: "ಕನ್ನಡ", Locale: "kn-IN"},
	{Code: "ml", Name: "Malayalam", NativeName: "മലയാളം", Locale: "ml-IN"},
	{Code: "pa", Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ", Locale: "pa-IN"},
	{Code: "or", Name: "Odia", NativeName: "ଓଡ଼ିଆ", Locale: "or-IN"},
	{Code: "as", Name: "Assamese", NativeName: "অসমীয়া", Locale: "as-IN"},
}

var languageIndex = func() map[LanguageCode]Language {
	idx := make(map[LanguageCode]Language, len(SupportedLanguages))
	for _, l := range SupportedLanguages {
		idx[l.Code] = l
	}
	return idx
}()

func LookupLanguage(code LanguageCode) (Language, bool) {
	l, ok := languageIndex[code]
	return l, ok
}

func IsSupportedLanguage(code LanguageCode) bool {
	_, ok := languageIndex[code]
	return ok
}

// LocaleFor maps a language code to its speech locale, falling back to DefaultLocale.
func LocaleFor(code LanguageCode) string {
	if l, ok := languageIndex[code]; ok {
		return l.Locale
	}
	return DefaultLocale
}
