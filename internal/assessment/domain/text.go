package domain

// Language selects the English or Hindi (romanised) variant of a Text.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

// Text is a bilingual string.
type Text struct {
	EN string `json:"en"`
	HI string `json:"hi"`
}

// In returns the variant for lang, defaulting to English.
func (t Text) In(lang Language) string {
	if lang == LanguageHindi && t.HI != "" {
		return t.HI
	}
	return t.EN
}
