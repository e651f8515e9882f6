package models

import "fmt"

// Language is a supported content language code.
type Language string

const (
	LanguageFR Language = "FR"
	LanguageEN Language = "EN"
	LanguageAR Language = "AR"
)

// SupportedLanguages lists every language translations may be stored in.
var SupportedLanguages = []Language{LanguageFR, LanguageEN, LanguageAR}

// Valid reports whether l is one of the supported language codes.
func (l Language) Valid() bool {
	switch l {
	case LanguageFR, LanguageEN, LanguageAR:
		return true
	}
	return false
}

// ParseLanguage converts a request query value into a Language.
func ParseLanguage(s string) (Language, error) {
	l := Language(s)
	if !l.Valid() {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	return l, nil
}
