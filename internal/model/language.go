package model

import "strings"

// TranslationLanguage identifies a translation of country names, e.g. "fra".
// The empty value means the common (English) name.
type TranslationLanguage string

// Translation languages shipped with the bundled dataset and the wider restcountries data.
const (
	Arabic     TranslationLanguage = "ara"
	Breton     TranslationLanguage = "bre"
	Czech      TranslationLanguage = "ces"
	Welsh      TranslationLanguage = "cym"
	German     TranslationLanguage = "deu"
	Estonian   TranslationLanguage = "est"
	Finnish    TranslationLanguage = "fin"
	French     TranslationLanguage = "fra"
	Croatian   TranslationLanguage = "hrv"
	Hungarian  TranslationLanguage = "hun"
	Italian    TranslationLanguage = "ita"
	Japanese   TranslationLanguage = "jpn"
	Korean     TranslationLanguage = "kor"
	Dutch      TranslationLanguage = "nld"
	Persian    TranslationLanguage = "per"
	Polish     TranslationLanguage = "pol"
	Portuguese TranslationLanguage = "por"
	Russian    TranslationLanguage = "rus"
	Slovak     TranslationLanguage = "slk"
	Spanish    TranslationLanguage = "spa"
	Serbian    TranslationLanguage = "srp"
	Swedish    TranslationLanguage = "swe"
	Turkish    TranslationLanguage = "tur"
	Urdu       TranslationLanguage = "urd"
	Chinese    TranslationLanguage = "zho"
)

var languageAliases = map[string]TranslationLanguage{
	"arabic":     Arabic,
	"breton":     Breton,
	"czech":      Czech,
	"welsh":      Welsh,
	"german":     German,
	"estonian":   Estonian,
	"finnish":    Finnish,
	"french":     French,
	"croatian":   Croatian,
	"hungarian":  Hungarian,
	"italian":    Italian,
	"japanese":   Japanese,
	"korean":     Korean,
	"dutch":      Dutch,
	"persian":    Persian,
	"polish":     Polish,
	"portuguese": Portuguese,
	"russian":    Russian,
	"slovak":     Slovak,
	"spanish":    Spanish,
	"serbian":    Serbian,
	"swedish":    Swedish,
	"turkish":    Turkish,
	"urdu":       Urdu,
	"chinese":    Chinese,
}

// ParseTranslationLanguage maps a key ("fra") or an English name ("French")
// to a TranslationLanguage. Unknown identifiers are returned lower-cased as-is:
// whether they match anything is decided by the dataset, not here.
func ParseTranslationLanguage(id string) TranslationLanguage {
	key := strings.ToLower(strings.TrimSpace(id))
	if lang, ok := languageAliases[key]; ok {
		return lang
	}
	return TranslationLanguage(key)
}
