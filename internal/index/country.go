package index

import (
	"iter"
	"slices"
	"strings"

	"github.com/alexivanou/restcountries/internal/model"
)

// CountryIndex answers country lookups over a frozen slice of countries.
// Every sequence it returns follows the slice's declaration order, and every
// country it hands out is a clone the caller may modify.
type CountryIndex struct {
	countries []model.Country
	fold      Folder

	byCode     map[string]int // ISO2 and ISO3, upper-cased
	byCurrency map[string][]int
	byLanguage map[string][]int // language code and language name, lower-cased

	// full-name lookups, checked in this order
	byCommon   map[string]int
	byOfficial map[string]int
	byNative   map[string]int

	commonNames []string // folded common names for substring scans
	names       map[model.TranslationLanguage][]string
	languages   []model.TranslationLanguage
}

// NewCountryIndex builds every lookup map in a single pass
func NewCountryIndex(countries []model.Country, fold Folder) *CountryIndex {
	if fold == nil {
		fold = FoldCase
	}
	x := &CountryIndex{
		countries:   countries,
		fold:        fold,
		byCode:      make(map[string]int, len(countries)*2),
		byCurrency:  make(map[string][]int),
		byLanguage:  make(map[string][]int),
		byCommon:    make(map[string]int, len(countries)),
		byOfficial:  make(map[string]int, len(countries)),
		byNative:    make(map[string]int),
		commonNames: make([]string, len(countries)),
		names:       make(map[model.TranslationLanguage][]string),
	}

	for i, c := range countries {
		x.byCode[strings.ToUpper(c.CCA2)] = i
		x.byCode[strings.ToUpper(c.CCA3)] = i

		for code := range c.Currencies {
			appendUnique(x.byCurrency, strings.ToUpper(code), i)
		}
		for code, name := range c.Languages {
			appendUnique(x.byLanguage, strings.ToLower(code), i)
			appendUnique(x.byLanguage, strings.ToLower(name), i)
		}

		x.commonNames[i] = fold(c.Name.Common)
		putFirst(x.byCommon, x.commonNames[i], i)
		putFirst(x.byOfficial, fold(c.Name.Official), i)
		for _, native := range c.Name.NativeName {
			putFirst(x.byNative, fold(native.Common), i)
			putFirst(x.byNative, fold(native.Official), i)
		}
	}

	// translated names are built per language in declaration order
	for _, c := range countries {
		for lang, tr := range c.Translations {
			key := model.TranslationLanguage(strings.ToLower(string(lang)))
			x.names[key] = append(x.names[key], tr.Common)
		}
	}
	for lang := range x.names {
		x.languages = append(x.languages, lang)
	}
	slices.Sort(x.languages)

	return x
}

func appendUnique(m map[string][]int, key string, i int) {
	idx := m[key]
	if n := len(idx); n > 0 && idx[n-1] == i {
		return
	}
	m[key] = append(idx, i)
}

func putFirst(m map[string]int, key string, i int) {
	if key == "" {
		return
	}
	if _, ok := m[key]; !ok {
		m[key] = i
	}
}

// Len returns the number of indexed countries
func (x *CountryIndex) Len() int {
	return len(x.countries)
}

// All yields every country in declaration order
func (x *CountryIndex) All() iter.Seq[model.Country] {
	return func(yield func(model.Country) bool) {
		for _, c := range x.countries {
			if !yield(c.Clone()) {
				return
			}
		}
	}
}

// ByCode finds a country by ISO2 or ISO3 code, ignoring case
func (x *CountryIndex) ByCode(code string) (model.Country, bool) {
	i, ok := x.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return model.Country{}, false
	}
	return x.countries[i].Clone(), true
}

// ISO2 returns the ISO2 code of the country known by code (ISO2 or ISO3).
// Unknown codes come back upper-cased.
func (x *CountryIndex) ISO2(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if i, ok := x.byCode[code]; ok {
		return strings.ToUpper(x.countries[i].CCA2)
	}
	return code
}

// NameContains yields countries whose common name contains s
func (x *CountryIndex) NameContains(s string) iter.Seq[model.Country] {
	needle := x.fold(s)
	return func(yield func(model.Country) bool) {
		for i, name := range x.commonNames {
			if strings.Contains(name, needle) && !yield(x.countries[i].Clone()) {
				return
			}
		}
	}
}

// ByFullName matches the common name, then the official name, then any native name
func (x *CountryIndex) ByFullName(name string) (model.Country, bool) {
	key := x.fold(strings.TrimSpace(name))
	if key == "" {
		return model.Country{}, false
	}
	for _, m := range []map[string]int{x.byCommon, x.byOfficial, x.byNative} {
		if i, ok := m[key]; ok {
			return x.countries[i].Clone(), true
		}
	}
	return model.Country{}, false
}

// ByCurrency yields countries using the given currency code
func (x *CountryIndex) ByCurrency(code string) iter.Seq[model.Country] {
	return x.positions(x.byCurrency[strings.ToUpper(strings.TrimSpace(code))])
}

// ByLanguage yields countries speaking the given language, by code ("fra") or name ("French")
func (x *CountryIndex) ByLanguage(lang string) iter.Seq[model.Country] {
	return x.positions(x.byLanguage[strings.ToLower(strings.TrimSpace(lang))])
}

// Names yields common names, or translated common names when lang is set.
// Countries without a translation for lang are skipped; an unknown lang yields nothing.
func (x *CountryIndex) Names(lang model.TranslationLanguage) iter.Seq[string] {
	if lang == "" {
		return func(yield func(string) bool) {
			for _, c := range x.countries {
				if !yield(c.Name.Common) {
					return
				}
			}
		}
	}
	return slices.Values(x.names[lang])
}

// TranslationLanguages returns the sorted translation keys present in the data
func (x *CountryIndex) TranslationLanguages() []model.TranslationLanguage {
	return slices.Clone(x.languages)
}

func (x *CountryIndex) positions(idx []int) iter.Seq[model.Country] {
	return func(yield func(model.Country) bool) {
		for _, i := range idx {
			if !yield(x.countries[i].Clone()) {
				return
			}
		}
	}
}
