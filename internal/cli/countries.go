package cli

import (
	"errors"
	"iter"

	"github.com/alexivanou/restcountries/internal/model"
	"github.com/spf13/cobra"
)

var namesLang string

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "List every country",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return outputCountries(cmd, svc.AllCountries())
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Find countries whose common name contains text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return outputCountries(cmd, svc.CountriesByNameContains(args[0]))
	},
}

var nameCmd = &cobra.Command{
	Use:   "name [full-name]",
	Short: "Find a country by its common, official or native name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		country, ok := svc.CountryByFullName(args[0])
		return outputCountry(cmd, country, ok)
	},
}

var codeCmd = &cobra.Command{
	Use:   "code [iso-code]",
	Short: "Find a country by ISO 3166-1 alpha-2 or alpha-3 code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		country, ok := svc.CountryByCode(args[0])
		return outputCountry(cmd, country, ok)
	},
}

var currencyCmd = &cobra.Command{
	Use:   "currency [code]",
	Short: "List countries using a currency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return outputCountries(cmd, svc.CountriesByCurrency(args[0]))
	},
}

var languageCmd = &cobra.Command{
	Use:   "language [code-or-name]",
	Short: "List countries speaking a language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return outputCountries(cmd, svc.CountriesByLanguage(args[0]))
	},
}

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "List country names, optionally translated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		names := collect(svc.CountryNames(model.TranslationLanguage(namesLang)))
		if outputJSON {
			return printJSON(cmd, names)
		}
		for _, name := range names {
			cmd.Println(name)
		}
		return nil
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the translation languages available for names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		langs := svc.TranslationLanguages()
		if outputJSON {
			return printJSON(cmd, langs)
		}
		for _, lang := range langs {
			cmd.Println(lang)
		}
		return nil
	},
}

func init() {
	namesCmd.Flags().StringVarP(&namesLang, "lang", "l", "", "translation language, as a key (fra) or a name (French)")

	rootCmd.AddCommand(allCmd, searchCmd, nameCmd, codeCmd, currencyCmd, languageCmd, namesCmd, languagesCmd)
}

var errNotFound = errors.New("country not found")

func outputCountry(cmd *cobra.Command, country model.Country, ok bool) error {
	if !ok {
		return errNotFound
	}
	if outputJSON {
		return printJSON(cmd, country)
	}
	cmd.Printf("%s (%s/%s)\n", country.Name.Common, country.CCA2, country.CCA3)
	cmd.Printf("  Official:   %s\n", country.Name.Official)
	if country.Region != "" {
		cmd.Printf("  Region:     %s\n", country.Region)
	}
	if len(country.Capital) > 0 {
		cmd.Printf("  Capital:    %s\n", country.Capital[0])
	}
	for code, currency := range country.Currencies {
		cmd.Printf("  Currency:   %s (%s)\n", currency.Name, code)
	}
	cmd.Printf("  Population: %d\n", country.Population)
	return nil
}

func outputCountries(cmd *cobra.Command, seq iter.Seq[model.Country]) error {
	countries := collect(seq)
	if outputJSON {
		return printJSON(cmd, countries)
	}
	if len(countries) == 0 {
		cmd.Println("No countries found.")
		return nil
	}
	for _, c := range countries {
		cmd.Printf("%-3s %-4s %s\n", c.CCA2, c.CCA3, c.Name.Common)
	}
	return nil
}
