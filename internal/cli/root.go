// Package cli implements the countries command-line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"github.com/alexivanou/restcountries/internal/dataset"
	"github.com/alexivanou/restcountries/internal/index"
	"github.com/alexivanou/restcountries/internal/service"
	"github.com/spf13/cobra"
)

var (
	datasetDir  string
	foldAccents bool
	outputJSON  bool

	svc service.ServiceInterface
)

var rootCmd = &cobra.Command{
	Use:   "countries",
	Short: "Query countries, states and cities",
	Long: `Queries the bundled countries dataset: look countries up by name, code,
currency or language, list translated names, and walk states and cities.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupService,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&datasetDir, "dir", "", "load the dataset from this directory instead of the bundled copy")
	rootCmd.PersistentFlags().BoolVar(&foldAccents, "fold-accents", false, "ignore diacritics when matching names")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output results as JSON")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetService replaces the query service, mainly for tests
func SetService(s service.ServiceInterface) {
	svc = s
}

func setupService(_ *cobra.Command, _ []string) error {
	if svc != nil {
		return nil
	}

	var (
		ds  *dataset.Dataset
		err error
	)
	if datasetDir != "" {
		ds, err = dataset.FromDir(datasetDir)
	} else {
		ds, err = dataset.Bundled()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	var opts []index.Option
	if foldAccents {
		opts = append(opts, index.WithAccentFolding())
	}
	svc = service.NewService(service.NewStatic(index.NewSnapshot(ds, opts...)))
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// collect drains seq into a non-nil slice so empty results print as []
func collect[T any](seq iter.Seq[T]) []T {
	items := slices.Collect(seq)
	if items == nil {
		return []T{}
	}
	return items
}
