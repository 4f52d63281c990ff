package main

import (
	"os"

	"github.com/alexivanou/restcountries/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
