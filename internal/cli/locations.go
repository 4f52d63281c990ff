package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var statesCmd = &cobra.Command{
	Use:   "states [country-code]",
	Short: "List the states of a country",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		states := collect(svc.StatesByCountryCode(args[0]))
		if outputJSON {
			return printJSON(cmd, states)
		}
		if len(states) == 0 {
			cmd.Println("No states found.")
			return nil
		}
		for _, s := range states {
			cmd.Printf("%-4s %s\n", s.Code, s.Name)
		}
		return nil
	},
}

var citiesCmd = &cobra.Command{
	Use:   "cities [country-code] [state-code]",
	Short: "List the cities of a state",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cities := collect(svc.CitiesInState(args[1], args[0]))
		if outputJSON {
			return printJSON(cmd, cities)
		}
		if len(cities) == 0 {
			cmd.Println("No cities found.")
			return nil
		}
		for _, c := range cities {
			if c.HasCoordinates() {
				cmd.Printf("%s (%.4f, %.4f)\n", c.Name, *c.Latitude, *c.Longitude)
			} else {
				cmd.Println(c.Name)
			}
		}
		return nil
	},
}

var nearestCmd = &cobra.Command{
	Use:   "nearest [lat] [lon]",
	Short: "Find the city closest to a coordinate",
	Long: `Finds the city closest to a coordinate. Put -- before negative values:

  countries nearest -- 34.05 -118.24`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil || lat < -90 || lat > 90 {
			return fmt.Errorf("invalid latitude %q", args[0])
		}
		lon, err := strconv.ParseFloat(args[1], 64)
		if err != nil || lon < -180 || lon > 180 {
			return fmt.Errorf("invalid longitude %q", args[1])
		}

		nearest, ok := svc.NearestCity(lat, lon)
		if !ok {
			return errors.New("no cities found")
		}
		if outputJSON {
			return printJSON(cmd, nearest)
		}
		cmd.Printf("%s, %s, %s (%.1f km)\n",
			nearest.City.Name, nearest.City.StateCode, nearest.City.CountryCode, nearest.DistanceKm)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statesCmd, citiesCmd, nearestCmd)
}
