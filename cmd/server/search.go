package main

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mukundrex/flight-mcp-server/internal/service/flights"
)

func searchCmd(cfgPath *string) *cobra.Command {
	var adults int

	c := &cobra.Command{
		Use:   "search FROM TO [DATE]",
		Short: "Run one flight search and print the result as JSON",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			date := time.Now().UTC().Format("2006-01-02")
			if len(args) == 3 {
				date = args[2]
			}

			result, err := a.flights.Search(cmd.Context(), flights.SearchInput{
				Origin:      strings.ToUpper(args[0]),
				Destination: strings.ToUpper(args[1]),
				Date:        date,
				Adults:      adults,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	c.Flags().IntVar(&adults, "adults", 0, "number of adult passengers (default from config)")
	return c
}
