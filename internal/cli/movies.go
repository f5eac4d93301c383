package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List movies in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := newAPIClient().FetchMovies(cmd.Context())
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Title", "Year", "Rating", "Length"})
		for _, m := range movies {
			t.AppendRow(table.Row{m.ID, m.Title, m.Year, m.Rating, fmt.Sprintf("%d min", m.LengthMinutes)})
		}
		t.Render()
		return nil
	},
}

var cinemasCmd = &cobra.Command{
	Use:   "cinemas",
	Short: "List cinemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		cinemas, err := newAPIClient().FetchCinemas(cmd.Context())
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Address"})
		for _, c := range cinemas {
			t.AppendRow(table.Row{c.ID, c.Name, c.Address})
		}
		t.Render()
		return nil
	},
}
