package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"cinemabooking/internal/adapters/api"
	"cinemabooking/internal/client"
	"cinemabooking/internal/domain"
)

var (
	sessionsMovieID  int
	sessionsCinemaID int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show the session schedule for a movie or a cinema",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newAPIClient()
		ctx := cmd.Context()

		if sessionsCinemaID != 0 {
			return renderCinemaSchedule(ctx, c, sessionsCinemaID)
		}
		movieID := sessionsMovieID
		if movieID == 0 {
			var err error
			movieID, err = promptSelectMovie(ctx, c)
			if err != nil {
				return err
			}
		}
		return renderMovieSchedule(ctx, c, movieID)
	},
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsMovieID, "movie", 0, "movie id")
	sessionsCmd.Flags().IntVar(&sessionsCinemaID, "cinema", 0, "cinema id")
}

func promptSelectMovie(ctx context.Context, c *api.Client) (int, error) {
	movies, err := c.FetchMovies(ctx)
	if err != nil {
		return 0, err
	}
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	prompt := promptui.Select{
		Label: "Select movie",
		Items: titles,
		Size:  10,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return movies[i].ID, nil
}

// renderMovieSchedule prints the movie's sessions grouped by date and cinema.
func renderMovieSchedule(ctx context.Context, c *api.Client, movieID int) error {
	sessions, err := c.FetchMovieSessions(ctx, movieID)
	if err != nil {
		return err
	}
	cinemas, err := c.FetchCinemas(ctx)
	if err != nil {
		return err
	}
	lookup := make(map[int]string, len(cinemas))
	for _, cin := range cinemas {
		lookup[cin.ID] = cin.Name
	}
	groups := client.GroupSessionsByDate(sessions,
		func(s domain.Session) int { return s.CinemaID },
		client.GroupOptions{EntityLookup: lookup, FallbackName: "Кинотеатр не найден"},
	)
	renderSchedule(groups, "Cinema")
	return nil
}

// renderCinemaSchedule prints the cinema's sessions grouped by date and movie.
func renderCinemaSchedule(ctx context.Context, c *api.Client, cinemaID int) error {
	sessions, err := c.FetchCinemaSessions(ctx, cinemaID)
	if err != nil {
		return err
	}
	movies, err := c.FetchMovies(ctx)
	if err != nil {
		return err
	}
	lookup := make(map[int]string, len(movies))
	for _, m := range movies {
		lookup[m.ID] = m.Title
	}
	groups := client.GroupSessionsByDate(sessions,
		func(s domain.Session) int { return s.MovieID },
		client.GroupOptions{EntityLookup: lookup, FallbackName: "Фильм не найден"},
	)
	renderSchedule(groups, "Movie")
	return nil
}

func renderSchedule(groups []domain.DateGroup, entityHeader string) {
	if len(groups) == 0 {
		fmt.Println("no sessions")
		return
	}
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Date", entityHeader, "Times"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 2, AutoMerge: true, WidthMax: 30},
	})
	t.Style().Options.SeparateRows = true
	for _, group := range groups {
		for _, item := range group.Items {
			times := make([]string, len(item.Slots))
			for i, slot := range item.Slots {
				times[i] = slot.TimeLabel
			}
			t.AppendRow(table.Row{group.DateLabel, item.EntityName, strings.Join(times, " ")}, rowConfigAutoMerge)
		}
		t.AppendSeparator()
	}
	t.Render()
}
