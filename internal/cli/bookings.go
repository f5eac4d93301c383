package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"cinemabooking/internal/client"
	"cinemabooking/internal/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a token for CINEMA_TOKEN",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := (&promptui.Prompt{Label: "Email"}).Run()
		if err != nil {
			return err
		}
		password, err := (&promptui.Prompt{Label: "Password", Mask: '*'}).Run()
		if err != nil {
			return err
		}
		token, err := newAPIClient().Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		fmt.Printf("export CINEMA_TOKEN=%s\n", token)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := (&promptui.Prompt{Label: "Username"}).Run()
		if err != nil {
			return err
		}
		email, err := (&promptui.Prompt{Label: "Email"}).Run()
		if err != nil {
			return err
		}
		password, err := (&promptui.Prompt{Label: "Password", Mask: '*'}).Run()
		if err != nil {
			return err
		}
		if err := newAPIClient().Register(cmd.Context(), email, password, username); err != nil {
			return err
		}
		fmt.Println("account created, run \"cinema login\"")
		return nil
	},
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Show my bookings grouped by state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("CINEMA_TOKEN") == "" {
			return errors.New("CINEMA_TOKEN is not set, run \"cinema login\" first")
		}
		c := newAPIClient()
		ctx := cmd.Context()

		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		bookings := client.NewBookings(func() client.Catalog { return catalog }, c, c, nil)
		bookings.LoadAll(ctx)
		if msg := bookings.Err(); msg != "" {
			return errors.New(msg)
		}

		grouped := bookings.Grouped()
		renderUnpaid(bookings, grouped.Unpaid)
		renderBookings(bookings, "UPCOMING", grouped.Upcoming)
		renderBookings(bookings, "PAST", grouped.Past)
		return nil
	},
}

func loadCatalog(cmd *cobra.Command) (client.Catalog, error) {
	c := newAPIClient()
	ctx := cmd.Context()
	movies, err := c.FetchMovies(ctx)
	if err != nil {
		return client.Catalog{}, err
	}
	cinemas, err := c.FetchCinemas(ctx)
	if err != nil {
		return client.Catalog{}, err
	}
	return client.Catalog{
		Movies:   movies,
		Cinemas:  cinemas,
		Sessions: map[int]domain.Session{},
	}, nil
}

func renderUnpaid(b *client.Bookings, views []domain.BookingView) {
	fmt.Println("UNPAID")
	if len(views) == 0 {
		fmt.Println("  none")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Session", "Seats", "Pay before"})
	for _, view := range views {
		payBefore := "unknown"
		if view.ExpiresAt != nil {
			payBefore = view.ExpiresAt.Local().Format("02.01 15:04")
		}
		t.AppendRow(table.Row{view.ID, view.MovieSessionID, b.FormatSeats(view.Seats), payBefore})
	}
	t.Render()
}

func renderBookings(b *client.Bookings, title string, list []domain.Booking) {
	fmt.Println(title)
	if len(list) == 0 {
		fmt.Println("  none")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Session", "Seats", "Booked at"})
	for _, bk := range list {
		t.AppendRow(table.Row{bk.ID, bk.MovieSessionID, b.FormatSeats(bk.Seats), bk.BookedAt.Local().Format("02.01 15:04")})
	}
	t.Render()
}
