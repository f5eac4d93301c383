package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"cinemabooking/internal/adapters/api"
	"cinemabooking/internal/client"
	"cinemabooking/internal/domain"
)

var bookSessionID int

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book seats on a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("CINEMA_TOKEN") == "" {
			return errors.New("CINEMA_TOKEN is not set, run \"cinema login\" first")
		}
		c := newAPIClient()
		ctx := cmd.Context()

		sessionID := bookSessionID
		if sessionID == 0 {
			movieID, err := promptSelectMovie(ctx, c)
			if err != nil {
				return err
			}
			sessionID, err = promptSelectSession(ctx, c, movieID)
			if err != nil {
				return err
			}
		}

		view := client.NewSessionDetailsView(c, sessionID)
		view.Load(ctx)
		if msg := view.Err(); msg != "" {
			return errors.New(msg)
		}
		details := view.Details()

		selection := client.NewSeatSelection(view.BookedSeats(), nil)
		defer selection.Close()
		if err := promptToggleSeats(details, view, selection); err != nil {
			return err
		}
		seats := selection.Selected()
		if len(seats) == 0 {
			return errors.New("no seats selected")
		}

		bookingID, err := c.BookSessionSeats(ctx, sessionID, seats)
		if err != nil {
			return err
		}
		view.MarkSeatsBooked(seats)
		fmt.Printf("booked %s\n", bookingID)

		confirm := promptui.Prompt{Label: "Pay now", IsConfirm: true}
		if _, err := confirm.Run(); err != nil {
			fmt.Println("booking left unpaid, pay it before the payment window closes")
			return nil
		}
		if err := c.PayBooking(ctx, bookingID); err != nil {
			return err
		}
		fmt.Println("paid")
		return nil
	},
}

func init() {
	bookCmd.Flags().IntVar(&bookSessionID, "session", 0, "session id")
}

func promptSelectSession(ctx context.Context, c *api.Client, movieID int) (int, error) {
	sessions, err := c.FetchMovieSessions(ctx, movieID)
	if err != nil {
		return 0, err
	}
	if len(sessions) == 0 {
		return 0, errors.New("no sessions for this movie")
	}
	labels := make([]string, len(sessions))
	for i, s := range sessions {
		labels[i] = fmt.Sprintf("%s %s (session %d)", client.DateLabel(s.StartTime), client.TimeLabel(s.StartTime), s.ID)
	}
	prompt := promptui.Select{
		Label: "Select session",
		Items: labels,
		Size:  10,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return sessions[i].ID, nil
}

// promptToggleSeats loops a seat picker until the user chooses Done. Booked
// seats are not offered; picking a selected seat deselects it.
func promptToggleSeats(details *domain.SessionDetails, view *client.SessionDetailsView, selection *client.SeatSelection) error {
	for {
		booked := view.BookedSeats().Seats()
		selected := selection.Selected()

		items := []string{"Done"}
		seats := []domain.Seat{}
		for row := 1; row <= details.Seats.Rows; row++ {
			for num := 1; num <= details.Seats.SeatsPerRow; num++ {
				seat := domain.Seat{RowNumber: row, SeatNumber: num}
				if domain.ContainsSeat(booked, seat) {
					continue
				}
				label := fmt.Sprintf("row %d seat %d", row, num)
				if domain.ContainsSeat(selected, seat) {
					label += " [selected]"
				}
				items = append(items, label)
				seats = append(seats, seat)
			}
		}

		prompt := promptui.Select{
			Label: fmt.Sprintf("Toggle seats (%d selected)", len(selected)),
			Items: items,
			Size:  15,
		}
		i, _, err := prompt.Run()
		if err != nil {
			return err
		}
		if i == 0 {
			return nil
		}
		selection.Toggle(seats[i-1])
	}
}
