package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/hongminglow/atithi-inn/internal/models/dto"
)

const dateLayout = "2006-01-02"

func (a *App) book(ctx context.Context, args []string) error {
	roomID, err := argOrPrompt(args, 0, a.in, a.out, "Room ID")
	if err != nil {
		return err
	}
	checkIn, err := argOrPrompt(args, 1, a.in, a.out, "Check-in (YYYY-MM-DD)")
	if err != nil {
		return err
	}
	checkOut, err := argOrPrompt(args, 2, a.in, a.out, "Check-out (YYYY-MM-DD)")
	if err != nil {
		return err
	}
	guests := 1
	if len(args) > 3 {
		if guests, err = strconv.Atoi(args[3]); err != nil || guests < 1 {
			return fmt.Errorf("guests must be a positive number")
		}
	}

	booking, err := a.api.Book(ctx, roomID, dto.CreateBookingRequest{
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Guests:        guests,
		PaymentMethod: "card",
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Booked %d night(s) for %.2f, booking %s is %s\n",
		booking.DaysOfStay, booking.TotalPrice, booking.ID, booking.Status)
	return nil
}

func (a *App) bookings(ctx context.Context, _ []string) error {
	list, err := a.api.MyBookings(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No bookings yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHOTEL\tROOM\tCHECK-IN\tCHECK-OUT\tTOTAL\tSTATUS")
	for _, b := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\t%s\n", b.ID, b.HotelName, b.RoomTitle,
			b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout), b.TotalPrice, b.Status)
	}
	return tw.Flush()
}

func (a *App) cancel(ctx context.Context, args []string) error {
	id, err := argOrPrompt(args, 0, a.in, a.out, "Booking ID")
	if err != nil {
		return err
	}
	booking, err := a.api.CancelBooking(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Booking %s is now %s\n", booking.ID, booking.Status)
	return nil
}
