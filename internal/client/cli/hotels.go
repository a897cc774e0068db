package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/hongminglow/atithi-inn/internal/client"
)

func (a *App) hotels(ctx context.Context, args []string) error {
	search := client.HotelSearch{}
	if len(args) > 0 {
		search.City = args[0]
	}
	if len(args) > 1 {
		page, err := strconv.Atoi(args[1])
		if err != nil || page < 1 {
			return fmt.Errorf("page must be a positive number")
		}
		search.Page = page
	}

	res, err := a.api.Hotels(ctx, search)
	if err != nil {
		return err
	}
	if len(res.Data) == 0 {
		fmt.Fprintln(a.out, "No hotels found")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tFROM\tRATING")
	for _, h := range res.Data {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.1f\n", h.ID, h.Name, h.City, h.CheapestPrice, h.Rating)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Page %d of %d (%d hotels)\n", res.CurrentPage, res.TotalPages, res.TotalCount)
	return nil
}

func (a *App) hotel(ctx context.Context, args []string) error {
	id, err := argOrPrompt(args, 0, a.in, a.out, "Hotel ID")
	if err != nil {
		return err
	}
	h, err := a.api.Hotel(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s, %s (%s)\n", h.Name, h.City, h.Address)
	fmt.Fprintf(a.out, "Rating %.1f from %d reviews\n", h.Rating, h.NumReviews)
	if h.Description != "" {
		fmt.Fprintln(a.out, h.Description)
	}
	if len(h.Rooms) == 0 {
		fmt.Fprintln(a.out, "No rooms listed")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROOM ID\tTITLE\tPRICE\tMAX GUESTS")
	for _, r := range h.Rooms {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\n", r.ID, r.Title, r.Price, r.MaxPeople)
	}
	return tw.Flush()
}
