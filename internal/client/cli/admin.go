package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

func (a *App) adminUsers(ctx context.Context, _ []string) error {
	users, err := a.api.AdminUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users registered")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tADMIN\tJOINED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", u.ID, u.Username, u.Email, u.IsAdmin, u.CreatedAt.Format(dateLayout))
	}
	return tw.Flush()
}
