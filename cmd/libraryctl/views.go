package main

import (
	"fmt"
	"sort"
)

func runMenu(cc *commandContext, _ []string) error {
	if err := cc.Client.WaitReady(cc.Ctx); err != nil {
		return err
	}
	items := cc.Client.Guard.Menu()
	if len(items) == 0 {
		_, _ = fmt.Fprintln(cc.Stdout, "Not signed in. Available: /login, /register")
		return nil
	}
	tw := newTable(cc.Stdout)
	for _, item := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", item.Label, item.Path)
	}
	return tw.Flush()
}

func runDashboard(cc *commandContext, _ []string) error {
	if err := navigate(cc, "/dashboard"); err != nil {
		return err
	}
	ov, err := cc.Client.Dashboard.Overview(cc.Ctx)
	if err != nil {
		return err
	}

	tw := newTable(cc.Stdout)
	_, _ = fmt.Fprintf(tw, "Books:\t%d total, %d available\n", ov.Books.TotalBooks, ov.Books.AvailableBooks)
	_, _ = fmt.Fprintf(tw, "Users:\t%d\n", ov.Users.TotalUsers)
	for _, section := range []struct {
		name   string
		values map[string]any
	}{
		{"Borrowings", ov.Borrowings},
		{"Events", ov.Events},
		{"Reviews", ov.Reviews},
	} {
		if len(section.values) == 0 {
			continue
		}
		keys := make([]string, 0, len(section.values))
		for k := range section.values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(tw, "%s.%s:\t%v\n", section.name, k, section.values[k])
		}
	}
	if ov.LastUpdated != "" {
		_, _ = fmt.Fprintf(tw, "Updated:\t%s\n", ov.LastUpdated)
	}
	return tw.Flush()
}

func runProfile(cc *commandContext, _ []string) error {
	if err := navigate(cc, "/profile"); err != nil {
		return err
	}
	if err := runWhoami(cc, nil); err != nil {
		return err
	}

	sum, err := cc.Client.Dashboard.ProfileSummary(cc.Ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cc.Stdout, "\nAvailable books (%d):\n", len(sum.AvailableBooks))
	if err := renderBooks(cc.Stdout, sum.AvailableBooks, nil); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cc.Stdout, "\nUpcoming events (%d):\n", len(sum.UpcomingEvents))
	return renderEvents(cc.Stdout, sum.UpcomingEvents, nil)
}
