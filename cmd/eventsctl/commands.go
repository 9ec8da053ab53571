package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"cloud-events-sync/internal/domain/events"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events from the record store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer s.close()

		printEvents(cmd.OutOrStdout(), s.ctrl.Events())
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an event with a fresh id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := inputFromFlags(cmd)
		if err != nil {
			return err
		}

		s, err := openSession(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer s.close()

		e, err := s.ctrl.Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", e.ID)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace every field of an existing event",
	Long: `Replace title, venue, description and date of an existing event.
Fields not given as flags keep their cached value; an id that is not in the
loaded events needs all four flags. Update never creates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer s.close()

		e, ok := findEvent(s.ctrl.Events(), args[0])
		if !ok {
			if !allEventFlagsSet(cmd) {
				return fmt.Errorf("event %q is not loaded: --title, --venue, --description and --date are required", args[0])
			}
			e = events.Event{ID: args[0]}
		}
		if e, err = mergeFlags(cmd, e); err != nil {
			return err
		}
		if err := validateEvent(e); err != nil {
			return err
		}

		if err := s.ctrl.Update(cmd.Context(), e); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", e.ID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer s.close()

		e, ok := findEvent(s.ctrl.Events(), args[0])
		if !ok {
			e = events.Event{ID: args[0]}
		}
		if err := s.ctrl.Delete(cmd.Context(), e); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", e.ID)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().String("title", "", "event title")
		c.Flags().String("venue", "", "event venue")
		c.Flags().String("description", "", "event description")
		c.Flags().String("date", "", "event date (RFC3339 or YYYY-MM-DD)")
	}
}

var eventFlags = []string{"title", "venue", "description", "date"}

func inputFromFlags(cmd *cobra.Command) (events.CreateInput, error) {
	title, _ := cmd.Flags().GetString("title")
	venue, _ := cmd.Flags().GetString("venue")
	desc, _ := cmd.Flags().GetString("description")
	rawDate, _ := cmd.Flags().GetString("date")

	date, err := parseDate(rawDate)
	if err != nil {
		return events.CreateInput{}, err
	}
	if err := validateEvent(events.Event{Title: title, Venue: venue, Description: desc, Date: date}); err != nil {
		return events.CreateInput{}, err
	}
	return events.CreateInput{Title: title, Venue: venue, Description: desc, Date: date}, nil
}

// validateEvent aplica las mismas reglas que la API HTTP: strings no vacíos y fecha.
func validateEvent(e events.Event) error {
	if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Venue) == "" || strings.TrimSpace(e.Description) == "" {
		return errors.New("--title, --venue and --description are required and must not be empty")
	}
	if e.Date.IsZero() {
		return errors.New("--date is required")
	}
	return nil
}

func allEventFlagsSet(cmd *cobra.Command) bool {
	for _, name := range eventFlags {
		if !cmd.Flags().Changed(name) {
			return false
		}
	}
	return true
}

func mergeFlags(cmd *cobra.Command, e events.Event) (events.Event, error) {
	if cmd.Flags().Changed("title") {
		e.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("venue") {
		e.Venue, _ = cmd.Flags().GetString("venue")
	}
	if cmd.Flags().Changed("description") {
		e.Description, _ = cmd.Flags().GetString("description")
	}
	if cmd.Flags().Changed("date") {
		raw, _ := cmd.Flags().GetString("date")
		d, err := parseDate(raw)
		if err != nil {
			return e, err
		}
		e.Date = d
	}
	return e, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --date %q: want RFC3339 or YYYY-MM-DD", raw)
}

func findEvent(items []events.Event, id string) (events.Event, bool) {
	for _, e := range items {
		if e.ID == id {
			return e, true
		}
	}
	return events.Event{}, false
}

func printEvents(w io.Writer, items []events.Event) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tVENUE")
	for _, e := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Date.Format(time.DateOnly), e.Title, e.Venue)
	}
	_ = tw.Flush()
}
