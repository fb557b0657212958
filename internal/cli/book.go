package cli

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
	"github.com/rohitvarshney-web/schengen-slots/internal/ui"
)

func bookCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "book <code> <city> <date>",
		Short: "Log a booking request for an available date",
		Long: `book checks that the centre offers the date and logs a booking request
with a reference. Nothing is submitted to any booking system.`,
		Example: `  schengen book FR "New Delhi" 2025-03-12`,
		Args:    exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := time.Parse(model.DateLayout, args[2])
			if err != nil {
				return usagef("date must look like %s, got %q", model.DateLayout, args[2])
			}
			d, _, err := a.detail(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := d.SelectDate(day); err != nil {
				return fmt.Errorf("%s at %s: %w", args[2], args[1], err)
			}
			b, err := d.Book()
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"reference": b.Reference.String(),
				"country":   b.CountryCode,
				"city":      b.City,
				"date":      model.DateKey(b.Date),
			}).Info("booking requested (placeholder, not submitted)")

			ui.OK(fmt.Sprintf("booking request logged: %s %s %s", b.CountryCode, b.City, ui.FormatDate(b.Date)))
			fmt.Fprintf(a.stdout, "reference %s\n", b.Reference)
			return nil
		},
	}
}
