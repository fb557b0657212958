package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohitvarshney-web/schengen-slots/internal/dashboard"
	"github.com/rohitvarshney-web/schengen-slots/internal/model"
	"github.com/rohitvarshney-web/schengen-slots/internal/slots"
	"github.com/rohitvarshney-web/schengen-slots/internal/ui"
)

var errUnknownCountry = errors.New("unknown country")

func showCmd(a *app) *cobra.Command {
	var city, date, month string
	cmd := &cobra.Command{
		Use:   "show <code>",
		Short: "Show centres, dates and a calendar for one country",
		Example: `  schengen show FR
  schengen show de --city Mumbai --month 2025-04`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, res, err := a.detail(cmd.Context(), args[0], city)
			if err != nil {
				return err
			}
			if date != "" {
				day, err := time.Parse(model.DateLayout, date)
				if err != nil {
					return usagef("--date must look like %s, got %q", model.DateLayout, date)
				}
				if err := d.SelectDate(day); err != nil {
					return fmt.Errorf("%s in %s: %w", date, d.Summary.CountryCode, err)
				}
			}
			if month != "" {
				m, err := time.Parse("2006-01", month)
				if err != nil {
					return usagef("--month must look like 2006-01, got %q", month)
				}
				d.SetMonth(m)
			}
			fmt.Fprintln(a.stdout, ui.Detail(d, res.Advisory))
			return nil
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "application centre to focus")
	cmd.Flags().StringVar(&date, "date", "", "date to focus, YYYY-MM-DD")
	cmd.Flags().StringVar(&month, "month", "", "month to display, YYYY-MM")
	return cmd
}

// detail loads one country and focuses city, if given.
func (a *app) detail(ctx context.Context, code, city string) (*dashboard.Detail, slots.SummaryResult, error) {
	list, err := a.provider.Countries(ctx)
	if err != nil {
		return nil, slots.SummaryResult{}, err
	}
	c, ok := dashboard.Find(list.Countries, code)
	if !ok {
		return nil, slots.SummaryResult{}, fmt.Errorf("%w: %s", errUnknownCountry, model.NormalizeCode(code))
	}
	res, err := a.provider.Summary(ctx, c.Code)
	if err != nil {
		return nil, slots.SummaryResult{}, err
	}
	d := dashboard.NewDetail(c.WithSummary(res.Summary), res.Summary, a.now)
	if city != "" {
		if err := d.SelectCity(city); err != nil {
			return nil, res, fmt.Errorf("%w: %s", err, city)
		}
	}
	return d, res, nil
}
