package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohitvarshney-web/schengen-slots/internal/dashboard"
	"github.com/rohitvarshney-web/schengen-slots/internal/model"
	"github.com/rohitvarshney-web/schengen-slots/internal/ui"
)

func lsCmd(a *app) *cobra.Command {
	var (
		query     string
		withSlots bool
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List destination countries",
		Example: `  schengen ls
  schengen ls --query fra --with-slots`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := a.provider.Countries(ctx)
			if err != nil {
				return err
			}
			if withSlots {
				if err := a.provider.Prefetch(ctx, codes(dashboard.Filter(res.Countries, query)), a.cfg.API.Prefetch); err != nil {
					return err
				}
				// summaries are folded into the cached list
				if res, err = a.provider.Countries(ctx); err != nil {
					return err
				}
			}

			shown := dashboard.Filter(res.Countries, query)
			lines := []string{
				ui.Header("Schengen appointments", dashboard.ComputeStats(res.Countries)),
				"",
				ui.CountryTable(shown, ui.TermWidth(0)-panelFrame),
			}
			if query != "" {
				lines = append(lines, "", ui.Current().Muted.Render(fmt.Sprintf("%d of %d match %q", len(shown), len(res.Countries), query)))
			}
			if res.Advisory != "" {
				ui.Warn(res.Advisory)
			}
			fmt.Fprintln(a.stdout, ui.PanelLines(lines))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by country name or code")
	cmd.Flags().BoolVar(&withSlots, "with-slots", false, "load availability for every listed country")
	return cmd
}

// panelFrame is the border and padding PanelLines adds around content.
const panelFrame = 4

func codes(countries []model.Country) []string {
	out := make([]string, 0, len(countries))
	for _, c := range countries {
		out = append(out, c.Code)
	}
	return out
}
