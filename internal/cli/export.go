package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
	"github.com/rohitvarshney-web/schengen-slots/internal/store/jsonstore"
	"github.com/rohitvarshney-web/schengen-slots/internal/ui"
)

func exportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Save countries and availability as a fixture file",
		Long: `export loads every country's availability and writes it to a JSON file.
Point demo.file (or SCHENGEN_DEMO_FILE) at it to use it as demo data.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := a.provider.Countries(ctx)
			if err != nil {
				return err
			}
			if err := a.provider.Prefetch(ctx, codes(res.Countries), a.cfg.API.Prefetch); err != nil {
				return err
			}
			if res, err = a.provider.Countries(ctx); err != nil {
				return err
			}

			f := &model.Fixture{Countries: res.Countries, Slots: map[string]model.Summary{}}
			for _, c := range res.Countries {
				if s, ok := a.provider.Cached(c.Code); ok {
					f.Slots[c.Code] = s.Summary
				}
			}
			if err := jsonstore.Save(args[0], f); err != nil {
				return err
			}
			if res.Advisory != "" {
				ui.Warn(res.Advisory)
			}
			ui.OK(fmt.Sprintf("exported %d countries to %s", len(f.Countries), args[0]))
			return nil
		},
	}
}
