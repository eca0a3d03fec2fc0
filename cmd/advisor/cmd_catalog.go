package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	catalogloader "agri-advisor/internal/advisor/catalog-loader"
	"agri-advisor/internal/common/ui"
)

func newCatalogCmd(a *app) *cobra.Command {
	var primary string

	cmd := &cobra.Command{
		Use:   "catalog <form>",
		Short: "Show the option catalogs of a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := a.form(args[0])
			if err != nil {
				return err
			}

			cfg := catalogloader.LoadConfig(args[0], fc)
			controls := catalogControls(cfg)
			loader, err := catalogloader.NewHandler(cfg, a.client, controls, a.recorder(), a.log)
			if err != nil {
				return err
			}

			res, err := loader.Initialize(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Flat != nil {
				fmt.Fprintf(out, "Catalog (%s):\n", res.Flat.Source)
				printOptions(out, controls.Catalog)
			}
			if res.Regions != nil {
				fmt.Fprintf(out, "Regions (%s):\n", res.Regions.Source)
				printOptions(out, controls.Primary)
				if primary != "" {
					if err := controls.Primary.Select(primary); err != nil {
						return err
					}
					fmt.Fprintf(out, "Sub-regions of %s:\n", primary)
					printOptions(out, controls.Dependent)
				}
			}
			if res.Flat == nil && res.Regions == nil {
				fmt.Fprintf(out, "Form %q has no catalogs.\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&primary, "state", "", "Also list the districts of this state")

	return cmd
}

// catalogControls binds only the selects a form has catalogs for.
func catalogControls(cfg *catalogloader.Config) catalogloader.Controls {
	var c catalogloader.Controls
	if cfg.CatalogEndpoint != "" || len(cfg.CatalogFallback) > 0 {
		c.Catalog = ui.NewSelect()
	}
	if cfg.MappingEndpoint != "" || len(cfg.RegionFallback) > 0 {
		c.Primary = ui.NewSelect()
		c.Dependent = ui.NewSelect()
	}
	return c
}

func printOptions(out io.Writer, sel *ui.Select) {
	printed := 0
	for _, o := range sel.Options() {
		if o.Value == "" {
			continue
		}
		fmt.Fprintf(out, "  - %s\n", o.Label)
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(out, "  (none)")
	}
}
