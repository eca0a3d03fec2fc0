package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	predictsubmit "agri-advisor/internal/advisor/predict-submit"
	"agri-advisor/internal/common/ui"
)

func newPredictCmd(a *app) *cobra.Command {
	var (
		sets        []string
		withSamples bool
		asHTML      bool
	)

	cmd := &cobra.Command{
		Use:   "predict <form>",
		Short: "Submit a prediction form",
		Long: `Submit one of the configured forms (crop, fertilizer, suitability by
default) to the prediction backend and print the result.

Field values are given with --set name=value; --samples pre-fills the form's
sample values first, and --set overrides them.`,
		Example: `  advisor predict crop --samples --set state=Punjab --set district=Ludhiana
  advisor predict suitability --set crop=rice --set temperature=28 --set humidity=80 --set rainfall=200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := a.form(args[0])
			if err != nil {
				return err
			}

			cfg := predictsubmit.LoadConfig(args[0], fc)
			button := ui.NewButton(fc.SubmitLabel)
			panel := ui.NewResultPanel()
			h, err := predictsubmit.NewHandler(cfg, a.client, button, panel, a.recorder(), a.log)
			if err != nil {
				return err
			}

			values := predictsubmit.FormValues{}
			if withSamples {
				for k, v := range h.Samples() {
					values[k] = v
				}
			}
			for _, kv := range sets {
				k, v, ok := strings.Cut(kv, "=")
				if !ok || k == "" {
					return fmt.Errorf("invalid --set %q, want name=value", kv)
				}
				values[k] = v
			}

			res, err := h.Submit(cmd.Context(), values)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case res.HTML != "" && asHTML:
				fmt.Fprintln(out, res.HTML)
			case res.HTML != "":
				fmt.Fprintln(out, plainText(res.HTML))
			default:
				fmt.Fprintln(out, res.Text)
			}

			if res.Outcome != predictsubmit.OutcomeSuccess {
				return fmt.Errorf("prediction %s", res.Outcome)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as name=value (repeatable)")
	cmd.Flags().BoolVar(&withSamples, "samples", false, "Pre-fill the form's sample values")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Print the result card as HTML")

	return cmd
}
