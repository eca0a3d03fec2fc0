package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	intentdispatch "agri-advisor/internal/advisor/intent-dispatch"
	"agri-advisor/internal/common/ui"
)

func newChatCmd(a *app) *cobra.Command {
	var quick string

	cmd := &cobra.Command{
		Use:   "chat [message...]",
		Short: "Ask the farming assistant",
		Long: `Classify a message and print the assistant's reply.

With arguments, the arguments form one message. Without, each line read from
stdin is a message until EOF. --quick sends a quick-reply keyword instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			box := ui.NewChatBox()
			h, err := intentdispatch.NewHandler(intentdispatch.LoadConfig(a.cfg), box, a.log)
			if err != nil {
				return err
			}
			defer h.Wait()

			out := cmd.OutOrStdout()
			reply := func(p *intentdispatch.Pending) {
				fmt.Fprintf(out, "%s\n\n", plainText(p.Wait().Body))
			}

			if quick != "" {
				p, err := h.Quick(quick)
				if err != nil {
					return err
				}
				reply(p)
				return nil
			}

			if len(args) > 0 {
				p, err := h.Submit(strings.Join(args, " "))
				if err != nil {
					return err
				}
				reply(p)
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				p, err := h.Submit(scanner.Text())
				if errors.Is(err, intentdispatch.ErrEmptyUtterance) {
					continue
				}
				if err != nil {
					return err
				}
				reply(p)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&quick, "quick", "", "Send a quick-reply keyword (crop, weather, fertilizer, disease, guide)")

	return cmd
}
