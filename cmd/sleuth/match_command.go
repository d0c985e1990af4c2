package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sleuth/internal/provenance"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var format string
	var all bool

	cmd := &cobra.Command{
		Use:   "match IMAGE...",
		Short: "Find the registered original each image was derived from",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			sess, err := ctx.openSession(cmd)
			if err != nil {
				return err
			}

			outcomes := make([]provenance.Outcome, 0, len(args))
			for _, path := range args {
				outcome, err := sess.detective.Investigate(cmd.Context(), path)
				if err != nil {
					return err
				}
				outcomes = append(outcomes, outcome)
			}

			var payload any = outcomes
			if len(outcomes) == 1 {
				payload = outcomes[0]
			}
			if handled, err := writeStructured(cmd, outFormat, payload); handled {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Originals: %d  Rules: %d  Policy: %s\n",
				sess.store.Len(), sess.detective.Aggregator().Rules().Len(), sess.detective.Policy())
			for _, o := range outcomes {
				fmt.Fprintln(out)
				renderOutcome(out, o, all, colorize)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or yaml")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every ranked original, not just the best")
	return cmd
}
