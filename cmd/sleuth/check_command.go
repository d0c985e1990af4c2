package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sleuth/internal/preflight"
)

var errPreflightFailed = errors.New("preflight checks failed")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the originals folder and log destination are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			results := preflight.RunAll(cfg)
			handled, err := writeStructured(cmd, outFormat, results)
			if err != nil {
				return err
			}
			if !handled {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, r := range results {
					status := paint("OK", ansiGreen, colorize)
					if !r.Passed {
						status = paint("FAIL", ansiRed, colorize)
					}
					fmt.Fprintf(out, "  %-22s [%s] %s\n", r.Name+":", status, r.Detail)
				}
			}
			if !preflight.AllPassed(results) {
				return errPreflightFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or yaml")
	return cmd
}
