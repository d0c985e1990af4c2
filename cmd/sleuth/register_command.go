package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the originals folder and list the stored signatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			cfg, _, _, store, err := ctx.register(cmd)
			if err != nil {
				return err
			}
			if handled, err := writeStructured(cmd, outFormat, store.All()); handled {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loading originals from: %s\n", cfg.Paths.OriginalsDir)
			if store.Len() > 0 {
				fmt.Fprintln(out, renderSignatureTable(store.All()))
			}
			fmt.Fprintf(out, "Total originals: %d (%s)\n", store.Len(), humanize.Bytes(uint64(max(store.TotalBytes(), 0))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or yaml")
	return cmd
}
