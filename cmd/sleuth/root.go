package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	config        string
	originals     string
	logLevel      string
	threshold     float64
	thresholdMode string
}

// newRootCommand builds the command tree. The returned context must be closed
// once the command has executed.
func newRootCommand() (*cobra.Command, *commandContext) {
	flags := &rootFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "sleuth",
		Short:         "Trace modified images back to their registered originals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.originals, "originals", "", "Folder of original images (overrides paths.originals_dir)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.Float64Var(&flags.threshold, "threshold", 0, "Acceptance threshold (overrides matching.threshold)")
	pf.StringVar(&flags.thresholdMode, "threshold-mode", "", "Threshold mode: fraction or absolute")

	rootCmd.AddCommand(newRegisterCommand(ctx))
	rootCmd.AddCommand(newMatchCommand(ctx))
	rootCmd.AddCommand(newBatchCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd, ctx
}
