package main

import (
	"github.com/spf13/cobra"

	"sleuth/internal/batch"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var format string
	var parallel int
	var list bool

	cmd := &cobra.Command{
		Use:   "batch DIR...",
		Short: "Investigate every image in one or more folders",
		Long: "Each folder, and each immediate subfolder holding images, runs as a named\n" +
			"section in sorted order. Query files are matched by extension ignoring case.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			if list {
				return listSections(cmd, ctx, outFormat, args)
			}
			sess, err := ctx.openSession(cmd)
			if err != nil {
				return err
			}

			opts := []batch.Option{
				batch.WithLogger(sess.logger),
				batch.WithWorkers(parallel),
			}
			if shouldColorize(cmd.ErrOrStderr()) {
				opts = append(opts, batch.WithProgress(cmd.ErrOrStderr()))
			}
			runner := batch.NewRunner(sess.detective, sess.cfg.Registration.Extensions, opts...)

			report, err := runner.Run(cmd.Context(), args)
			if err != nil {
				return err
			}
			if handled, err := writeStructured(cmd, outFormat, report); handled {
				return err
			}
			out := cmd.OutOrStdout()
			renderBatch(out, report, shouldColorize(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or yaml")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "Number of query images investigated at once")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List the sections and query images without investigating them")
	return cmd
}

func listSections(cmd *cobra.Command, ctx *commandContext, format string, dirs []string) error {
	cfg, err := ctx.ensureConfig(cmd)
	if err != nil {
		return err
	}
	sections, err := batch.NewRunner(nil, cfg.Registration.Extensions).Plan(dirs)
	if err != nil {
		return err
	}
	if handled, err := writeStructured(cmd, format, sections); handled {
		return err
	}
	out := cmd.OutOrStdout()
	renderPlan(out, sections, shouldColorize(out))
	return nil
}
