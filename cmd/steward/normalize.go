package main

import (
	"github.com/spf13/cobra"

	"steward/codec"
)

func newNormalizeCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Fill in defaults and write the document back",
		Long: `Normalize resolves every slot of the document, recursively, so that
defaults, factory values and empty collections are written into it. The
result goes to stdout, or to the file given with --output. The output
format follows --format, then the output file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.load(args[0])
			if err != nil {
				return err
			}

			if err := rec.Materialize(); err != nil {
				return err
			}

			if output != "" {
				format, err := a.format()
				if err != nil {
					return err
				}

				a.logger.Info().Str("file", output).Msg("writing normalized document")

				return codec.WriteFile(output, rec.Plain(), format)
			}

			format, err := a.outputFormat(args[0])
			if err != nil {
				return err
			}

			data, err := codec.Encode(rec.Plain(), format)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}
