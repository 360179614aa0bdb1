package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"steward/codec"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Print the value at a path",
		Long: `Get resolves a path through the document's record graph and prints the
value found. Scalars are printed as they are; records and collections are
encoded in the output format.

Example:
  steward get person.yaml name
  steward get person.yaml friends[0].home.zip
  steward get person.yaml offices[berlin]`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.load(args[0])
			if err != nil {
				return err
			}

			v, err := rec.Resolve(args[1])
			if err != nil {
				return err
			}

			v = plainOf(v)
			out := cmd.OutOrStdout()

			if !isContainer(v) {
				_, err = fmt.Fprintln(out, v)
				return err
			}

			format, err := a.outputFormat(args[0])
			if err != nil {
				return err
			}

			data, err := codec.Encode(v, format)
			if err != nil {
				return err
			}

			_, err = out.Write(data)

			return err
		},
	}
}
