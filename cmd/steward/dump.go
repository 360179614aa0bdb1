package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"steward/plain"
)

func newDumpCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump the materialized tree with Go types",
		Long: `Dump prints the document's tree after every default has been resolved,
showing the Go type of each value. With --raw the tree is printed as it
was decoded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.load(args[0])
			if err != nil {
				return err
			}

			if !raw {
				if err := rec.Materialize(); err != nil {
					return err
				}
			}

			cfg := spew.ConfigState{
				Indent:                  "  ",
				SortKeys:                true,
				DisablePointerAddresses: true,
				DisableCapacities:       true,
			}
			cfg.Fdump(cmd.OutOrStdout(), plain.Export(rec.Plain()))

			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "skip default resolution")

	return cmd
}
