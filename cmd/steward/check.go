package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"steward/codec"
	"steward/internal/inspect"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Report unknown keys, missing slots and shape errors",
		Long: `Check inspects a document against the configured record type without
decoding it. Every finding is printed with its path; the command fails
when at least one error is found. Warnings do not fail the command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.recordType()
			if err != nil {
				return err
			}

			tree, err := codec.ReadFile(args[0], 0)
			if err != nil {
				return err
			}

			res := inspect.Tree(t, tree)

			out := cmd.OutOrStdout()
			for _, d := range res.All() {
				fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
			}

			if res.HasErrors() {
				return fmt.Errorf("%s: %d error(s) found", args[0], len(res.Errors))
			}

			fmt.Fprintf(out, "%s: ok\n", args[0])

			return nil
		},
	}
}
