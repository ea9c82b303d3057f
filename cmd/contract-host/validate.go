package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/contract-sdk/application/validation"
	"github.com/reglet-dev/contract-sdk/infrastructure/parser"
)

var errInvalidDescription = errors.New("invalid interface description")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a YAML or JSON interface description against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read description: %w", err)
			}
			doc, err := parser.ToJSON(data)
			if err != nil {
				return err
			}
			v, err := validation.NewAbiValidator()
			if err != nil {
				return err
			}
			res, err := v.Validate(doc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !res.Valid {
				for _, e := range res.Errors {
					field := e.Field
					if field == "" {
						field = "/"
					}
					fmt.Fprintf(out, "%s: %s\n", field, e.Message)
				}
				return errInvalidDescription
			}

			desc, err := parser.NewYamlAbiParser().Parse(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %d functions\n", desc.Contract, len(desc.Functions))
			return nil
		},
	}
}
