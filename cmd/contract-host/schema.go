package main

import (
	"github.com/spf13/cobra"

	"github.com/reglet-dev/contract-sdk/application/schema"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of contract interface descriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := schema.AbiSchema()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			return err
		},
	}
}
