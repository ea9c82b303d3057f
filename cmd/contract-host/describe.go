package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDescribeCmd(root *rootOptions) *cobra.Command {
	var wasm, format string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the interface description of a contract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			ctx := cmd.Context()
			e, err := setup(ctx, root.configPath, "")
			if err != nil {
				return err
			}
			defer e.close(ctx)

			inst, err := e.load(ctx, wasm)
			if err != nil {
				return err
			}
			desc := inst.Abi()

			var out []byte
			if format == "yaml" {
				out, err = yaml.Marshal(desc)
			} else {
				out, err = desc.JSON()
				out = append(out, '\n')
			}
			if err != nil {
				return fmt.Errorf("render description: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&wasm, "wasm", "", "contract module")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	_ = cmd.MarkFlagRequired("wasm")
	return cmd
}
