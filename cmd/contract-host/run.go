package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/contract-sdk/abi"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

type runOptions struct {
	wasm      string
	dbPath    string
	function  string
	args      []string
	sender    string
	readOnly  bool
	construct bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Call a contract function and print its encoded results as hex",
		Long: `Call a contract function. Each --arg is the hex wire encoding of one
argument slot. The results are printed as the hex of their successive
encodings.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := opts.envelope()
			if err != nil {
				return err
			}
			sender, err := hex.DecodeString(opts.sender)
			if err != nil {
				return fmt.Errorf("--sender: %w", err)
			}

			ctx := cmd.Context()
			e, err := setup(ctx, root.configPath, opts.dbPath)
			if err != nil {
				return err
			}
			defer e.close(ctx)

			inst, err := e.load(ctx, opts.wasm)
			if err != nil {
				return err
			}

			call := inst.Execute
			switch {
			case opts.construct:
				call = inst.Construct
			case opts.readOnly:
				call = inst.ExecuteReadOnly
			}
			out, err := call(ctx, payload, sender)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.wasm, "wasm", "", "contract module")
	flags.StringVar(&opts.dbPath, "db", "", "state database, overriding the configured path")
	flags.StringVar(&opts.function, "function", "", "function name")
	flags.StringArrayVar(&opts.args, "arg", nil, "hex encoded argument slot (repeatable)")
	flags.StringVar(&opts.sender, "sender", "", "hex encoded caller key")
	flags.BoolVar(&opts.readOnly, "readonly", false, "call the read-only table")
	flags.BoolVar(&opts.construct, "construct", false, "call the constructor")
	_ = cmd.MarkFlagRequired("wasm")
	cmd.MarkFlagsMutuallyExclusive("readonly", "construct")
	return cmd
}

// envelope encodes the call. A constructor call without --function sends an
// empty payload.
func (o *runOptions) envelope() ([]byte, error) {
	if o.function == "" {
		if o.construct && len(o.args) == 0 {
			return nil, nil
		}
		return nil, errors.New("--function is required")
	}
	slots := make([][]byte, 0, len(o.args))
	for i, a := range o.args {
		b, err := hex.DecodeString(a)
		if err != nil {
			return nil, fmt.Errorf("--arg %d: %w", i, err)
		}
		slots = append(slots, b)
	}
	return wireformat.Marshal(abi.CallEnvelope{Function: o.function, Parameters: slots})
}
