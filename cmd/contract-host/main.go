// Command contract-host loads contract modules and runs calls against a
// SQLite-backed host.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/contract-sdk/application/config"
	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "contract-host",
		Short:         "Run and inspect WebAssembly contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"YAML host config; "+config.EnvPrefix+"_* environment variables override it")

	cmd.AddCommand(
		newRunCmd(opts),
		newDescribeCmd(opts),
		newSchemaCmd(),
		newValidateCmd(),
	)
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// report writes the structured detail of err as JSON.
func report(w io.Writer, err error) {
	out, jerr := sdkerrors.ToErrorDetail(err).JSON()
	if jerr != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintf(w, "%s\n", out)
}
