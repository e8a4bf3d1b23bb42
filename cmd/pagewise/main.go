package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:     "pagewise",
		Short:   "Paginated reader host",
		Long:    `pagewise splits documents into fixed-size pages and hosts reader sessions for embedded web view surfaces.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				return os.Setenv("PAGEWISE_CONFIG", cfgFile)
			}
			return nil
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (overrides $PAGEWISE_CONFIG)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newPaginateCmd())
	return root
}
