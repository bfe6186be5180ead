package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/ramatoys/storefront/internal/catalog"
)

const outputFlag = "output"

func newSeedCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the default products when the catalog slot is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, open, func(rt *Runtime) error {
				products, err := catalog.NewService(catalog.NewRepository(rt.Store), nil).Catalog(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "catalog holds %d products\n", len(products))
				return err
			})
		},
	}
}

func newExportCommand(open Opener) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		outputFlag: &cobraflags.StringFlag{
			Name:  outputFlag,
			Value: "-",
			Usage: "CSV destination file, - for stdout",
		},
	}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the product list as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, open, func(rt *Runtime) error {
				products, err := catalog.NewService(catalog.NewRepository(rt.Store), nil).Current(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if path := flags[outputFlag].GetString(); path != "-" && path != "" {
					f, err := os.Create(path)
					if err != nil {
						return err
					}
					defer f.Close()
					out = io.Writer(f)
				}
				return catalog.WriteCSV(out, products)
			})
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}
