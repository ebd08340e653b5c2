// Copyright © 2016 Zellyn Hunter <zellyn@gmail.com>

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zellyn/derethfs/config"
)

var cfgFile string
var cfg *config.Config

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "derethfs",
	Short: "Read PORTAL.DAT/CELL.DAT archives and export their records",
	Long: `derethfs is a commandline tool for reading the sector-linked
archive format used by a late-1990s MMO client (PORTAL.DAT and
CELL.DAT), and for exporting the records it contains: raw extraction,
graphic-to-bitmap decoding, and terrain-to-map aggregation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.derethfs.yaml)")
}

// Execute adds all child commands to the root command sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
