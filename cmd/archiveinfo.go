// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zellyn/derethfs/archive"
	"github.com/zellyn/derethfs/sector"
)

var infoDialect string

var archiveInfoCmd = &cobra.Command{
	Use:   "info <archive>",
	Short: "print sector size, dialect, and root directory offset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArchiveInfo(args[0])
	},
}

func init() {
	archiveInfoCmd.Flags().StringVar(&infoDialect, "dialect", "", "archive dialect: portal or cell (default: guessed from filename)")
	RootCmd.AddCommand(archiveInfoCmd)
}

func runArchiveInfo(path string) error {
	dialect, err := resolveDialect(infoDialect, path)
	if err != nil {
		return err
	}

	ar, err := archive.Open(path, dialect)
	if err != nil {
		return err
	}
	defer ar.Close()

	name := "portal"
	if dialect == sector.DialectCell {
		name = "cell"
	}
	fmt.Printf("dialect:     %s\n", name)
	fmt.Printf("sector size: %d\n", dialect.SectorSize())
	fmt.Printf("root offset: 0x%08x\n", ar.Root())
	return nil
}
