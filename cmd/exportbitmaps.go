// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zellyn/derethfs/archive"
	"github.com/zellyn/derethfs/bitmap"
	"github.com/zellyn/derethfs/helpers"
	"github.com/zellyn/derethfs/sector"
)

var exportOutDir string
var exportForce bool

var exportBitmapsCmd = &cobra.Command{
	Use:   "export-bitmaps <portal>",
	Short: "decode every graphic record and export it as a 24-bit bitmap",
	Long: `Export-bitmaps decodes every palettized (0x05) and direct-color
(0x06) graphic record in a PORTAL archive, emitting gr%04d.bmp files
plus a manifest line per emission on stdout.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExportBitmaps(args[0])
	},
}

func init() {
	exportBitmapsCmd.Flags().StringVarP(&exportOutDir, "outdir", "d", "", "output directory (default: config outdir or \".\")")
	exportBitmapsCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "overwrite existing bitmap files")
	RootCmd.AddCommand(exportBitmapsCmd)
}

func runExportBitmaps(path string) error {
	outDir := exportOutDir
	if outDir == "" && cfg != nil {
		outDir = cfg.OutDir
	}
	if outDir == "" {
		outDir = "."
	}

	// Graphic records only ever live in a PORTAL-class archive.
	ar, err := archive.Open(path, sector.DialectPortal)
	if err != nil {
		return err
	}
	defer ar.Close()

	emit := func(entry bitmap.ManifestEntry, img *bitmap.Image) error {
		name := filepath.Join(outDir, fmt.Sprintf("gr%04d.bmp", entry.Index))
		return helpers.WriteOutput(name, bitmap.Encode(img), exportForce)
	}

	return bitmap.Export(ar, os.Stdout, emit)
}
