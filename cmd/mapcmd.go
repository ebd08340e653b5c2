// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zellyn/derethfs/archive"
	"github.com/zellyn/derethfs/helpers"
	"github.com/zellyn/derethfs/landblock"
	"github.com/zellyn/derethfs/sector"
)

var mapForce bool

var mapCmd = &cobra.Command{
	Use:   "map <cell-or-NEWMAP> <mapfile>",
	Short: "merge a CELL archive's terrain into a world map, or create a blank one",
	Long: `Map has two modes:

  map NEWMAP mapfile.bin        writes a zero-filled map file
  map CELL.DAT mapfile.bin      merges terrain records into mapfile.bin
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "NEWMAP" {
			return runMapNew(args[1])
		}
		return runMapMerge(args[0], args[1])
	},
}

func init() {
	mapCmd.Flags().BoolVarP(&mapForce, "force", "f", false, "overwrite an existing map file")
	RootCmd.AddCommand(mapCmd)
}

func runMapNew(mapPath string) error {
	m := landblock.NewMap()
	return writeMapFile(mapPath, m, mapForce)
}

func runMapMerge(cellPath, mapPath string) error {
	existing, err := os.Open(mapPath)
	if err != nil {
		return fmt.Errorf("cannot open map file %q for merge: %w", mapPath, err)
	}
	m, err := landblock.LoadMap(existing)
	existing.Close()
	if err != nil {
		return err
	}

	ar, err := archive.Open(cellPath, sector.DialectCell)
	if err != nil {
		return err
	}
	defer ar.Close()

	count, err := landblock.Aggregate(ar, m, os.Stderr)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "merged %d landblocks\n", count)

	// The file was just read back in above, so re-writing it in place
	// is always allowed regardless of --force.
	return writeMapFile(mapPath, m, true)
}

func writeMapFile(mapPath string, m *landblock.Map, force bool) error {
	var buf fileBuffer
	if err := m.Save(&buf); err != nil {
		return err
	}
	return helpers.WriteOutput(mapPath, buf.data, force)
}

// fileBuffer is a minimal io.Writer sink so Map.Save can be handed
// off to helpers.WriteOutput, which deals in whole-file []byte
// contents (for its "-" means stdout and --force semantics).
type fileBuffer struct {
	data []byte
}

func (b *fileBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
