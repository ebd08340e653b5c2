// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zellyn/derethfs/archive"
	"github.com/zellyn/derethfs/helpers"
)

var extractDialect string
var extractOut string
var extractForce bool

var extractCmd = &cobra.Command{
	Use:   "extract <archive> <hex-key>",
	Short: "extract a raw record by key to a standalone file",
	Long: `Extract writes the raw bytes of a single record to a file.

extract PORTAL.DAT 05000001
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(args)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractDialect, "dialect", "", "archive dialect: portal or cell (default: guessed from filename)")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "output filename (default: the hex key)")
	extractCmd.Flags().BoolVarP(&extractForce, "force", "f", false, "overwrite an existing output file")
	RootCmd.AddCommand(extractCmd)
}

func runExtract(args []string) error {
	path, keyHex := args[0], args[1]

	// Keys are unsigned 32-bit; parsing with a signed width would
	// sign-extend keys >= 0x80000000 into the wrong value.
	key, err := strconv.ParseUint(keyHex, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid hex key %q: %v", keyHex, err)
	}

	dialect, err := resolveDialect(extractDialect, path)
	if err != nil {
		return err
	}

	ar, err := archive.Open(path, dialect)
	if err != nil {
		return err
	}
	defer ar.Close()

	data, err := ar.ReadKey(uint32(key))
	if err != nil {
		return err
	}

	out := extractOut
	if out == "" {
		out = fmt.Sprintf("%08x", uint32(key))
	}
	if out == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return helpers.WriteOutput(out, data, extractForce)
}
