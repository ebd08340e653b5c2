// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zellyn/derethfs/archive"
)

var listPrefix string
var listDialect string

var listCmd = &cobra.Command{
	Use:   "list <archive>",
	Short: "list every key in the directory, optionally filtered by an 8-bit type prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(args[0])
	},
}

func init() {
	listCmd.Flags().StringVar(&listPrefix, "prefix", "", "only list keys with this 8-bit type prefix (hex, e.g. 05)")
	listCmd.Flags().StringVar(&listDialect, "dialect", "", "archive dialect: portal or cell (default: guessed from filename)")
	RootCmd.AddCommand(listCmd)
}

func runList(path string) error {
	dialect, err := resolveDialect(listDialect, path)
	if err != nil {
		return err
	}

	var match func(uint32) bool
	if listPrefix != "" {
		prefix, err := strconv.ParseUint(listPrefix, 16, 8)
		if err != nil {
			return fmt.Errorf("invalid --prefix %q: %v", listPrefix, err)
		}
		match = func(key uint32) bool { return key>>24 == uint32(prefix) }
	}

	ar, err := archive.Open(path, dialect)
	if err != nil {
		return err
	}
	defer ar.Close()

	triples, err := ar.Enumerate(match)
	if err != nil {
		return err
	}
	sort.Slice(triples, func(i, j int) bool { return triples[i].Key < triples[j].Key })

	for _, t := range triples {
		fmt.Printf("%08x %10d %8d\n", t.Key, t.Offset, t.Length)
	}
	return nil
}
