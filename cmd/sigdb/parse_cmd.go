package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <uuid> <hex-bytes>",
	Short: "Decode raw characteristic bytes into a typed, unit-labeled value",
	Args:  cobra.ExactArgs(2),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	uuid := args[0]
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.ReplaceAll(args[1], " ", ""), "0x"))
	if err != nil {
		return fmt.Errorf("invalid hex bytes %q: %w", args[1], err)
	}

	t := translator(cmd)
	data := t.Parse(uuid, raw)
	if !data.OK {
		color.New(color.FgRed).Printf("decode failed: %s\n", data.Err)
		return nil
	}

	color.New(color.FgGreen).Printf("%v", data.Value)
	if data.Unit != "" {
		fmt.Printf(" %s", data.Unit)
	}
	fmt.Println()
	return nil
}
