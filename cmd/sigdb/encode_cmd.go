package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <uuid> <value>",
	Short: "Encode a numeric value into raw characteristic bytes",
	Long: `Encodes a numeric value for characteristics whose decoded value is a
plain float64 (most scaled/numeric characteristics, e.g. Battery Level,
Temperature). Structured and bespoke characteristics are not representable
as a single CLI argument and are out of scope for this thin shell.`,
	Args: cobra.ExactArgs(2),
	RunE: runEncode,
}

func runEncode(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	uuid := args[0]
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q: %w", args[1], err)
	}

	t := translator(cmd)
	raw, encErr := t.Encode(uuid, value)
	if encErr != nil {
		color.New(color.FgRed).Printf("encode failed: %s\n", encErr)
		return nil
	}

	fmt.Println(hex.EncodeToString(raw))
	return nil
}
