package main

import (
	"fmt"
	"os"
	"unicode"

	"github.com/spf13/cobra"
)

var version = "dev"

// formatVersion adds 'v' prefix if version starts with a digit
func formatVersion(ver string) string {
	if len(ver) > 0 && unicode.IsDigit(rune(ver[0])) {
		return "v" + ver
	}
	return ver
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sigdb",
	Short: "Bluetooth SIG GATT characteristic codec and registry tool",
	Long: `sigdb resolves Bluetooth SIG assigned numbers and decodes/encodes
GATT characteristic values:

- Resolve a UUID or name against the assigned-numbers registry
- Parse raw characteristic bytes into a typed, unit-labeled value
- Encode a typed value back into raw characteristic bytes

This is a codec and registry library with a thin CLI shell; it does not
implement a BLE transport.`,
	Version: formatVersion(version),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(encodeCmd)

	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}
