package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <uuid-or-name>",
	Short: "Resolve a characteristic UUID or name against the assigned-numbers registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	target := args[0]

	t := translator(cmd)
	spec, ok := t.Resolve(target)
	if !ok {
		spec, ok = t.ResolveByName(target)
	}
	if !ok {
		return fmt.Errorf("no characteristic matches %q", target)
	}

	bold := color.New(color.Bold)
	bold.Printf("%s\n", spec.Name)
	fmt.Printf("  uuid:       %s\n", spec.UUID)
	fmt.Printf("  id:         %s\n", spec.ID)
	fmt.Printf("  value_type: %s\n", spec.ValueType)
	fmt.Printf("  fields:     %d\n", len(spec.Fields))
	return nil
}
