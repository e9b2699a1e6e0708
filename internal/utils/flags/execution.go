// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExecutionDefaults describes default toggle values shared across commands.
type ExecutionDefaults struct {
	AssumeYes    bool
	DeleteBranch bool
	KeepWorktree bool
}

// ExecutionFlagDefinition captures a single toggle flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// ExecutionFlagDefinitions groups execution toggle definitions.
type ExecutionFlagDefinitions struct {
	AssumeYes    ExecutionFlagDefinition
	DeleteBranch ExecutionFlagDefinition
	KeepWorktree ExecutionFlagDefinition
}

// ExecutionFlagValues stores the resolved execution toggle values.
type ExecutionFlagValues struct {
	AssumeYes    bool
	DeleteBranch bool
	KeepWorktree bool
}

// BindExecutionFlags attaches the standardized execution toggles to the provided command.
// Toggles accept yes/no style literals and default to true when given bare.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) *ExecutionFlagValues {
	values := &ExecutionFlagValues{
		AssumeYes:    defaults.AssumeYes,
		DeleteBranch: defaults.DeleteBranch,
		KeepWorktree: defaults.KeepWorktree,
	}
	if command == nil {
		return values
	}

	flagSet := command.Flags()
	bindToggleFlag(flagSet, &values.AssumeYes, definitions.AssumeYes, defaults.AssumeYes)
	bindToggleFlag(flagSet, &values.DeleteBranch, definitions.DeleteBranch, defaults.DeleteBranch)
	bindToggleFlag(flagSet, &values.KeepWorktree, definitions.KeepWorktree, defaults.KeepWorktree)

	return values
}

func bindToggleFlag(flagSet *pflag.FlagSet, target *bool, definition ExecutionFlagDefinition, defaultValue bool) {
	if flagSet == nil {
		return
	}
	if !definition.Enabled {
		return
	}
	if len(definition.Name) == 0 {
		return
	}

	AddToggleFlag(flagSet, target, definition.Name, definition.Shorthand, defaultValue, definition.Usage)
}
