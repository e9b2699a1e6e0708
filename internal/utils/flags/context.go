package flags

import "github.com/spf13/cobra"

const (
	// BranchFlagName exposes the shared feature branch flag name.
	BranchFlagName = "branch"
	// BranchFlagShorthand provides the shorthand for the feature branch flag.
	BranchFlagShorthand = "b"
	// RepositoryFlagName exposes the shared repository location flag name.
	RepositoryFlagName = "repo"
	// RepositoryFlagUsage describes the shared repository location flag purpose.
	RepositoryFlagUsage = "Path inside the repository to operate on (defaults to the current directory)"
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Automatically confirm prompts"
)

// StringFlagDefinition captures configuration for a single string flag.
type StringFlagDefinition struct {
	Name      string
	Shorthand string
	Usage     string
	Enabled   bool
}

// BranchContextDefinitions groups the flag definitions shared by worktree commands.
type BranchContextDefinitions struct {
	Branch     StringFlagDefinition
	Repository StringFlagDefinition
}

// BranchContextValues stores the resolved branch and repository flag values.
type BranchContextValues struct {
	Branch     string
	Repository string
}

// BindBranchContextFlags attaches the branch and repository flags to the provided command.
func BindBranchContextFlags(command *cobra.Command, defaults BranchContextValues, definitions BranchContextDefinitions) *BranchContextValues {
	values := defaults
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	if definitions.Branch.Enabled && len(definitions.Branch.Name) > 0 {
		if len(definitions.Branch.Shorthand) > 0 {
			flagSet.StringVarP(&values.Branch, definitions.Branch.Name, definitions.Branch.Shorthand, defaults.Branch, definitions.Branch.Usage)
		} else {
			flagSet.StringVar(&values.Branch, definitions.Branch.Name, defaults.Branch, definitions.Branch.Usage)
		}
	}
	if definitions.Repository.Enabled && len(definitions.Repository.Name) > 0 {
		flagSet.StringVar(&values.Repository, definitions.Repository.Name, defaults.Repository, definitions.Repository.Usage)
	}

	return &values
}
