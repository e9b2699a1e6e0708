// Package worktrees assembles the start and finish Cobra commands over the
// worktree services.
package worktrees

const (
	startConfigurationSegmentConstant  = "start"
	finishConfigurationSegmentConstant = "finish"
	repositoryConfigurationKeyConstant = "repo"
	baseConfigurationKeyConstant       = "base"
	pathConfigurationKeyConstant       = "path"
	intoConfigurationKeyConstant       = "into"
	strategyConfigurationKeyConstant   = "strategy"
	deleteBranchConfigurationKey       = "delete_branch"
	keepWorktreeConfigurationKey       = "keep_worktree"
	assumeYesConfigurationKeyConstant  = "assume_yes"
	configurationKeySeparatorConstant  = "."
	defaultRepositoryPathConstant      = "."
	defaultMergeStrategyNameConstant   = "merge"
)

// StartConfiguration stores configured defaults for the start command.
type StartConfiguration struct {
	Repository string `mapstructure:"repo" yaml:"repo"`
	Base       string `mapstructure:"base" yaml:"base"`
	Path       string `mapstructure:"path" yaml:"path"`
	AssumeYes  bool   `mapstructure:"assume_yes" yaml:"assume_yes"`
}

// FinishConfiguration stores configured defaults for the finish command.
type FinishConfiguration struct {
	Repository   string `mapstructure:"repo" yaml:"repo"`
	Into         string `mapstructure:"into" yaml:"into"`
	Strategy     string `mapstructure:"strategy" yaml:"strategy"`
	DeleteBranch bool   `mapstructure:"delete_branch" yaml:"delete_branch"`
	KeepWorktree bool   `mapstructure:"keep_worktree" yaml:"keep_worktree"`
	AssumeYes    bool   `mapstructure:"assume_yes" yaml:"assume_yes"`
}

// CommandConfiguration groups worktree command configuration sections.
type CommandConfiguration struct {
	Start  StartConfiguration  `mapstructure:"start" yaml:"start"`
	Finish FinishConfiguration `mapstructure:"finish" yaml:"finish"`
}

// DefaultConfigurationValues exposes configuration defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	startPrefix := configurationPrefix + configurationKeySeparatorConstant + startConfigurationSegmentConstant + configurationKeySeparatorConstant
	finishPrefix := configurationPrefix + configurationKeySeparatorConstant + finishConfigurationSegmentConstant + configurationKeySeparatorConstant

	return map[string]any{
		startPrefix + repositoryConfigurationKeyConstant:  defaultRepositoryPathConstant,
		startPrefix + baseConfigurationKeyConstant:        "",
		startPrefix + pathConfigurationKeyConstant:        "",
		startPrefix + assumeYesConfigurationKeyConstant:   false,
		finishPrefix + repositoryConfigurationKeyConstant: defaultRepositoryPathConstant,
		finishPrefix + intoConfigurationKeyConstant:       "",
		finishPrefix + strategyConfigurationKeyConstant:   defaultMergeStrategyNameConstant,
		finishPrefix + deleteBranchConfigurationKey:       true,
		finishPrefix + keepWorktreeConfigurationKey:       false,
		finishPrefix + assumeYesConfigurationKeyConstant:  false,
	}
}
