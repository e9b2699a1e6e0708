package worktrees

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/wtx/internal/gitrepo"
	"github.com/temirov/wtx/internal/utils/flags"
	"github.com/temirov/wtx/internal/worktrees/prompt"
	"github.com/temirov/wtx/internal/worktrees/start"
)

const (
	startCommandUseConstant              = "start"
	startCommandShortDescriptionConstant = "Create or attach a worktree for a feature branch"
	startCommandLongDescriptionConstant  = "start creates an isolated worktree for a branch, creating the branch from a base reference when it does not exist yet. Repeating start for a branch that already has a worktree is a no-op."
	startExecutionErrorTemplateConstant  = "worktree start failed: %w"
	startUnexpectedArgumentsConstant     = "start does not accept positional arguments"
	missingBranchArgumentMessageConstant = "missing required --branch argument"
	branchFlagUsageConstant              = "Name of the feature branch to start"
	baseFlagNameConstant                 = "base"
	baseFlagUsageConstant                = "Reference a newly created branch forks from (defaults to the current branch)"
	pathFlagNameConstant                 = "path"
	pathFlagShorthandConstant            = "p"
	pathFlagUsageConstant                = "Destination directory for the worktree (defaults to a .worktrees container beside the repository)"
	operationAbortedMessageConstant      = "aborted; no changes made"
	existingWorktreeNoticeTemplate       = "worktree for %q already exists at %s"
	repositorySummaryTemplateConstant    = "Repository: %s"
	branchCreatedSummaryTemplate         = "Branch:     %s (created from %s)"
	branchAttachedSummaryTemplate        = "Branch:     %s"
	worktreeSummaryTemplateConstant      = "Worktree:   %s"
	nextStepNoticeTemplateConstant       = "next: %s"
)

var errStartUnexpectedArguments = errors.New(startUnexpectedArgumentsConstant)

// ErrBranchArgumentMissing indicates the start or finish command ran without --branch.
var ErrBranchArgumentMissing = errors.New(missingBranchArgumentMessageConstant)

// ErrOperationAborted indicates the operator declined the confirmation prompt.
// Declining is not a success: it surfaces as a fatal error so the process
// exits nonzero.
var ErrOperationAborted = errors.New(operationAbortedMessageConstant)

// StartCommandBuilder assembles the Cobra command for starting worktrees.
type StartCommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	ConfigurationProvider        func() CommandConfiguration
	Executor                     gitrepo.GitExecutor
	Prompter                     prompt.ConfirmationPrompter
}

// Build constructs the start command.
func (builder *StartCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   startCommandUseConstant,
		Short: startCommandShortDescriptionConstant,
		Long:  startCommandLongDescriptionConstant,
		RunE:  builder.run,
	}

	flags.BindBranchContextFlags(command, flags.BranchContextValues{}, flags.BranchContextDefinitions{
		Branch:     flags.StringFlagDefinition{Name: flags.BranchFlagName, Shorthand: flags.BranchFlagShorthand, Usage: branchFlagUsageConstant, Enabled: true},
		Repository: flags.StringFlagDefinition{Name: flags.RepositoryFlagName, Usage: flags.RepositoryFlagUsage, Enabled: true},
	})
	command.Flags().String(baseFlagNameConstant, "", baseFlagUsageConstant)
	command.Flags().StringP(pathFlagNameConstant, pathFlagShorthandConstant, "", pathFlagUsageConstant)
	flags.BindExecutionFlags(command, flags.ExecutionDefaults{}, flags.ExecutionFlagDefinitions{
		AssumeYes: flags.ExecutionFlagDefinition{Name: flags.AssumeYesFlagName, Shorthand: flags.AssumeYesFlagShorthand, Usage: flags.AssumeYesFlagUsage, Enabled: true},
	})

	return command, nil
}

func (builder *StartCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errStartUnexpectedArguments
	}

	// Bare invocation shows usage and succeeds.
	if command.Flags().NFlag() == 0 {
		return command.Help()
	}

	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := resolveLogger(builder.LoggerProvider)
	executor, executorError := resolveExecutor(builder.Executor, logger, builder.HumanReadableLoggingProvider)
	if executorError != nil {
		return executorError
	}

	inspector, inspectorError := gitrepo.NewRepositoryInspector(executor)
	if inspectorError != nil {
		return inspectorError
	}

	prompter, prompterError := resolvePrompter(builder.Prompter, command)
	if prompterError != nil {
		return prompterError
	}

	service, serviceError := start.NewService(start.ServiceDependencies{
		GitExecutor: executor,
		Inspector:   inspector,
		Prompter:    prompter,
	})
	if serviceError != nil {
		return serviceError
	}

	result, startError := service.Start(command.Context(), options)
	if startError != nil {
		return fmt.Errorf(startExecutionErrorTemplateConstant, startError)
	}
	if result.Aborted {
		return ErrOperationAborted
	}

	builder.reportResult(command, result)
	return nil
}

func (builder *StartCommandBuilder) parseOptions(command *cobra.Command) (start.Options, error) {
	configuration := builder.resolveConfiguration().Start

	branchValue, _ := command.Flags().GetString(flags.BranchFlagName)
	trimmedBranch := strings.TrimSpace(branchValue)
	if len(trimmedBranch) == 0 {
		return start.Options{}, ErrBranchArgumentMissing
	}

	repositoryValue, _ := command.Flags().GetString(flags.RepositoryFlagName)
	if !command.Flags().Changed(flags.RepositoryFlagName) {
		repositoryValue = configuration.Repository
	}

	baseValue, _ := command.Flags().GetString(baseFlagNameConstant)
	if !command.Flags().Changed(baseFlagNameConstant) {
		baseValue = configuration.Base
	}

	pathValue, _ := command.Flags().GetString(pathFlagNameConstant)
	if !command.Flags().Changed(pathFlagNameConstant) {
		pathValue = configuration.Path
	}

	assumeYesValue, _ := command.Flags().GetBool(flags.AssumeYesFlagName)
	if !command.Flags().Changed(flags.AssumeYesFlagName) {
		assumeYesValue = configuration.AssumeYes
	}

	return start.Options{
		RepositoryPath: repositoryValue,
		BranchName:     trimmedBranch,
		BaseReference:  baseValue,
		WorktreePath:   pathValue,
		AssumeYes:      assumeYesValue,
	}, nil
}

func (builder *StartCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{}
	}
	return builder.ConfigurationProvider()
}

func (builder *StartCommandBuilder) reportResult(command *cobra.Command, result start.Result) {
	notices := newNoticeWriter(command)

	notices.Plainf(repositorySummaryTemplateConstant, result.RepositoryRoot)
	if result.BranchCreated {
		notices.Plainf(branchCreatedSummaryTemplate, result.BranchName, result.BaseReference)
	} else {
		notices.Plainf(branchAttachedSummaryTemplate, result.BranchName)
	}
	notices.Plainf(worktreeSummaryTemplateConstant, result.WorktreePath)
	if result.AlreadyExisted {
		notices.Infof(existingWorktreeNoticeTemplate, result.BranchName, result.WorktreePath)
	}
	notices.Infof(nextStepNoticeTemplateConstant, result.NextStep)
}
