package worktrees

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/wtx/internal/gitrepo"
	"github.com/temirov/wtx/internal/ui"
	"github.com/temirov/wtx/internal/utils"
	"github.com/temirov/wtx/internal/utils/flags"
	"github.com/temirov/wtx/internal/worktrees/finish"
	"github.com/temirov/wtx/internal/worktrees/prompt"
)

const (
	finishCommandUseConstant              = "finish"
	finishCommandShortDescriptionConstant = "Merge a feature branch and clean up its worktree"
	finishCommandLongDescriptionConstant  = "finish merges a feature branch into a target branch using the chosen strategy, removes the branch's worktree, and deletes the branch. All preconditions are checked before anything changes."
	finishExecutionErrorTemplateConstant  = "worktree finish failed: %w"
	finishUnexpectedArgumentsConstant     = "finish does not accept positional arguments"
	intoFlagNameConstant                  = "into"
	intoFlagUsageConstant                 = "Target branch to merge into (defaults to the detected default branch)"
	strategyFlagNameConstant              = "strategy"
	strategyFlagDescriptionConstant       = "Integration strategy"
	noDeleteBranchFlagNameConstant        = "no-delete-branch"
	noDeleteBranchFlagUsageConstant       = "Keep the feature branch after integration"
	keepWorktreeFlagNameConstant          = "keep-worktree"
	keepWorktreeFlagUsageConstant         = "Keep the worktree directory after integration"
	intoSummaryTemplateConstant           = "Into:       %s"
	strategySummaryTemplateConstant       = "Strategy:   %s"
	targetPathSummaryTemplateConstant     = "Target:     %s"
	missingWorktreePlaceholderConstant    = "(none)"
	mergedNoticeTemplateConstant          = "merged %q into %q using the %s strategy"
	worktreeRemovedNoticeTemplate         = "removed worktree %s"
	branchDeletedNoticeTemplateConstant   = "deleted branch %q"
)

var errFinishUnexpectedArguments = errors.New(finishUnexpectedArgumentsConstant)

// FinishCommandBuilder assembles the Cobra command for finishing worktrees.
type FinishCommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	ConfigurationProvider        func() CommandConfiguration
	Executor                     gitrepo.GitExecutor
	Prompter                     prompt.ConfirmationPrompter
	WorkingDirectory             string
}

// Build constructs the finish command.
func (builder *FinishCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   finishCommandUseConstant,
		Short: finishCommandShortDescriptionConstant,
		Long:  finishCommandLongDescriptionConstant,
		RunE:  builder.run,
	}

	flags.BindBranchContextFlags(command, flags.BranchContextValues{}, flags.BranchContextDefinitions{
		Branch:     flags.StringFlagDefinition{Name: flags.BranchFlagName, Shorthand: flags.BranchFlagShorthand, Usage: "Name of the feature branch to finish", Enabled: true},
		Repository: flags.StringFlagDefinition{Name: flags.RepositoryFlagName, Usage: flags.RepositoryFlagUsage, Enabled: true},
	})
	command.Flags().String(intoFlagNameConstant, "", intoFlagUsageConstant)
	command.Flags().String(
		strategyFlagNameConstant,
		"",
		flags.FormatChoiceUsage(string(finish.StrategyMerge), finish.MergeStrategyNames(), strategyFlagDescriptionConstant),
	)
	flags.BindExecutionFlags(command, flags.ExecutionDefaults{}, flags.ExecutionFlagDefinitions{
		AssumeYes:    flags.ExecutionFlagDefinition{Name: flags.AssumeYesFlagName, Shorthand: flags.AssumeYesFlagShorthand, Usage: flags.AssumeYesFlagUsage, Enabled: true},
		DeleteBranch: flags.ExecutionFlagDefinition{Name: noDeleteBranchFlagNameConstant, Usage: noDeleteBranchFlagUsageConstant, Enabled: true},
		KeepWorktree: flags.ExecutionFlagDefinition{Name: keepWorktreeFlagNameConstant, Usage: keepWorktreeFlagUsageConstant, Enabled: true},
	})

	return command, nil
}

func (builder *FinishCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errFinishUnexpectedArguments
	}

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

	notices := newNoticeWriter(command)
	service, serviceError := finish.NewService(finish.ServiceDependencies{
		GitExecutor: executor,
		Inspector:   inspector,
		Prompter:    prompter,
		PlanPresenter: func(plan finish.ResolvedPlan) {
			builder.presentPlan(notices, plan)
		},
	})
	if serviceError != nil {
		return serviceError
	}

	result, finishError := service.Finish(command.Context(), options)
	if finishError != nil {
		return fmt.Errorf(finishExecutionErrorTemplateConstant, finishError)
	}
	if result.Aborted {
		return ErrOperationAborted
	}

	builder.reportResult(command, result)
	return nil
}

func (builder *FinishCommandBuilder) parseOptions(command *cobra.Command) (finish.Options, error) {
	configuration := builder.resolveConfiguration().Finish

	branchValue, _ := command.Flags().GetString(flags.BranchFlagName)
	trimmedBranch := strings.TrimSpace(branchValue)
	if len(trimmedBranch) == 0 {
		return finish.Options{}, ErrBranchArgumentMissing
	}

	// The strategy is validated before any repository inspection so a typo
	// fails fast instead of after prompting.
	strategyValue, _ := command.Flags().GetString(strategyFlagNameConstant)
	if !command.Flags().Changed(strategyFlagNameConstant) {
		strategyValue = configuration.Strategy
	}
	strategy, strategyError := finish.ParseMergeStrategy(strategyValue)
	if strategyError != nil {
		return finish.Options{}, strategyError
	}

	repositoryValue, _ := command.Flags().GetString(flags.RepositoryFlagName)
	if !command.Flags().Changed(flags.RepositoryFlagName) {
		repositoryValue = configuration.Repository
	}

	intoValue, _ := command.Flags().GetString(intoFlagNameConstant)
	if !command.Flags().Changed(intoFlagNameConstant) {
		intoValue = configuration.Into
	}

	deleteBranch := configuration.DeleteBranch
	if command.Flags().Changed(noDeleteBranchFlagNameConstant) {
		noDeleteValue, _ := command.Flags().GetBool(noDeleteBranchFlagNameConstant)
		deleteBranch = !noDeleteValue
	}

	removeWorktree := !configuration.KeepWorktree
	if command.Flags().Changed(keepWorktreeFlagNameConstant) {
		keepWorktreeValue, _ := command.Flags().GetBool(keepWorktreeFlagNameConstant)
		removeWorktree = !keepWorktreeValue
	}

	assumeYesValue, _ := command.Flags().GetBool(flags.AssumeYesFlagName)
	if !command.Flags().Changed(flags.AssumeYesFlagName) {
		assumeYesValue = configuration.AssumeYes
	}

	return finish.Options{
		RepositoryPath:         repositoryValue,
		BranchName:             trimmedBranch,
		TargetBranch:           intoValue,
		Strategy:               strategy,
		DeleteBranch:           deleteBranch,
		RemoveWorktree:         removeWorktree,
		AssumeYes:              assumeYesValue,
		CallerWorkingDirectory: builder.resolveWorkingDirectory(command),
	}, nil
}

func (builder *FinishCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{Finish: FinishConfiguration{DeleteBranch: true}}
	}
	return builder.ConfigurationProvider()
}

func (builder *FinishCommandBuilder) resolveWorkingDirectory(command *cobra.Command) string {
	if len(builder.WorkingDirectory) > 0 {
		return builder.WorkingDirectory
	}

	contextAccessor := utils.NewCommandContextAccessor()
	if workingDirectory, available := contextAccessor.CallerWorkingDirectory(command.Context()); available {
		return workingDirectory
	}

	if workingDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		return workingDirectory
	}
	return ""
}

// presentPlan prints the resolved integration before the confirmation prompt
// so the operator sees every path the operation will touch.
func (builder *FinishCommandBuilder) presentPlan(notices *ui.NoticeWriter, plan finish.ResolvedPlan) {
	featureWorktreePath := plan.FeatureWorktreePath
	if len(featureWorktreePath) == 0 {
		featureWorktreePath = missingWorktreePlaceholderConstant
	}

	notices.Plainf(repositorySummaryTemplateConstant, plan.RepositoryRoot)
	notices.Plainf(branchAttachedSummaryTemplate, plan.BranchName)
	notices.Plainf(intoSummaryTemplateConstant, plan.TargetBranch)
	notices.Plainf(strategySummaryTemplateConstant, plan.Strategy)
	notices.Plainf(targetPathSummaryTemplateConstant, plan.TargetWorktreePath)
	notices.Plainf(worktreeSummaryTemplateConstant, featureWorktreePath)
}

func (builder *FinishCommandBuilder) reportResult(command *cobra.Command, result finish.Result) {
	notices := newNoticeWriter(command)

	for _, warningMessage := range result.Warnings {
		notices.Warnf("%s", warningMessage)
	}

	notices.Infof(mergedNoticeTemplateConstant, result.BranchName, result.TargetBranch, result.Strategy)
	if result.WorktreeRemoved {
		notices.Infof(worktreeRemovedNoticeTemplate, result.WorktreePath)
	}
	if result.BranchDeleted {
		notices.Infof(branchDeletedNoticeTemplateConstant, result.BranchName)
	}
}
