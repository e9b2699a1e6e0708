package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	messageStandardErrorSuffixTemplate      = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant    = "rev-parse"
	gitShowTopLevelFlagConstant          = "--show-toplevel"
	gitAbbrevRefFlagConstant             = "--abbrev-ref"
	gitSymbolicRefSubcommandNameConstant = "symbolic-ref"
	gitShowRefSubcommandNameConstant     = "show-ref"
	gitStatusSubcommandNameConstant      = "status"
	gitWorktreeSubcommandNameConstant    = "worktree"
	gitWorktreeAddVerbConstant           = "add"
	gitWorktreeListVerbConstant          = "list"
	gitWorktreeRemoveVerbConstant        = "remove"
	gitWorktreePruneVerbConstant         = "prune"
	gitMergeSubcommandNameConstant       = "merge"
	gitFFOnlyFlagConstant                = "--ff-only"
	gitSquashFlagConstant                = "--squash"
	gitBranchSubcommandNameConstant      = "branch"
	gitSafeDeleteFlagConstant            = "-d"
	gitForceDeleteFlagConstant           = "-D"
	gitCommitSubcommandNameConstant      = "commit"
	gitMessageFlagConstant               = "-m"
	gitSwitchSubcommandNameConstant      = "switch"
	gitDiffSubcommandNameConstant        = "diff"
	gitNewBranchFlagConstant             = "-b"
)

const (
	gitRepositoryRootStartTemplateConstant        = "Resolving repository root at %s"
	gitRepositoryRootSuccessTemplateConstant      = "Resolved repository root at %s"
	gitRepositoryRootFailureTemplateConstant      = "Could not resolve a repository root at %s (exit code %d%s)"
	gitRepositoryRootExecutionTemplateConstant    = "Unable to inspect %s: %s"
	gitCurrentBranchStartTemplateConstant         = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant       = "Identified current branch in %s"
	gitCurrentBranchFailureTemplateConstant       = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionTemplateConstant     = "Unable to identify current branch in %s: %s"
	gitStatusStartTemplateConstant                = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant              = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant              = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionTemplateConstant            = "Unable to review working tree status in %s: %s"
	gitWorktreeAddStartTemplateConstant           = "Creating worktree at %s for branch %s"
	gitWorktreeAddSuccessTemplateConstant         = "Created worktree at %s for branch %s"
	gitWorktreeAddFailureTemplateConstant         = "Failed to create worktree at %s for branch %s (exit code %d%s)"
	gitWorktreeAddExecutionTemplateConstant       = "Unable to create worktree at %s for branch %s: %s"
	gitWorktreeListStartTemplateConstant          = "Listing worktrees of %s"
	gitWorktreeListSuccessTemplateConstant        = "Listed worktrees of %s"
	gitWorktreeListFailureTemplateConstant        = "Failed to list worktrees of %s (exit code %d%s)"
	gitWorktreeListExecutionTemplateConstant      = "Unable to list worktrees of %s: %s"
	gitWorktreeRemoveStartTemplateConstant        = "Removing worktree %s"
	gitWorktreeRemoveSuccessTemplateConstant      = "Removed worktree %s"
	gitWorktreeRemoveFailureTemplateConstant      = "Failed to remove worktree %s (exit code %d%s)"
	gitWorktreeRemoveExecutionTemplateConstant    = "Unable to remove worktree %s: %s"
	gitWorktreePruneStartTemplateConstant         = "Pruning stale worktree records in %s"
	gitWorktreePruneSuccessTemplateConstant       = "Pruned stale worktree records in %s"
	gitWorktreePruneFailureTemplateConstant       = "Failed to prune worktree records in %s (exit code %d%s)"
	gitWorktreePruneExecutionTemplateConstant     = "Unable to prune worktree records in %s: %s"
	gitMergeStartTemplateConstant                 = "Merging %s in %s"
	gitMergeSquashStartTemplateConstant           = "Staging squash of %s in %s"
	gitMergeFastForwardStartTemplateConstant      = "Fast-forwarding to %s in %s"
	gitMergeSuccessTemplateConstant               = "Merged %s in %s"
	gitMergeSquashSuccessTemplateConstant         = "Staged squash of %s in %s"
	gitMergeFastForwardSuccessTemplateConstant    = "Fast-forwarded to %s in %s"
	gitMergeFailureTemplateConstant               = "Merge of %s in %s failed (exit code %d%s)"
	gitMergeExecutionTemplateConstant             = "Unable to merge %s in %s: %s"
	gitBranchDeletionStartTemplateConstant        = "Removing local branch %s in %s"
	gitBranchForceDeletionStartTemplateConstant   = "Force removing local branch %s in %s"
	gitBranchDeletionSuccessTemplateConstant      = "Removed local branch %s in %s"
	gitBranchDeletionFailureTemplateConstant      = "Failed to remove local branch %s in %s (exit code %d%s)"
	gitBranchDeletionExecutionTemplateConstant    = "Unable to remove local branch %s in %s: %s"
	gitCommitStartTemplateConstant                = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant              = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant              = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionTemplateConstant            = "Unable to create commit in %s with message %q: %s"
	gitSwitchStartTemplateConstant                = "Switching %s to branch %s"
	gitSwitchSuccessTemplateConstant              = "%s now on branch %s"
	gitSwitchFailureTemplateConstant              = "Failed to switch %s to branch %s (exit code %d%s)"
	gitSwitchExecutionTemplateConstant            = "Unable to switch %s to branch %s: %s"
	gitStagedDiffCheckStartTemplateConstant       = "Checking staged changes in %s"
	gitStagedDiffCheckSuccessTemplateConstant     = "Checked staged changes in %s"
	gitStagedDiffCheckFailureTemplateConstant     = "Staged change check in %s reported exit code %d%s"
	gitStagedDiffCheckExecutionTemplateConstant   = "Unable to check staged changes in %s: %s"
	gitReferenceLookupStartTemplateConstant       = "Looking up reference %s in %s"
	gitReferenceLookupSuccessTemplateConstant     = "Looked up reference %s in %s"
	gitReferenceLookupFailureTemplateConstant     = "Reference %s not found in %s (exit code %d%s)"
	gitReferenceLookupExecutionTemplateConstant   = "Unable to look up reference %s in %s: %s"
)

// CommandMessageFormatter builds human-readable log messages for git command lifecycle events.
type CommandMessageFormatter struct{}

// BuildMessage renders the message for the supplied command and lifecycle stage.
func (formatter CommandMessageFormatter) BuildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch command.Details.Arguments[0] {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitStatusSubcommandNameConstant:
		return formatter.describeGitStatusMessage(command, result, failure, stage)
	case gitWorktreeSubcommandNameConstant:
		return formatter.describeGitWorktreeMessage(command, result, failure, stage)
	case gitMergeSubcommandNameConstant:
		return formatter.describeGitMergeMessage(command, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranchMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	case gitSwitchSubcommandNameConstant:
		return formatter.describeGitSwitchMessage(command, result, failure, stage)
	case gitDiffSubcommandNameConstant:
		return formatter.describeGitStagedDiffMessage(command, result, failure, stage)
	case gitSymbolicRefSubcommandNameConstant, gitShowRefSubcommandNameConstant:
		return formatter.describeGitReferenceLookupMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	if containsArgument(command.Details.Arguments, gitShowTopLevelFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRepositoryRootStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRepositoryRootSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitRepositoryRootFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRepositoryRootExecutionTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(command.Details.Arguments, gitAbbrevRefFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCurrentBranchExecutionTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitStatusMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitStatusStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitStatusSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitStatusFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitStatusExecutionTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitWorktreeMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	verb := formatter.argumentAtIndex(arguments, 1)

	switch verb {
	case gitWorktreeAddVerbConstant:
		worktreePath, branchName := formatter.extractWorktreeAddTargets(arguments)
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorktreeAddStartTemplateConstant, worktreePath, branchName)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorktreeAddSuccessTemplateConstant, worktreePath, branchName)
		case messageStageFailure:
			return fmt.Sprintf(gitWorktreeAddFailureTemplateConstant, worktreePath, branchName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorktreeAddExecutionTemplateConstant, worktreePath, branchName, formatter.describeFailure(failure))
		}
	case gitWorktreeListVerbConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorktreeListStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorktreeListSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitWorktreeListFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorktreeListExecutionTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	case gitWorktreeRemoveVerbConstant:
		removalTarget := formatter.ensureValue(formatter.extractLastNonFlagArgument(arguments[2:]))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorktreeRemoveStartTemplateConstant, removalTarget)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorktreeRemoveSuccessTemplateConstant, removalTarget)
		case messageStageFailure:
			return fmt.Sprintf(gitWorktreeRemoveFailureTemplateConstant, removalTarget, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorktreeRemoveExecutionTemplateConstant, removalTarget, formatter.describeFailure(failure))
		}
	case gitWorktreePruneVerbConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorktreePruneStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorktreePruneSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitWorktreePruneFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorktreePruneExecutionTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitMergeMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	mergeSource := formatter.ensureValue(formatter.extractLastNonFlagArgument(arguments[1:]))
	isSquash := containsArgument(arguments, gitSquashFlagConstant)
	isFastForwardOnly := containsArgument(arguments, gitFFOnlyFlagConstant)

	switch stage {
	case messageStageStart:
		switch {
		case isSquash:
			return fmt.Sprintf(gitMergeSquashStartTemplateConstant, mergeSource, workingDirectory)
		case isFastForwardOnly:
			return fmt.Sprintf(gitMergeFastForwardStartTemplateConstant, mergeSource, workingDirectory)
		default:
			return fmt.Sprintf(gitMergeStartTemplateConstant, mergeSource, workingDirectory)
		}
	case messageStageSuccess:
		switch {
		case isSquash:
			return fmt.Sprintf(gitMergeSquashSuccessTemplateConstant, mergeSource, workingDirectory)
		case isFastForwardOnly:
			return fmt.Sprintf(gitMergeFastForwardSuccessTemplateConstant, mergeSource, workingDirectory)
		default:
			return fmt.Sprintf(gitMergeSuccessTemplateConstant, mergeSource, workingDirectory)
		}
	case messageStageFailure:
		return fmt.Sprintf(gitMergeFailureTemplateConstant, mergeSource, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitMergeExecutionTemplateConstant, mergeSource, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	branchName := formatter.ensureValue(formatter.extractLastNonFlagArgument(arguments[1:]))
	hasForceDelete := containsArgument(arguments, gitForceDeleteFlagConstant)
	hasSafeDelete := containsArgument(arguments, gitSafeDeleteFlagConstant)

	if hasForceDelete || hasSafeDelete {
		switch stage {
		case messageStageStart:
			if hasForceDelete {
				return fmt.Sprintf(gitBranchForceDeletionStartTemplateConstant, branchName, workingDirectory)
			}
			return fmt.Sprintf(gitBranchDeletionStartTemplateConstant, branchName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitBranchDeletionSuccessTemplateConstant, branchName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitBranchDeletionFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitBranchDeletionExecutionTemplateConstant, branchName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	commitMessage := formatter.extractCommitMessage(command.Details.Arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCommitExecutionTemplateConstant, workingDirectory, commitMessage, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitSwitchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	branchName := formatter.ensureValue(formatter.argumentAtIndex(command.Details.Arguments, 1))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitSwitchStartTemplateConstant, workingDirectory, branchName)
	case messageStageSuccess:
		return fmt.Sprintf(gitSwitchSuccessTemplateConstant, workingDirectory, branchName)
	case messageStageFailure:
		return fmt.Sprintf(gitSwitchFailureTemplateConstant, workingDirectory, branchName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitSwitchExecutionTemplateConstant, workingDirectory, branchName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitStagedDiffMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitStagedDiffCheckStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitStagedDiffCheckSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitStagedDiffCheckFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitStagedDiffCheckExecutionTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitReferenceLookupMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	referenceName := formatter.ensureValue(formatter.extractLastNonFlagArgument(command.Details.Arguments[1:]))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitReferenceLookupStartTemplateConstant, referenceName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitReferenceLookupSuccessTemplateConstant, referenceName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitReferenceLookupFailureTemplateConstant, referenceName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitReferenceLookupExecutionTemplateConstant, referenceName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(messageStandardErrorSuffixTemplate, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedValue
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return emptyStringConstant
	}
	return arguments[index]
}

// extractWorktreeAddTargets reads the path and branch out of a worktree add invocation.
// Supported shapes: "worktree add <path> <branch>" and "worktree add -b <branch> <path> [base]".
func (formatter CommandMessageFormatter) extractWorktreeAddTargets(arguments []string) (string, string) {
	if containsArgument(arguments, gitNewBranchFlagConstant) {
		branchName := emptyStringConstant
		worktreePath := emptyStringConstant
		for index := 2; index < len(arguments); index++ {
			if arguments[index] == gitNewBranchFlagConstant && index+1 < len(arguments) {
				branchName = arguments[index+1]
				if index+2 < len(arguments) {
					worktreePath = arguments[index+2]
				}
				break
			}
		}
		return formatter.ensureValue(worktreePath), formatter.ensureValue(branchName)
	}

	return formatter.ensureValue(formatter.argumentAtIndex(arguments, 2)), formatter.ensureValue(formatter.argumentAtIndex(arguments, 3))
}

func (formatter CommandMessageFormatter) extractLastNonFlagArgument(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		if !strings.HasPrefix(arguments[index], "-") {
			return arguments[index]
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractCommitMessage(arguments []string) string {
	for index, argument := range arguments {
		if argument == gitMessageFlagConstant && index+1 < len(arguments) {
			return arguments[index+1]
		}
	}
	return fallbackUnknownValueLabelConstant
}

func containsArgument(arguments []string, searched string) bool {
	for _, argument := range arguments {
		if argument == searched {
			return true
		}
	}
	return false
}
