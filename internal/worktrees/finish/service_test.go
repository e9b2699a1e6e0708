package finish_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/wtx/internal/execshell"
	"github.com/temirov/wtx/internal/gitrepo"
	"github.com/temirov/wtx/internal/worktrees/finish"
)

const (
	testRepositoryRootConstant      = "/home/developer/projects/service"
	testFeatureBranchNameConstant   = "feature/login"
	testTargetBranchNameConstant    = "main"
	testFeatureWorktreePathConstant = "/home/developer/projects/.worktrees/service/feature__login"
)

var mutatingArgumentPrefixes = []string{"switch", "merge", "commit", "branch -", "worktree add", "worktree remove", "worktree prune"}

type scriptedGitExecutor struct {
	responses        map[string]scriptedResponse
	recordedCommands []execshell.CommandDetails
}

type scriptedResponse struct {
	result execshell.ExecutionResult
	err    error
}

func newScriptedGitExecutor() *scriptedGitExecutor {
	return &scriptedGitExecutor{responses: map[string]scriptedResponse{}}
}

func (executor *scriptedGitExecutor) respond(arguments string, result execshell.ExecutionResult, err error) {
	executor.responses[arguments] = scriptedResponse{result: result, err: err}
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	response := executor.responses[strings.Join(details.Arguments, " ")]
	return response.result, response.err
}

func (executor *scriptedGitExecutor) recordedArguments() []string {
	recorded := make([]string, 0, len(executor.recordedCommands))
	for _, command := range executor.recordedCommands {
		recorded = append(recorded, strings.Join(command.Arguments, " "))
	}
	return recorded
}

func requireNoMutations(testInstance *testing.T, executor *scriptedGitExecutor) {
	testInstance.Helper()
	for _, arguments := range executor.recordedArguments() {
		for _, mutatingPrefix := range mutatingArgumentPrefixes {
			require.False(testInstance, strings.HasPrefix(arguments, mutatingPrefix), "unexpected mutating command: %s", arguments)
		}
	}
}

type scriptedPrompter struct {
	decision        bool
	recordedPrompts []string
}

func (prompter *scriptedPrompter) Confirm(promptMessage string) (bool, error) {
	prompter.recordedPrompts = append(prompter.recordedPrompts, promptMessage)
	return prompter.decision, nil
}

func commandFailure(exitCode int, standardError string) error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: exitCode, StandardError: standardError},
	}
}

// scriptBaseline wires the read-only inspection commands for a repository with
// a primary worktree on main and a feature worktree on the feature branch.
func scriptBaseline(executor *scriptedGitExecutor, featureWorktreePresent bool, featureStatus string, targetStatus string) {
	executor.respond("rev-parse --show-toplevel", execshell.ExecutionResult{StandardOutput: testRepositoryRootConstant + "\n"}, nil)
	executor.respond("symbolic-ref --quiet --short refs/remotes/origin/HEAD", execshell.ExecutionResult{StandardOutput: "origin/main\n"}, nil)
	executor.respond("show-ref --verify --quiet refs/heads/"+testFeatureBranchNameConstant, execshell.ExecutionResult{}, nil)

	porcelain := "worktree " + testRepositoryRootConstant + "\nHEAD 1111111111111111111111111111111111111111\nbranch refs/heads/main\n"
	if featureWorktreePresent {
		porcelain += "\nworktree " + testFeatureWorktreePathConstant + "\nHEAD 2222222222222222222222222222222222222222\nbranch refs/heads/" + testFeatureBranchNameConstant + "\n"
	}
	executor.respond("worktree list --porcelain", execshell.ExecutionResult{StandardOutput: porcelain}, nil)

	// The status stub cannot vary by working directory through arguments alone,
	// so callers pick one combined status output per scenario.
	statusOutput := featureStatus
	if len(statusOutput) == 0 {
		statusOutput = targetStatus
	}
	executor.respond("status --porcelain", execshell.ExecutionResult{StandardOutput: statusOutput}, nil)
}

func scriptHappyPathMutations(executor *scriptedGitExecutor) {
	executor.respond("switch "+testTargetBranchNameConstant, execshell.ExecutionResult{}, nil)
	executor.respond("merge --no-edit "+testFeatureBranchNameConstant, execshell.ExecutionResult{}, nil)
	executor.respond("merge --ff-only "+testFeatureBranchNameConstant, execshell.ExecutionResult{}, nil)
	executor.respond("worktree remove "+testFeatureWorktreePathConstant, execshell.ExecutionResult{}, nil)
	executor.respond("branch -d "+testFeatureBranchNameConstant, execshell.ExecutionResult{}, nil)
	executor.respond("branch -D "+testFeatureBranchNameConstant, execshell.ExecutionResult{}, nil)
	executor.respond("worktree prune", execshell.ExecutionResult{}, nil)
}

func newFinishService(testInstance *testing.T, executor *scriptedGitExecutor, prompter *scriptedPrompter) *finish.Service {
	testInstance.Helper()

	inspector, inspectorError := gitrepo.NewRepositoryInspector(executor)
	require.NoError(testInstance, inspectorError)

	service, serviceError := finish.NewService(finish.ServiceDependencies{
		GitExecutor: executor,
		Inspector:   inspector,
		Prompter:    prompter,
	})
	require.NoError(testInstance, serviceError)
	return service
}

func defaultFinishOptions() finish.Options {
	return finish.Options{
		BranchName:     testFeatureBranchNameConstant,
		Strategy:       finish.StrategyMerge,
		DeleteBranch:   true,
		RemoveWorktree: true,
		AssumeYes:      true,
	}
}

func TestParseMergeStrategy(testInstance *testing.T) {
	testCases := []struct {
		name             string
		rawValue         string
		expectedStrategy finish.MergeStrategy
		expectError      bool
	}{
		{name: "empty_defaults_to_merge", rawValue: "", expectedStrategy: finish.StrategyMerge},
		{name: "merge", rawValue: "merge", expectedStrategy: finish.StrategyMerge},
		{name: "squash_case_insensitive", rawValue: "SQUASH", expectedStrategy: finish.StrategySquash},
		{name: "fast_forward_only", rawValue: "ff-only", expectedStrategy: finish.StrategyFastForwardOnly},
		{name: "unknown_rejected", rawValue: "rebase", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			strategy, parseError := finish.ParseMergeStrategy(testCase.rawValue)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				var invalidStrategy finish.InvalidStrategyError
				require.ErrorAs(testInstance, parseError, &invalidStrategy)
				require.Equal(testInstance, testCase.rawValue, invalidStrategy.Value)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedStrategy, strategy)
		})
	}
}

func TestFinishRequiresBranchName(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	_, finishError := service.Finish(context.Background(), finish.Options{BranchName: " "})
	require.ErrorIs(testInstance, finishError, finish.ErrBranchNameRequired)
	require.Empty(testInstance, executor.recordedCommands)
}

func TestFinishRefusesMissingBranch(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, false, "", "")
	executor.respond("show-ref --verify --quiet refs/heads/"+testFeatureBranchNameConstant, execshell.ExecutionResult{}, commandFailure(1, ""))

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	_, finishError := service.Finish(context.Background(), defaultFinishOptions())
	require.ErrorIs(testInstance, finishError, finish.ErrBranchNotFound)
	requireNoMutations(testInstance, executor)
}

func TestFinishRefusesSameBranch(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, false, "", "")
	executor.respond("show-ref --verify --quiet refs/heads/"+testTargetBranchNameConstant, execshell.ExecutionResult{}, nil)

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	options := defaultFinishOptions()
	options.BranchName = testTargetBranchNameConstant
	_, finishError := service.Finish(context.Background(), options)
	require.ErrorIs(testInstance, finishError, finish.ErrSameBranch)
	requireNoMutations(testInstance, executor)
}

func TestFinishRefusesKeepingWorktreeWhileDeletingBranch(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, true, "", "")

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	options := defaultFinishOptions()
	options.RemoveWorktree = false
	_, finishError := service.Finish(context.Background(), options)
	require.ErrorIs(testInstance, finishError, finish.ErrUnsafeCombination)
	require.Contains(testInstance, finishError.Error(), testFeatureWorktreePathConstant)
	requireNoMutations(testInstance, executor)
}

func TestFinishRefusesDirtyWorktreeBeforeMutating(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, true, " M internal/service.go\n", "")

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	_, finishError := service.Finish(context.Background(), defaultFinishOptions())
	var dirtyWorktree finish.DirtyWorktreeError
	require.ErrorAs(testInstance, finishError, &dirtyWorktree)
	require.Equal(testInstance, testFeatureWorktreePathConstant, dirtyWorktree.Path)
	requireNoMutations(testInstance, executor)
}

func TestFinishRefusesRemovalFromInsideFeatureWorktree(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, true, "", "")

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	options := defaultFinishOptions()
	options.CallerWorkingDirectory = testFeatureWorktreePathConstant + "/internal"
	_, finishError := service.Finish(context.Background(), options)
	require.ErrorIs(testInstance, finishError, finish.ErrUnsafeCombination)
	require.Contains(testInstance, finishError.Error(), "run finish from elsewhere")
	requireNoMutations(testInstance, executor)
}

func TestFinishPromptDeclineAbortsWithoutMutation(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, true, "", "")

	prompter := &scriptedPrompter{decision: false}
	service := newFinishService(testInstance, executor, prompter)

	options := defaultFinishOptions()
	options.AssumeYes = false
	result, finishError := service.Finish(context.Background(), options)
	require.NoError(testInstance, finishError)
	require.True(testInstance, result.Aborted)
	require.Len(testInstance, prompter.recordedPrompts, 1)
	require.Contains(testInstance, prompter.recordedPrompts[0], testFeatureBranchNameConstant)
	requireNoMutations(testInstance, executor)
}

func TestFinishPresentsResolvedPlanBeforePrompt(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, true, "", "")

	prompter := &scriptedPrompter{decision: false}
	inspector, inspectorError := gitrepo.NewRepositoryInspector(executor)
	require.NoError(testInstance, inspectorError)

	var presentedPlans []finish.ResolvedPlan
	promptsSeenAtPresentation := -1
	service, serviceError := finish.NewService(finish.ServiceDependencies{
		GitExecutor: executor,
		Inspector:   inspector,
		Prompter:    prompter,
		PlanPresenter: func(plan finish.ResolvedPlan) {
			presentedPlans = append(presentedPlans, plan)
			promptsSeenAtPresentation = len(prompter.recordedPrompts)
		},
	})
	require.NoError(testInstance, serviceError)

	options := defaultFinishOptions()
	options.AssumeYes = false
	result, finishError := service.Finish(context.Background(), options)
	require.NoError(testInstance, finishError)
	require.True(testInstance, result.Aborted)

	require.Len(testInstance, presentedPlans, 1)
	require.Zero(testInstance, promptsSeenAtPresentation)
	require.Len(testInstance, prompter.recordedPrompts, 1)
	require.Equal(testInstance, finish.ResolvedPlan{
		RepositoryRoot:      testRepositoryRootConstant,
		BranchName:          testFeatureBranchNameConstant,
		TargetBranch:        testTargetBranchNameConstant,
		Strategy:            finish.StrategyMerge,
		TargetWorktreePath:  testRepositoryRootConstant,
		FeatureWorktreePath: testFeatureWorktreePathConstant,
	}, presentedPlans[0])
	requireNoMutations(testInstance, executor)
}

func TestFinishMergeStrategyHappyPath(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, true, "", "")
	scriptHappyPathMutations(executor)

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	result, finishError := service.Finish(context.Background(), defaultFinishOptions())
	require.NoError(testInstance, finishError)
	require.True(testInstance, result.WorktreeRemoved)
	require.True(testInstance, result.BranchDeleted)
	require.False(testInstance, result.SquashCommitCreated)
	require.Empty(testInstance, result.Warnings)

	recorded := executor.recordedArguments()
	require.Contains(testInstance, recorded, "switch "+testTargetBranchNameConstant)
	require.Contains(testInstance, recorded, "merge --no-edit "+testFeatureBranchNameConstant)
	require.Contains(testInstance, recorded, "worktree remove "+testFeatureWorktreePathConstant)
	require.Contains(testInstance, recorded, "branch -d "+testFeatureBranchNameConstant)
	require.Contains(testInstance, recorded, "worktree prune")

	switchIndex := indexOf(recorded, "switch "+testTargetBranchNameConstant)
	mergeIndex := indexOf(recorded, "merge --no-edit "+testFeatureBranchNameConstant)
	removeIndex := indexOf(recorded, "worktree remove "+testFeatureWorktreePathConstant)
	deleteIndex := indexOf(recorded, "branch -d "+testFeatureBranchNameConstant)
	pruneIndex := indexOf(recorded, "worktree prune")
	require.Less(testInstance, switchIndex, mergeIndex)
	require.Less(testInstance, mergeIndex, removeIndex)
	require.Less(testInstance, removeIndex, deleteIndex)
	require.Less(testInstance, deleteIndex, pruneIndex)
}

func TestFinishFastForwardOnlyDivergenceFails(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, true, "", "")
	executor.respond("switch "+testTargetBranchNameConstant, execshell.ExecutionResult{}, nil)
	executor.respond("merge --ff-only "+testFeatureBranchNameConstant, execshell.ExecutionResult{}, commandFailure(128, "fatal: Not possible to fast-forward, aborting."))

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	options := defaultFinishOptions()
	options.Strategy = finish.StrategyFastForwardOnly
	_, finishError := service.Finish(context.Background(), options)
	require.ErrorIs(testInstance, finishError, finish.ErrNonFastForward)

	recorded := executor.recordedArguments()
	require.NotContains(testInstance, recorded, "worktree remove "+testFeatureWorktreePathConstant)
	require.NotContains(testInstance, recorded, "branch -d "+testFeatureBranchNameConstant)
}

func TestFinishSquashCreatesCommitAndForcesDeletion(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, true, "", "")
	scriptHappyPathMutations(executor)
	executor.respond("merge --squash "+testFeatureBranchNameConstant, execshell.ExecutionResult{}, nil)
	executor.respond("diff --cached --quiet", execshell.ExecutionResult{}, commandFailure(1, ""))
	executor.respond("commit -m Squash merge branch '"+testFeatureBranchNameConstant+"'", execshell.ExecutionResult{}, nil)

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	options := defaultFinishOptions()
	options.Strategy = finish.StrategySquash
	result, finishError := service.Finish(context.Background(), options)
	require.NoError(testInstance, finishError)
	require.True(testInstance, result.SquashCommitCreated)
	require.False(testInstance, result.SquashNoOp)
	require.True(testInstance, result.BranchDeleted)

	recorded := executor.recordedArguments()
	require.Contains(testInstance, recorded, "commit -m Squash merge branch '"+testFeatureBranchNameConstant+"'")
	require.Contains(testInstance, recorded, "branch -D "+testFeatureBranchNameConstant)
	require.NotContains(testInstance, recorded, "branch -d "+testFeatureBranchNameConstant)
}

func TestFinishSquashNoOpSkipsCommitAndDeletesSafely(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, true, "", "")
	scriptHappyPathMutations(executor)
	executor.respond("merge --squash "+testFeatureBranchNameConstant, execshell.ExecutionResult{}, nil)
	executor.respond("diff --cached --quiet", execshell.ExecutionResult{}, nil)

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	options := defaultFinishOptions()
	options.Strategy = finish.StrategySquash
	result, finishError := service.Finish(context.Background(), options)
	require.NoError(testInstance, finishError)
	require.True(testInstance, result.SquashNoOp)
	require.False(testInstance, result.SquashCommitCreated)
	require.True(testInstance, result.BranchDeleted)
	require.Len(testInstance, result.Warnings, 1)
	require.Contains(testInstance, result.Warnings[0], "produced no changes")

	recorded := executor.recordedArguments()
	require.NotContains(testInstance, recorded, "commit -m Squash merge branch '"+testFeatureBranchNameConstant+"'")
	require.Contains(testInstance, recorded, "branch -d "+testFeatureBranchNameConstant)
}

func TestFinishDowngradesUnmergedBranchRefusalToWarning(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, true, "", "")
	scriptHappyPathMutations(executor)
	executor.respond("branch -d "+testFeatureBranchNameConstant, execshell.ExecutionResult{}, commandFailure(1, "error: the branch '"+testFeatureBranchNameConstant+"' is not fully merged"))

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	result, finishError := service.Finish(context.Background(), defaultFinishOptions())
	require.NoError(testInstance, finishError)
	require.False(testInstance, result.BranchDeleted)
	require.Len(testInstance, result.Warnings, 1)
	require.Contains(testInstance, result.Warnings[0], "not fully merged")
	require.Contains(testInstance, executor.recordedArguments(), "worktree prune")
}

func TestFinishSkipsRemovalWhenFeatureWorktreeIsTarget(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	executor.respond("rev-parse --show-toplevel", execshell.ExecutionResult{StandardOutput: testRepositoryRootConstant + "\n"}, nil)
	executor.respond("symbolic-ref --quiet --short refs/remotes/origin/HEAD", execshell.ExecutionResult{StandardOutput: "origin/main\n"}, nil)
	executor.respond("show-ref --verify --quiet refs/heads/"+testFeatureBranchNameConstant, execshell.ExecutionResult{}, nil)
	porcelain := "worktree " + testRepositoryRootConstant + "\nHEAD 1111111111111111111111111111111111111111\nbranch refs/heads/" + testFeatureBranchNameConstant + "\n"
	executor.respond("worktree list --porcelain", execshell.ExecutionResult{StandardOutput: porcelain}, nil)
	executor.respond("status --porcelain", execshell.ExecutionResult{}, nil)
	scriptHappyPathMutations(executor)

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	options := defaultFinishOptions()
	options.DeleteBranch = false
	result, finishError := service.Finish(context.Background(), options)
	require.NoError(testInstance, finishError)
	require.False(testInstance, result.WorktreeRemoved)
	require.Len(testInstance, result.Warnings, 1)
	require.Contains(testInstance, result.Warnings[0], "leaving it in place")
	require.NotContains(testInstance, executor.recordedArguments(), "worktree remove "+testRepositoryRootConstant)
}

func TestFinishWithoutFeatureWorktreeIntegratesInPrimary(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptBaseline(executor, false, "", "")
	scriptHappyPathMutations(executor)

	service := newFinishService(testInstance, executor, &scriptedPrompter{decision: true})

	result, finishError := service.Finish(context.Background(), defaultFinishOptions())
	require.NoError(testInstance, finishError)
	require.False(testInstance, result.WorktreeRemoved)
	require.True(testInstance, result.BranchDeleted)

	for _, command := range executor.recordedCommands {
		if strings.HasPrefix(strings.Join(command.Arguments, " "), "merge") {
			require.Equal(testInstance, testRepositoryRootConstant, command.WorkingDirectory)
		}
	}
}

func indexOf(values []string, target string) int {
	for index, value := range values {
		if value == target {
			return index
		}
	}
	return -1
}
