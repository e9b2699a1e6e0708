package worktrees_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/wtx/cmd/cli/worktrees"
	"github.com/temirov/wtx/internal/execshell"
)

const (
	testRepositoryRootConstant      = "/home/developer/projects/service"
	testFeatureBranchNameConstant   = "feature/login"
	testFeatureWorktreePathConstant = "/home/developer/projects/.worktrees/service/feature__login"
)

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

func executeCommand(testInstance *testing.T, command *cobra.Command, arguments ...string) (string, string, error) {
	testInstance.Helper()

	var outputBuffer bytes.Buffer
	var errorBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&errorBuffer)
	command.SetArgs(arguments)

	executionError := command.Execute()
	return outputBuffer.String(), errorBuffer.String(), executionError
}

func scriptStartBaseline(executor *scriptedGitExecutor, repositoryRoot string, branchExists bool) {
	executor.respond("rev-parse --show-toplevel", execshell.ExecutionResult{StandardOutput: repositoryRoot + "\n"}, nil)
	executor.respond("worktree list --porcelain", execshell.ExecutionResult{StandardOutput: "worktree " + repositoryRoot + "\nHEAD 1111111111111111111111111111111111111111\nbranch refs/heads/main\n"}, nil)
	executor.respond("rev-parse --abbrev-ref HEAD", execshell.ExecutionResult{StandardOutput: "main\n"}, nil)

	branchLookupError := commandFailure(1, "")
	if branchExists {
		branchLookupError = nil
	}
	executor.respond("show-ref --verify --quiet refs/heads/"+testFeatureBranchNameConstant, execshell.ExecutionResult{}, branchLookupError)
}

func newStartCommand(testInstance *testing.T, executor *scriptedGitExecutor, prompter *scriptedPrompter) *cobra.Command {
	testInstance.Helper()

	builder := worktrees.StartCommandBuilder{
		Executor: executor,
		Prompter: prompter,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	return command
}

func TestStartCommandWithoutFlagsPrintsUsage(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	command := newStartCommand(testInstance, executor, &scriptedPrompter{})

	output, _, executionError := executeCommand(testInstance, command)
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "Usage:")
	require.Empty(testInstance, executor.recordedCommands)
}

func TestStartCommandRequiresBranchFlag(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	command := newStartCommand(testInstance, executor, &scriptedPrompter{})

	_, _, executionError := executeCommand(testInstance, command, "--yes")
	require.ErrorIs(testInstance, executionError, worktrees.ErrBranchArgumentMissing)
	require.Empty(testInstance, executor.recordedCommands)
}

func TestStartCommandRejectsPositionalArguments(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	command := newStartCommand(testInstance, executor, &scriptedPrompter{})

	_, _, executionError := executeCommand(testInstance, command, "feature/login")
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "positional arguments")
}

func TestStartCommandCreatesWorktree(testInstance *testing.T) {
	repositoryRoot := filepath.Join(testInstance.TempDir(), "service")
	expectedWorktreePath := filepath.Join(filepath.Dir(repositoryRoot), ".worktrees", "service", "feature__login")

	executor := newScriptedGitExecutor()
	scriptStartBaseline(executor, repositoryRoot, false)
	executor.respond("worktree add -b "+testFeatureBranchNameConstant+" "+expectedWorktreePath+" main", execshell.ExecutionResult{}, nil)

	command := newStartCommand(testInstance, executor, &scriptedPrompter{decision: true})

	output, _, executionError := executeCommand(testInstance, command, "-b", testFeatureBranchNameConstant, "--yes")
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "Repository: "+repositoryRoot)
	require.Contains(testInstance, output, "Branch:     "+testFeatureBranchNameConstant+" (created from main)")
	require.Contains(testInstance, output, "Worktree:   "+expectedWorktreePath)
	require.Contains(testInstance, output, "info: next: cd "+expectedWorktreePath)
	require.Contains(testInstance, executor.recordedArguments(), "worktree add -b "+testFeatureBranchNameConstant+" "+expectedWorktreePath+" main")
}

func TestStartCommandReportsExistingWorktree(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptStartBaseline(executor, testRepositoryRootConstant, true)
	porcelain := "worktree " + testRepositoryRootConstant + "\nHEAD 1111111111111111111111111111111111111111\nbranch refs/heads/main\n" +
		"\nworktree " + testFeatureWorktreePathConstant + "\nHEAD 2222222222222222222222222222222222222222\nbranch refs/heads/" + testFeatureBranchNameConstant + "\n"
	executor.respond("worktree list --porcelain", execshell.ExecutionResult{StandardOutput: porcelain}, nil)

	prompter := &scriptedPrompter{decision: false}
	command := newStartCommand(testInstance, executor, prompter)

	output, _, executionError := executeCommand(testInstance, command, "--branch", testFeatureBranchNameConstant)
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "Repository: "+testRepositoryRootConstant)
	require.Contains(testInstance, output, "Branch:     "+testFeatureBranchNameConstant)
	require.Contains(testInstance, output, "Worktree:   "+testFeatureWorktreePathConstant)
	require.Contains(testInstance, output, "info: worktree for \""+testFeatureBranchNameConstant+"\" already exists at "+testFeatureWorktreePathConstant)
	require.Empty(testInstance, prompter.recordedPrompts)
}

func TestStartCommandPromptDeclineFailsWithoutChanges(testInstance *testing.T) {
	executor := newScriptedGitExecutor()
	scriptStartBaseline(executor, testRepositoryRootConstant, true)

	prompter := &scriptedPrompter{decision: false}
	command := newStartCommand(testInstance, executor, prompter)

	_, _, executionError := executeCommand(testInstance, command, "-b", testFeatureBranchNameConstant)
	require.ErrorIs(testInstance, executionError, worktrees.ErrOperationAborted)
	require.Len(testInstance, prompter.recordedPrompts, 1)
	for _, recordedArguments := range executor.recordedArguments() {
		require.False(
			testInstance,
			strings.HasPrefix(recordedArguments, "worktree add"),
			"unexpected git invocation: %s",
			recordedArguments,
		)
	}
}

func TestStartCommandHonorsConfiguredDefaults(testInstance *testing.T) {
	requestedWorktreePath := filepath.Join(testInstance.TempDir(), "trees", "login")

	executor := newScriptedGitExecutor()
	scriptStartBaseline(executor, testRepositoryRootConstant, true)
	executor.respond("worktree add "+requestedWorktreePath+" "+testFeatureBranchNameConstant, execshell.ExecutionResult{}, nil)

	prompter := &scriptedPrompter{decision: false}
	builder := worktrees.StartCommandBuilder{
		Executor: executor,
		Prompter: prompter,
		ConfigurationProvider: func() worktrees.CommandConfiguration {
			return worktrees.CommandConfiguration{
				Start: worktrees.StartConfiguration{Repository: ".", Path: requestedWorktreePath, AssumeYes: true},
			}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	_, _, executionError := executeCommand(testInstance, command, "-b", testFeatureBranchNameConstant)
	require.NoError(testInstance, executionError)
	require.Empty(testInstance, prompter.recordedPrompts)
	require.Contains(testInstance, executor.recordedArguments(), "worktree add "+requestedWorktreePath+" "+testFeatureBranchNameConstant)
}
