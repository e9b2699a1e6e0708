package finish

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/wtx/internal/execshell"
	"github.com/temirov/wtx/internal/gitrepo"
	pathutils "github.com/temirov/wtx/internal/utils/path"
	"github.com/temirov/wtx/internal/worktrees/prompt"
)

const (
	branchNameRequiredMessageConstant       = "branch name must be provided"
	gitExecutorMissingMessageConstant       = "git executor not configured"
	inspectorMissingMessageConstant         = "repository inspector not configured"
	prompterMissingMessageConstant          = "confirmation prompter not configured"
	sameBranchMessageConstant               = "feature branch and target branch are the same"
	branchNotFoundMessageConstant           = "branch does not exist"
	unsafeCombinationMessageConstant        = "unsafe flag combination"
	nonFastForwardMessageConstant           = "target branch cannot be fast-forwarded"
	dirtyWorktreeTemplateConstant           = "uncommitted changes in %s"
	branchContextTemplateConstant           = "%w: %s"
	keptWorktreeDeletionReasonTemplate      = "%w: cannot delete branch %q while its worktree %s is kept"
	removalFromInsideReasonTemplate         = "%w: current directory %s is inside the worktree being removed; run finish from elsewhere"
	switchFailureTemplateConstant           = "failed to switch %s to branch %q: %w"
	mergeFailureTemplateConstant            = "failed to merge %q into %q: %w"
	squashStageFailureTemplateConstant      = "failed to stage squash of %q: %w"
	squashCommitFailureTemplateConstant     = "failed to commit squash of %q: %w"
	worktreeRemovalFailureTemplateConstant  = "failed to remove worktree %s: %w"
	branchDeletionFailureTemplateConstant   = "failed to delete branch %q: %w"
	worktreePruneFailureTemplateConstant    = "failed to prune worktree metadata: %w"
	nonFastForwardWrapTemplateConstant      = "%w: %v"
	confirmationQuestionTemplateConstant    = "Merge branch %q into %q using the %s strategy?"
	squashNoOpWarningTemplateConstant       = "squash of %q produced no changes; nothing to commit"
	sharedWorktreeWarningTemplateConstant   = "worktree %s is checked out on the target branch; leaving it in place"
	unmergedBranchWarningTemplateConstant   = "branch %q is not fully merged; leaving it in place"
	squashCommitMessageTemplateConstant     = "Squash merge branch '%s'"
	gitSwitchSubcommandConstant             = "switch"
	gitMergeSubcommandConstant              = "merge"
	gitMergeNoEditFlagConstant              = "--no-edit"
	gitMergeFastForwardOnlyFlagConstant     = "--ff-only"
	gitMergeSquashFlagConstant              = "--squash"
	gitDiffSubcommandConstant               = "diff"
	gitDiffCachedFlagConstant               = "--cached"
	gitDiffQuietFlagConstant                = "--quiet"
	gitCommitSubcommandConstant             = "commit"
	gitCommitMessageFlagConstant            = "-m"
	gitBranchSubcommandConstant             = "branch"
	gitBranchSafeDeleteFlagConstant         = "-d"
	gitBranchForceDeleteFlagConstant        = "-D"
	gitWorktreeSubcommandConstant           = "worktree"
	gitWorktreeRemoveVerbConstant           = "remove"
	gitWorktreePruneVerbConstant            = "prune"
)

// ErrBranchNameRequired indicates the branch option was empty.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrInspectorNotConfigured indicates the repository inspector dependency was missing.
var ErrInspectorNotConfigured = errors.New(inspectorMissingMessageConstant)

// ErrPrompterNotConfigured indicates the confirmation prompter dependency was missing.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// ErrSameBranch indicates the feature branch equals the target branch.
var ErrSameBranch = errors.New(sameBranchMessageConstant)

// ErrBranchNotFound indicates the feature branch has no local reference.
var ErrBranchNotFound = errors.New(branchNotFoundMessageConstant)

// ErrUnsafeCombination indicates the requested flags cannot be honored together.
var ErrUnsafeCombination = errors.New(unsafeCombinationMessageConstant)

// ErrNonFastForward indicates the ff-only strategy found diverged history.
var ErrNonFastForward = errors.New(nonFastForwardMessageConstant)

// DirtyWorktreeError reports a worktree holding uncommitted changes.
type DirtyWorktreeError struct {
	Path string
}

// Error names the offending worktree path.
func (dirtyWorktree DirtyWorktreeError) Error() string {
	return fmt.Sprintf(dirtyWorktreeTemplateConstant, dirtyWorktree.Path)
}

// ResolvedPlan describes the integration the validation phase settled on.
type ResolvedPlan struct {
	RepositoryRoot      string
	BranchName          string
	TargetBranch        string
	Strategy            MergeStrategy
	TargetWorktreePath  string
	FeatureWorktreePath string
}

// PlanPresenter receives the resolved plan before the operator is asked to
// confirm it.
type PlanPresenter func(ResolvedPlan)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor   gitrepo.GitExecutor
	Inspector     *gitrepo.RepositoryInspector
	Prompter      prompt.ConfirmationPrompter
	PlanPresenter PlanPresenter
}

// Options configure a finish operation.
type Options struct {
	RepositoryPath         string
	BranchName             string
	TargetBranch           string
	Strategy               MergeStrategy
	DeleteBranch           bool
	RemoveWorktree         bool
	AssumeYes              bool
	CallerWorkingDirectory string
}

// Result captures the outcome of a finish operation.
type Result struct {
	RepositoryRoot      string
	BranchName          string
	TargetBranch        string
	WorktreePath        string
	Strategy            MergeStrategy
	SquashCommitCreated bool
	SquashNoOp          bool
	WorktreeRemoved     bool
	BranchDeleted       bool
	Aborted             bool
	Warnings            []string
}

// executionPlan carries the state resolved during the validation phase.
type executionPlan struct {
	repositoryRoot      string
	branchName          string
	targetBranch        string
	strategy            MergeStrategy
	featureWorktreePath string
	hasFeatureWorktree  bool
	targetWorktreePath  string
	removeWorktree      bool
}

// Service integrates feature branches and cleans up their worktrees.
type Service struct {
	executor      gitrepo.GitExecutor
	inspector     *gitrepo.RepositoryInspector
	prompter      prompt.ConfirmationPrompter
	planPresenter PlanPresenter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.Inspector == nil {
		return nil, ErrInspectorNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}

	return &Service{
		executor:      dependencies.GitExecutor,
		inspector:     dependencies.Inspector,
		prompter:      dependencies.Prompter,
		planPresenter: dependencies.PlanPresenter,
	}, nil
}

// Finish merges the feature branch into the target branch and cleans up.
//
// The validation phase performs no mutations; any precondition failure leaves
// the repository exactly as it was. Once the first mutating step runs, later
// failures surface fatally without rollback so merge conflicts stay in place
// for manual resolution.
func (service *Service) Finish(executionContext context.Context, options Options) (Result, error) {
	plan, validationError := service.validate(executionContext, options)
	if validationError != nil {
		return Result{}, validationError
	}

	result := Result{
		RepositoryRoot: plan.repositoryRoot,
		BranchName:     plan.branchName,
		TargetBranch:   plan.targetBranch,
		WorktreePath:   plan.featureWorktreePath,
		Strategy:       plan.strategy,
	}

	if service.planPresenter != nil {
		service.planPresenter(ResolvedPlan{
			RepositoryRoot:      plan.repositoryRoot,
			BranchName:          plan.branchName,
			TargetBranch:        plan.targetBranch,
			Strategy:            plan.strategy,
			TargetWorktreePath:  plan.targetWorktreePath,
			FeatureWorktreePath: plan.featureWorktreePath,
		})
	}

	if !options.AssumeYes {
		confirmed, confirmError := service.prompter.Confirm(fmt.Sprintf(confirmationQuestionTemplateConstant, plan.branchName, plan.targetBranch, plan.strategy))
		if confirmError != nil {
			return Result{}, confirmError
		}
		if !confirmed {
			result.Aborted = true
			return result, nil
		}
	}

	if _, switchError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitSwitchSubcommandConstant, plan.targetBranch},
		WorkingDirectory: plan.targetWorktreePath,
	}); switchError != nil {
		return Result{}, fmt.Errorf(switchFailureTemplateConstant, plan.targetWorktreePath, plan.targetBranch, switchError)
	}

	if mergeError := service.applyStrategy(executionContext, plan, &result); mergeError != nil {
		return Result{}, mergeError
	}

	if removalError := service.removeFeatureWorktree(executionContext, plan, &result); removalError != nil {
		return Result{}, removalError
	}

	if options.DeleteBranch {
		if deletionError := service.deleteFeatureBranch(executionContext, plan, &result); deletionError != nil {
			return Result{}, deletionError
		}
	}

	if _, pruneError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitWorktreeSubcommandConstant, gitWorktreePruneVerbConstant},
		WorkingDirectory: plan.repositoryRoot,
	}); pruneError != nil {
		return Result{}, fmt.Errorf(worktreePruneFailureTemplateConstant, pruneError)
	}

	return result, nil
}

func (service *Service) validate(executionContext context.Context, options Options) (executionPlan, error) {
	trimmedBranchName := strings.TrimSpace(options.BranchName)
	if len(trimmedBranchName) == 0 {
		return executionPlan{}, ErrBranchNameRequired
	}

	repositoryRoot, rootError := service.inspector.ResolveRepositoryRoot(executionContext, options.RepositoryPath)
	if rootError != nil {
		return executionPlan{}, rootError
	}

	targetBranch := strings.TrimSpace(options.TargetBranch)
	if len(targetBranch) == 0 {
		detectedBranch, detectionError := service.inspector.DetectDefaultBranch(executionContext, repositoryRoot)
		if detectionError != nil {
			return executionPlan{}, detectionError
		}
		targetBranch = detectedBranch
	}

	branchKnown, branchLookupError := service.inspector.BranchExists(executionContext, repositoryRoot, trimmedBranchName)
	if branchLookupError != nil {
		return executionPlan{}, branchLookupError
	}
	if !branchKnown {
		return executionPlan{}, fmt.Errorf(branchContextTemplateConstant, ErrBranchNotFound, trimmedBranchName)
	}

	if trimmedBranchName == targetBranch {
		return executionPlan{}, fmt.Errorf(branchContextTemplateConstant, ErrSameBranch, trimmedBranchName)
	}

	featureWorktreePath, hasFeatureWorktree, findError := service.inspector.FindWorktreeForBranch(executionContext, repositoryRoot, trimmedBranchName)
	if findError != nil {
		return executionPlan{}, findError
	}

	if !options.RemoveWorktree && options.DeleteBranch && hasFeatureWorktree {
		return executionPlan{}, fmt.Errorf(keptWorktreeDeletionReasonTemplate, ErrUnsafeCombination, trimmedBranchName, featureWorktreePath)
	}

	if hasFeatureWorktree {
		featureClean, featureCheckError := service.inspector.CheckCleanWorktree(executionContext, featureWorktreePath)
		if featureCheckError != nil {
			return executionPlan{}, featureCheckError
		}
		if !featureClean {
			return executionPlan{}, DirtyWorktreeError{Path: featureWorktreePath}
		}
	}

	targetWorktreePath, targetWorktreeFound, targetFindError := service.inspector.FindWorktreeForBranch(executionContext, repositoryRoot, targetBranch)
	if targetFindError != nil {
		return executionPlan{}, targetFindError
	}
	if !targetWorktreeFound {
		primaryPath, primaryError := service.inspector.PrimaryWorktreePath(executionContext, repositoryRoot)
		if primaryError != nil {
			return executionPlan{}, primaryError
		}
		targetWorktreePath = primaryPath
	}

	targetClean, targetCheckError := service.inspector.CheckCleanWorktree(executionContext, targetWorktreePath)
	if targetCheckError != nil {
		return executionPlan{}, targetCheckError
	}
	if !targetClean {
		return executionPlan{}, DirtyWorktreeError{Path: targetWorktreePath}
	}

	if options.RemoveWorktree && hasFeatureWorktree {
		callerDirectory := strings.TrimSpace(options.CallerWorkingDirectory)
		if len(callerDirectory) > 0 && pathutils.IsWithinPath(featureWorktreePath, callerDirectory) {
			return executionPlan{}, fmt.Errorf(removalFromInsideReasonTemplate, ErrUnsafeCombination, callerDirectory)
		}
	}

	strategy := options.Strategy
	if len(strategy) == 0 {
		strategy = StrategyMerge
	}

	return executionPlan{
		repositoryRoot:      repositoryRoot,
		branchName:          trimmedBranchName,
		targetBranch:        targetBranch,
		strategy:            strategy,
		featureWorktreePath: featureWorktreePath,
		hasFeatureWorktree:  hasFeatureWorktree,
		targetWorktreePath:  targetWorktreePath,
		removeWorktree:      options.RemoveWorktree,
	}, nil
}

func (service *Service) applyStrategy(executionContext context.Context, plan executionPlan, result *Result) error {
	switch plan.strategy {
	case StrategySquash:
		return service.applySquash(executionContext, plan, result)
	case StrategyFastForwardOnly:
		if _, mergeError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitMergeSubcommandConstant, gitMergeFastForwardOnlyFlagConstant, plan.branchName},
			WorkingDirectory: plan.targetWorktreePath,
		}); mergeError != nil {
			if isCommandFailure(mergeError) {
				return fmt.Errorf(nonFastForwardWrapTemplateConstant, ErrNonFastForward, mergeError)
			}
			return fmt.Errorf(mergeFailureTemplateConstant, plan.branchName, plan.targetBranch, mergeError)
		}
		return nil
	default:
		if _, mergeError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitMergeSubcommandConstant, gitMergeNoEditFlagConstant, plan.branchName},
			WorkingDirectory: plan.targetWorktreePath,
		}); mergeError != nil {
			return fmt.Errorf(mergeFailureTemplateConstant, plan.branchName, plan.targetBranch, mergeError)
		}
		return nil
	}
}

// applySquash stages the squash, detects the nothing-to-commit case via the
// staged diff, and records whether a squash commit was actually produced. The
// distinction decides between safe and forced branch deletion later.
func (service *Service) applySquash(executionContext context.Context, plan executionPlan, result *Result) error {
	if _, stageError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitMergeSubcommandConstant, gitMergeSquashFlagConstant, plan.branchName},
		WorkingDirectory: plan.targetWorktreePath,
	}); stageError != nil {
		return fmt.Errorf(squashStageFailureTemplateConstant, plan.branchName, stageError)
	}

	_, diffError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDiffSubcommandConstant, gitDiffCachedFlagConstant, gitDiffQuietFlagConstant},
		WorkingDirectory: plan.targetWorktreePath,
	})
	if diffError == nil {
		result.SquashNoOp = true
		result.Warnings = append(result.Warnings, fmt.Sprintf(squashNoOpWarningTemplateConstant, plan.branchName))
		return nil
	}
	if !isCommandFailure(diffError) {
		return fmt.Errorf(squashStageFailureTemplateConstant, plan.branchName, diffError)
	}

	commitMessage := fmt.Sprintf(squashCommitMessageTemplateConstant, plan.branchName)
	if _, commitError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitCommitMessageFlagConstant, commitMessage},
		WorkingDirectory: plan.targetWorktreePath,
	}); commitError != nil {
		return fmt.Errorf(squashCommitFailureTemplateConstant, plan.branchName, commitError)
	}

	result.SquashCommitCreated = true
	return nil
}

func (service *Service) removeFeatureWorktree(executionContext context.Context, plan executionPlan, result *Result) error {
	if !plan.removeWorktree || !plan.hasFeatureWorktree {
		return nil
	}

	if pathutils.IsSamePath(plan.featureWorktreePath, plan.targetWorktreePath) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(sharedWorktreeWarningTemplateConstant, plan.featureWorktreePath))
		return nil
	}

	if _, removalError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitWorktreeSubcommandConstant, gitWorktreeRemoveVerbConstant, plan.featureWorktreePath},
		WorkingDirectory: plan.repositoryRoot,
	}); removalError != nil {
		return fmt.Errorf(worktreeRemovalFailureTemplateConstant, plan.featureWorktreePath, removalError)
	}

	result.WorktreeRemoved = true
	return nil
}

// deleteFeatureBranch removes the local branch. A produced squash commit leaves
// the branch unmerged by construction, so that case forces the deletion; a
// safe deletion refused by git downgrades to a warning instead of failing the
// already-completed integration.
func (service *Service) deleteFeatureBranch(executionContext context.Context, plan executionPlan, result *Result) error {
	deletionFlag := gitBranchSafeDeleteFlagConstant
	if result.SquashCommitCreated {
		deletionFlag = gitBranchForceDeleteFlagConstant
	}

	_, deletionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitBranchSubcommandConstant, deletionFlag, plan.branchName},
		WorkingDirectory: plan.targetWorktreePath,
	})
	if deletionError == nil {
		result.BranchDeleted = true
		return nil
	}

	if deletionFlag == gitBranchSafeDeleteFlagConstant && isCommandFailure(deletionError) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(unmergedBranchWarningTemplateConstant, plan.branchName))
		return nil
	}

	return fmt.Errorf(branchDeletionFailureTemplateConstant, plan.branchName, deletionError)
}

func isCommandFailure(candidateError error) bool {
	var commandFailure execshell.CommandFailedError
	return errors.As(candidateError, &commandFailure)
}
