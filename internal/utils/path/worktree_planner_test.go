package pathutils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/wtx/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/developer"

func newTestPlanner() *pathutils.WorktreePathPlanner {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})
	return pathutils.NewWorktreePathPlannerWithExpander(expander)
}

func TestHomeExpanderExpand(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	testCases := []struct {
		name         string
		candidate    string
		expectedPath string
	}{
		{name: "bare_tilde", candidate: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_prefix", candidate: "~/trees/feature", expectedPath: filepath.Join(testHomeDirectoryConstant, "trees", "feature")},
		{name: "absolute_untouched", candidate: "/srv/trees", expectedPath: "/srv/trees"},
		{name: "tilde_user_untouched", candidate: "~other/trees", expectedPath: "~other/trees"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.candidate))
		})
	}
}

func TestDefaultWorktreePath(testInstance *testing.T) {
	planner := newTestPlanner()
	derivedPath := planner.DefaultWorktreePath("/home/developer/projects/service", "feature__login")
	require.Equal(testInstance, "/home/developer/projects/.worktrees/service/feature__login", derivedPath)
}

func TestResolveRequestedPath(testInstance *testing.T) {
	planner := newTestPlanner()

	testCases := []struct {
		name          string
		requestedPath string
		expectedPath  string
	}{
		{name: "empty", requestedPath: "  ", expectedPath: ""},
		{name: "absolute", requestedPath: "/srv/trees/feature", expectedPath: "/srv/trees/feature"},
		{name: "relative_to_repository", requestedPath: "../trees/feature", expectedPath: "/home/developer/projects/trees/feature"},
		{name: "home_relative", requestedPath: "~/trees/feature", expectedPath: "/home/developer/trees/feature"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolvedPath := planner.ResolveRequestedPath(testCase.requestedPath, "/home/developer/projects/service")
			require.Equal(testInstance, testCase.expectedPath, resolvedPath)
		})
	}
}

func TestPathContainmentChecks(testInstance *testing.T) {
	require.True(testInstance, pathutils.IsSamePath("/srv/trees/feature", "/srv/trees/feature/"))
	require.False(testInstance, pathutils.IsSamePath("/srv/trees/feature", "/srv/trees/other"))

	require.True(testInstance, pathutils.IsWithinPath("/srv/trees/feature", "/srv/trees/feature"))
	require.True(testInstance, pathutils.IsWithinPath("/srv/trees/feature", "/srv/trees/feature/internal"))
	require.False(testInstance, pathutils.IsWithinPath("/srv/trees/feature", "/srv/trees/feature-two"))
	require.False(testInstance, pathutils.IsWithinPath("/srv/trees/feature/internal", "/srv/trees/feature"))
}
