package ui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/wtx/internal/execshell"
	"github.com/temirov/wtx/internal/ui"
)

func TestNoticeWriterRoutesStreamsByLevel(testInstance *testing.T) {
	var outputBuffer bytes.Buffer
	var errorBuffer bytes.Buffer

	noticeWriter := ui.NewNoticeWriter(&outputBuffer, &errorBuffer)
	noticeWriter.Infof("worktree for %s already exists", "feature/login")
	noticeWriter.Warnf("branch %s is not fully merged; leaving it in place", "feature/login")
	noticeWriter.Errorf("uncommitted changes in %s", "/srv/trees/feature")
	noticeWriter.Plainf("Branch:  %s", "feature/login")

	require.Equal(testInstance, "info: worktree for feature/login already exists\nBranch:  feature/login\n", outputBuffer.String())
	require.Equal(testInstance, "warn: branch feature/login is not fully merged; leaving it in place\nerror: uncommitted changes in /srv/trees/feature\n", errorBuffer.String())
}

func TestConsoleCommandEventLoggerLevels(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zap.DebugLevel)
	eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))

	command := execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"status", "--porcelain"}, WorkingDirectory: "/repo"}}

	eventLogger.CommandStarted(command)
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1, StandardError: "boom"})
	eventLogger.CommandExecutionFailed(command, errors.New("binary missing"))

	entries := observedLogs.All()
	require.Len(testInstance, entries, 4)
	require.Equal(testInstance, zap.DebugLevel, entries[0].Level)
	require.Equal(testInstance, "Running git status --porcelain (in /repo)", entries[0].Message)
	require.Equal(testInstance, zap.DebugLevel, entries[1].Level)
	require.Equal(testInstance, zap.WarnLevel, entries[2].Level)
	require.Contains(testInstance, entries[2].Message, "failed with exit code 1: boom")
	require.Equal(testInstance, zap.ErrorLevel, entries[3].Level)
	require.Contains(testInstance, entries[3].Message, "binary missing")
}
