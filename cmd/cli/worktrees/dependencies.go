package worktrees

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/wtx/internal/execshell"
	"github.com/temirov/wtx/internal/gitrepo"
	"github.com/temirov/wtx/internal/ui"
	"github.com/temirov/wtx/internal/worktrees/prompt"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// HumanReadableLoggingProvider reports whether console-oriented logging is active.
type HumanReadableLoggingProvider func() bool

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}

	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func resolveExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, humanReadableProvider HumanReadableLoggingProvider) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner)
	if creationError != nil {
		return nil, creationError
	}

	if humanReadableProvider != nil && humanReadableProvider() {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	return shellExecutor, nil
}

func resolvePrompter(existing prompt.ConfirmationPrompter, command *cobra.Command) (prompt.ConfirmationPrompter, error) {
	if existing != nil {
		return existing, nil
	}
	return prompt.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
}

func newNoticeWriter(command *cobra.Command) *ui.NoticeWriter {
	return ui.NewNoticeWriter(command.OutOrStdout(), command.ErrOrStderr())
}
