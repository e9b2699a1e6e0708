// Package prompt implements interactive confirmation for mutating worktree operations.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/wtx/internal/utils"
)

const (
	confirmationSuffixConstant    = " [y/N]: "
	affirmativeShortLiteral       = "y"
	affirmativeLongLiteral        = "yes"
	promptWriteErrorTemplate      = "failed to present confirmation prompt: %w"
	promptReadErrorTemplate       = "failed to read confirmation response: %w"
	prompterInputMissingConstant  = "confirmation prompter requires an input reader"
	prompterOutputMissingConstant = "confirmation prompter requires an output writer"
)

// ConfirmationPrompter asks the user to approve an operation before it runs.
type ConfirmationPrompter interface {
	Confirm(promptMessage string) (bool, error)
}

// IOConfirmationPrompter reads confirmation responses from an input stream.
// Only an explicit "y" or "yes" response, case-insensitive, counts as approval;
// anything else, including end of input, declines.
type IOConfirmationPrompter struct {
	inputReader  *bufio.Reader
	outputWriter io.Writer
}

// NewIOConfirmationPrompter constructs a prompter over the provided streams.
func NewIOConfirmationPrompter(inputStream io.Reader, outputStream io.Writer) (*IOConfirmationPrompter, error) {
	if inputStream == nil {
		return nil, fmt.Errorf(prompterInputMissingConstant)
	}
	if outputStream == nil {
		return nil, fmt.Errorf(prompterOutputMissingConstant)
	}

	return &IOConfirmationPrompter{
		inputReader:  bufio.NewReader(inputStream),
		outputWriter: utils.NewFlushingWriter(outputStream),
	}, nil
}

// Confirm presents the prompt and interprets the response.
func (prompter *IOConfirmationPrompter) Confirm(promptMessage string) (bool, error) {
	_, writeError := fmt.Fprint(prompter.outputWriter, promptMessage+confirmationSuffixConstant)
	if writeError != nil {
		return false, fmt.Errorf(promptWriteErrorTemplate, writeError)
	}

	responseLine, readError := prompter.inputReader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return false, fmt.Errorf(promptReadErrorTemplate, readError)
	}

	normalizedResponse := strings.ToLower(strings.TrimSpace(responseLine))
	return normalizedResponse == affirmativeShortLiteral || normalizedResponse == affirmativeLongLiteral, nil
}
