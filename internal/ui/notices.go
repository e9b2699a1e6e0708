package ui

import (
	"fmt"
	"io"

	"github.com/temirov/wtx/internal/utils"
)

const (
	infoNoticePrefixConstant  = "info: "
	warnNoticePrefixConstant  = "warn: "
	errorNoticePrefixConstant = "error: "
	noticeLineSuffixConstant  = "\n"
)

// NoticeWriter prints prefixed user-facing notices on the command's streams.
// Informational notices go to the output stream; warnings and errors go to the
// error stream so scripted callers can separate them from command results.
type NoticeWriter struct {
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewNoticeWriter constructs a NoticeWriter over the provided streams.
func NewNoticeWriter(outputWriter io.Writer, errorWriter io.Writer) *NoticeWriter {
	return &NoticeWriter{
		outputWriter: utils.NewFlushingWriter(outputWriter),
		errorWriter:  utils.NewFlushingWriter(errorWriter),
	}
}

// Infof prints an informational notice.
func (writer *NoticeWriter) Infof(messageTemplate string, arguments ...any) {
	writer.printNotice(writer.outputWriter, infoNoticePrefixConstant, messageTemplate, arguments...)
}

// Warnf prints a warning notice.
func (writer *NoticeWriter) Warnf(messageTemplate string, arguments ...any) {
	writer.printNotice(writer.errorWriter, warnNoticePrefixConstant, messageTemplate, arguments...)
}

// Errorf prints an error notice.
func (writer *NoticeWriter) Errorf(messageTemplate string, arguments ...any) {
	writer.printNotice(writer.errorWriter, errorNoticePrefixConstant, messageTemplate, arguments...)
}

// Plainf prints an unprefixed line on the output stream.
func (writer *NoticeWriter) Plainf(messageTemplate string, arguments ...any) {
	writer.printNotice(writer.outputWriter, emptyStringConstant, messageTemplate, arguments...)
}

func (writer *NoticeWriter) printNotice(targetWriter io.Writer, prefix string, messageTemplate string, arguments ...any) {
	if writer == nil || targetWriter == nil {
		return
	}
	fmt.Fprintf(targetWriter, prefix+messageTemplate+noticeLineSuffixConstant, arguments...)
}
