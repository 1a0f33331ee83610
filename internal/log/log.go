// Package log is the CLI's console logger. A Logger is an immutable value
// carried on the context; builders return modified copies.
package log

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/teammerge/teammerge/internal/charm/styles"
	"github.com/teammerge/teammerge/internal/env"
	"github.com/teammerge/teammerge/internal/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarn    Level = "warn"
	LevelErr     Level = "error"
	LevelSuccess Level = "success"
)

// Levels are the values accepted by --logLevel, most verbose first.
var Levels = []string{string(LevelDebug), string(LevelInfo), string(LevelWarn), string(LevelErr)}

var severity = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelErr:   3,
}

type Formatter func(l Logger, level Level, msg string, err error) string

type Logger struct {
	level           Level
	associatedFile  string
	fields          []zapcore.Field
	interactiveOnly bool
	formatter       Formatter
	writer          io.Writer
}

type loggerContextKey struct{}

// With returns a copy of ctx carrying l.
func With(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// From returns the logger on ctx, or a default one.
func From(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerContextKey{}).(Logger); ok {
		return l
	}
	return New()
}

// New writes to stderr at info level. Output is styled on a terminal,
// level-prefixed when redirected and GitHub workflow commands in Actions.
func New() Logger {
	formatter := BasicFormatter
	switch {
	case env.IsGithubAction():
		formatter = GithubFormatter
	case !utils.IsInteractive():
		formatter = PrefixedFormatter
	}

	return Logger{
		level:     LevelInfo,
		formatter: formatter,
		writer:    os.Stderr,
	}
}

func (l Logger) WithLevel(level Level) Logger {
	l.level = level
	return l
}

// WithAssociatedFile attaches a file to warnings and errors, which GitHub
// Actions shows as an annotation on that file.
func (l Logger) WithAssociatedFile(associatedFile string) Logger {
	l.associatedFile = associatedFile
	return l
}

// WithInteractiveOnly drops output when stdout is not a terminal.
func (l Logger) WithInteractiveOnly() Logger {
	l.interactiveOnly = true
	return l
}

func (l Logger) With(fields ...zapcore.Field) Logger {
	l.fields = append(append([]zapcore.Field{}, l.fields...), fields...)
	return l
}

func (l Logger) WithFormatter(formatter Formatter) Logger {
	l.formatter = formatter
	return l
}

func (l Logger) WithWriter(w io.Writer) Logger {
	l.writer = w
	return l
}

func (l Logger) enabled(level Level) bool {
	return severity[level] >= severity[l.level]
}

func (l Logger) Debug(msg string, fields ...zapcore.Field) {
	if l.enabled(LevelDebug) {
		l.log(LevelDebug, msg, fields)
	}
}

func (l Logger) Info(msg string, fields ...zapcore.Field) {
	if l.enabled(LevelInfo) {
		l.log(LevelInfo, msg, fields)
	}
}

func (l Logger) Infof(format string, a ...any) {
	l.Info(fmt.Sprintf(format, a...))
}

func (l Logger) Warn(msg string, fields ...zapcore.Field) {
	if l.enabled(LevelWarn) {
		l.log(LevelWarn, msg, fields)
	}
}

func (l Logger) Warnf(format string, a ...any) {
	l.Warn(fmt.Sprintf(format, a...))
}

func (l Logger) Error(msg string, fields ...zapcore.Field) {
	l.log(LevelErr, msg, fields)
}

func (l Logger) Errorf(format string, a ...any) {
	l.Error(fmt.Sprintf(format, a...))
}

// Success is shown at every level.
func (l Logger) Success(msg string, fields ...zapcore.Field) {
	l.log(LevelSuccess, msg, fields)
}

func (l Logger) Successf(format string, a ...any) {
	l.Success(fmt.Sprintf(format, a...))
}

func (l Logger) Printf(format string, a ...any) {
	l.Println(fmt.Sprintf(format, a...))
}

func (l Logger) PrintfStyled(style lipgloss.Style, format string, a ...any) {
	l.PrintlnUnstyled(style.Render(fmt.Sprintf(format, a...)))
}

func (l Logger) Println(s string) {
	l.PrintlnUnstyled(s)
}

func (l Logger) PrintlnUnstyled(a any) {
	if l.interactiveOnly && !utils.IsInteractive() {
		return
	}
	fmt.Fprintln(l.writer, a)
}

func (l Logger) log(level Level, msg string, fields []zapcore.Field) {
	fields = append(append([]zapcore.Field{}, l.fields...), fields...)
	msg, err, fields := getMessage(msg, fields)

	l.Println(l.formatter(l, level, msg, err) + fieldsToJSON(fields))
}

func BasicFormatter(l Logger, level Level, msg string, err error) string {
	switch level {
	case LevelDebug:
		return styles.Dimmed.Render(msg)
	case LevelInfo:
		return styles.Info.Render(msg)
	case LevelWarn:
		return styles.Warning.Render(msg)
	case LevelErr:
		return styles.Error.Render(msg)
	case LevelSuccess:
		return styles.Success.Render(msg)
	}

	return msg
}

// PrefixedFormatter writes plain text with a level prefix.
func PrefixedFormatter(l Logger, level Level, msg string, err error) string {
	switch level {
	case LevelDebug:
		return "DEBUG\t" + msg
	case LevelWarn:
		return "WARN\t" + msg
	case LevelErr:
		return "ERROR\t" + msg
	}

	return "INFO\t" + msg
}

// GithubFormatter emits workflow commands so warnings and errors become
// annotations in GitHub Actions.
func GithubFormatter(l Logger, level Level, msg string, err error) string {
	attrs := ""
	if l.associatedFile != "" {
		attrs = " file=" + strings.TrimPrefix(l.associatedFile, "./")
	}

	switch level {
	case LevelDebug:
		return "::debug::" + msg
	case LevelWarn:
		return fmt.Sprintf("::warning%s::%s", attrs, msg)
	case LevelErr:
		return fmt.Sprintf("::error%s::%s", attrs, msg)
	}

	return msg
}

// getMessage promotes the first error field to the message when msg is
// empty.
func getMessage(msg string, fields []zapcore.Field) (string, error, []zapcore.Field) {
	var err error
	rest := make([]zapcore.Field, 0, len(fields))

	for _, field := range fields {
		if e, ok := field.Interface.(error); ok && field.Type == zapcore.ErrorType && err == nil {
			err = e
			continue
		}
		rest = append(rest, field)
	}

	if err != nil {
		if msg == "" {
			msg = err.Error()
		} else {
			rest = append(rest, zap.Error(err))
		}
	}

	return msg, err, rest
}

func fieldsToJSON(fields []zapcore.Field) string {
	if len(fields) == 0 {
		return ""
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(enc)
	}

	data, err := json.Marshal(enc.Fields)
	if err != nil {
		return ""
	}

	return "\t" + string(data)
}
