package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"

	"github.com/harrison/picaf/internal/models"
)

// ExitError reports a launched command that exited with a non-zero status
type ExitError struct {
	Path    string
	Command []string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %s exited with status %d", shellquote.Join(e.Command...), e.Code)
}

// Recorder stores launches
type Recorder interface {
	Record(ctx context.Context, launch *models.Launch) error
}

// Logger receives launcher diagnostics
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// Launcher runs the command of a Template for chosen files.
// With a nil Template the file name is printed instead.
type Launcher struct {
	Template *Template
	DryRun   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Recorder, if set, receives every command run or printed
	Recorder Recorder
	// RunID groups the launches of one invocation ("" = generated)
	RunID  string
	Logger Logger
}

// NewLauncher creates a Launcher wired to the process stdio
func NewLauncher(tmpl *Template, dryRun bool) *Launcher {
	return &Launcher{
		Template: tmpl,
		DryRun:   dryRun,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		RunID:    uuid.NewString(),
	}
}

// Launch acts on one file. A command exiting non-zero yields *ExitError.
func (l *Launcher) Launch(ctx context.Context, path string) error {
	if l.Template == nil {
		_, err := fmt.Fprintln(l.Stdout, path)
		return err
	}

	args, err := l.Template.Build(path)
	if err != nil {
		return err
	}

	launch := &models.Launch{
		RunID:      l.runID(),
		Path:       path,
		Command:    args,
		DryRun:     l.DryRun,
		LaunchedAt: time.Now(),
	}

	if l.DryRun {
		if _, err := fmt.Fprintln(l.Stdout, shellquote.Join(args...)); err != nil {
			return err
		}
		l.record(ctx, launch)
		return nil
	}

	l.debug(fmt.Sprintf("launching %s", shellquote.Join(args...)))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("launch %s: %w", args[0], err)
		}
		launch.ExitCode = exitErr.ExitCode()
	}

	l.record(ctx, launch)

	if launch.ExitCode != 0 {
		return &ExitError{Path: path, Command: args, Code: launch.ExitCode}
	}
	return nil
}

// LaunchAll launches files in order and stops at the first failure
func (l *Launcher) LaunchAll(ctx context.Context, paths []string) error {
	for _, p := range paths {
		if err := l.Launch(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (l *Launcher) runID() string {
	if l.RunID == "" {
		l.RunID = uuid.NewString()
	}
	return l.RunID
}

func (l *Launcher) record(ctx context.Context, launch *models.Launch) {
	if l.Recorder == nil {
		return
	}
	if err := l.Recorder.Record(ctx, launch); err != nil && l.Logger != nil {
		l.Logger.LogWarn(fmt.Sprintf("failed to record launch of %s: %v", launch.Path, err))
	}
}

func (l *Launcher) debug(msg string) {
	if l.Logger != nil {
		l.Logger.LogDebug(msg)
	}
}
