// Package app dispatches parsed CLI commands: it owns process setup (logging,
// config), the single-instance socket, and the lifecycle of a live run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcllobet/mother-in-law-decoder/internal/audio"
	"github.com/jcllobet/mother-in-law-decoder/internal/cli"
	"github.com/jcllobet/mother-in-law-decoder/internal/config"
	"github.com/jcllobet/mother-in-law-decoder/internal/doctor"
	"github.com/jcllobet/mother-in-law-decoder/internal/export"
	"github.com/jcllobet/mother-in-law-decoder/internal/ipc"
	"github.com/jcllobet/mother-in-law-decoder/internal/langpick"
	"github.com/jcllobet/mother-in-law-decoder/internal/logging"
	"github.com/jcllobet/mother-in-law-decoder/internal/pipeline"
	"github.com/jcllobet/mother-in-law-decoder/internal/session"
	"github.com/jcllobet/mother-in-law-decoder/internal/tui"
	"github.com/jcllobet/mother-in-law-decoder/internal/version"
)

const binaryName = "decoder"

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText(binaryName))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText(binaryName))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, w.Message)
		}
		fmt.Fprintf(r.Stderr, "warning: %s\n", msg)
		logger.Warn("config warning", "line", w.Line, "message", w.Message)
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(cfgLoaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandDevices:
		return r.commandDevices(ctx)
	case cli.CommandStatus:
		return r.commandStatus(ctx)
	case cli.CommandSave:
		return r.forwardOrFail(ctx, "save")
	case cli.CommandStop:
		return r.forwardOrFail(ctx, "stop")
	case cli.CommandRun:
		return r.commandRun(ctx, parsed, cfgLoaded.Config, logger)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

func (r Runner) commandDevices(ctx context.Context) int {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no audio devices found")
		return 1
	}

	for _, device := range devices {
		defaultMark := " "
		if device.Default {
			defaultMark = "*"
		}
		availability := "yes"
		if !device.Available {
			availability = "no"
		}
		muted := "no"
		if device.Muted {
			muted = "yes"
		}
		fmt.Fprintf(
			r.Stdout,
			"%s id=%s | description=%q | state=%s | available=%s | muted=%s\n",
			defaultMark,
			device.ID,
			device.Description,
			device.State,
			availability,
			muted,
		)
	}

	return 0
}

func (r Runner) commandStatus(ctx context.Context) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintln(r.Stdout, "idle")
		return 0
	}

	resp, handled, err := tryForward(ctx, socketPath, "status")
	if handled {
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		if resp.State == "" {
			resp.State = "idle"
		}
		fmt.Fprintln(r.Stdout, resp.State)
		if resp.Session != "" {
			fmt.Fprintf(r.Stdout, "session=%s segments=%d tokens=%d\n", resp.Session, resp.Segments, resp.Tokens)
		}
		return 0
	}

	fmt.Fprintln(r.Stdout, "idle")
	return 0
}

func (r Runner) forwardOrFail(ctx context.Context, command string) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	resp, handled, err := tryForward(ctx, socketPath, command)
	if !handled {
		fmt.Fprintf(r.Stderr, "error: no live session is running\n")
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if resp.Message != "" {
		fmt.Fprintln(r.Stdout, resp.Message)
	}
	return 0
}

// commandRun owns a full live session: open the session directory, pick
// languages if unconfigured, claim the single-instance socket, stream audio,
// and save the final segment on exit.
func (r Runner) commandRun(ctx context.Context, parsed cli.Parsed, cfg config.Config, logger *slog.Logger) int {
	apiKey := strings.TrimSpace(os.Getenv(doctor.APIKeyEnv))
	if apiKey == "" {
		fmt.Fprintf(r.Stderr, "error: %s is not set\n", doctor.APIKeyEnv)
		return 1
	}

	if parsed.Session == "" {
		fmt.Fprintln(r.Stderr, "error: a session name is required (use --session NAME)")
		return 1
	}

	baseDir, err := config.ResolveSessionDir(cfg.Session.Dir)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	sources := parsed.SourceLanguages
	if len(sources) == 0 {
		sources = cfg.Languages.Sources
	}
	target := parsed.TargetLanguage
	if target == "" {
		target = cfg.Languages.Target
	}

	sess, err := session.Open(session.Config{
		Name:            parsed.Session,
		BaseDir:         baseDir,
		SourceLanguages: sources,
		TargetLanguage:  target,
	})
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	if sess.NeedsLanguages() {
		if code := r.pickLanguages(sess); code != 0 {
			return code
		}
	}
	if err := sess.SaveState(); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	if parsed.Device != "" {
		cfg.Audio.Input = parsed.Device
	}
	if parsed.Context != "" {
		cfg.Service.Context = parsed.Context
	}

	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	listener, err := ipc.Acquire(ctx, socketPath, 180*time.Millisecond, 8, nil)
	if err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			fmt.Fprintln(r.Stderr, "error: a live session is already running (use `decoder stop` first)")
			return 1
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		_ = listener.Close()
		_ = os.Remove(socketPath)
	}()

	streamer := pipeline.NewStreamer(cfg, logger, sess, apiKey)
	if err := streamer.Start(ctx); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("start streaming failed", "error", err.Error())
		return 1
	}
	logger.Info("streaming started",
		"session", sess.Name(),
		"device", streamer.DeviceDescription(),
		"sources", strings.Join(sess.SourceLanguages(), ","),
		"target", sess.TargetLanguage(),
	)

	control := tui.NewControl(sess)
	serverCtx, serverCancel := context.WithCancel(ctx)
	defer serverCancel()

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- ipc.Serve(serverCtx, listener, control)
	}()

	clipboard := export.NewClipboard(cfg)
	model := tui.New(sess, streamer, control, clipboard, cfg.UI)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		_ = streamer.Cancel(context.Background())
		return 1
	}

	// Drain trailing tokens before the final save so nothing spoken right
	// before quit is lost.
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := streamer.Stop(stopCtx); err != nil {
		fmt.Fprintf(r.Stderr, "warning: %v\n", err)
		logger.Warn("stop streaming", "error", err.Error())
	}

	exitCode := r.saveOnExit(stopCtx, sess, logger)

	serverCancel()
	if serverErr := <-serverErrCh; serverErr != nil {
		fmt.Fprintf(r.Stderr, "error: ipc server failed: %v\n", serverErr)
		return 1
	}
	return exitCode
}

// pickLanguages runs the interactive selectors and records the choice.
func (r Runner) pickLanguages(sess *session.Session) int {
	sources, err := langpick.Run("Select source languages", true)
	if err != nil {
		return r.pickFailed(err)
	}
	targets, err := langpick.Run("Select target language", false)
	if err != nil {
		return r.pickFailed(err)
	}
	if len(targets) == 0 {
		fmt.Fprintln(r.Stderr, "error: no target language selected")
		return 1
	}
	sess.SetLanguages(sources, targets[0])
	return 0
}

func (r Runner) pickFailed(err error) int {
	if errors.Is(err, langpick.ErrCancelled) {
		fmt.Fprintln(r.Stdout, "cancelled")
		return 0
	}
	fmt.Fprintf(r.Stderr, "error: %v\n", err)
	return 1
}

// saveOnExit writes the final segment when tokens are buffered, otherwise
// just persists the session state.
func (r Runner) saveOnExit(ctx context.Context, sess *session.Session, logger *slog.Logger) int {
	if !sess.HasTokens() {
		if err := sess.SaveState(); err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	result, err := sess.SaveSegment(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: save segment: %v\n", err)
		logger.Error("save segment failed", "error", err.Error())
		return 1
	}

	logger.Info("segment saved",
		"segment", result.Index,
		"json", result.JSONPath,
		"text", result.TextPath,
		"audio", result.AudioPath,
	)
	fmt.Fprintf(r.Stdout, "saved %s\n", result.TextPath)
	if result.AudioPath != "" {
		fmt.Fprintf(r.Stdout, "saved %s\n", result.AudioPath)
	}
	return 0
}

func tryForward(ctx context.Context, socketPath string, command string) (ipc.Response, bool, error) {
	resp, err := ipc.Send(ctx, socketPath, ipc.Request{Command: command}, 220*time.Millisecond)
	if err == nil {
		if resp.OK {
			return resp, true, nil
		}
		return resp, true, errors.New(resp.Error)
	}

	if isSocketMissing(err) {
		return ipc.Response{}, false, nil
	}
	if isConnectionRefused(err) {
		return ipc.Response{}, false, nil
	}

	return ipc.Response{}, true, fmt.Errorf("forward command %q: %w", command, err)
}

func isSocketMissing(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, os.ErrNotExist) ||
		strings.Contains(err.Error(), "no such file or directory")
}

func isConnectionRefused(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}
