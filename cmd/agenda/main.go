package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/agenda"
	"github.com/smileynet/agenda/internal/config"
	"github.com/smileynet/agenda/internal/dashboard"
	"github.com/smileynet/agenda/internal/event"
	"github.com/smileynet/agenda/internal/i18n"
	"github.com/smileynet/agenda/internal/metrics"
	"github.com/smileynet/agenda/internal/script"
	"github.com/smileynet/agenda/internal/session"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for agenda.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Form    FormCmd          `cmd:"" help:"Open the interactive event form."`
	Apply   ApplyCmd         `cmd:"" help:"Apply a YAML script of form actions and print the result."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/agenda/config.yaml"),
		".agenda/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfig loads config, applies a non-empty locale flag and validates.
func resolveConfig(locale string) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if locale != "" {
		cfg.Form.Locale = locale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newPrinter loads the catalogs, local overrides first, and returns the
// printer of the configured locale.
func newPrinter(cfg *config.Config) (*i18n.Printer, error) {
	cat, err := i18n.Load(agenda.OverlayFS(cfg.UI.LocalesDir, agenda.Locales), i18n.Supported...)
	if err != nil {
		return nil, err
	}
	return cat.Printer(cfg.Form.Locale)
}

// newSession builds a session validating with the configured date layouts.
func newSession(cfg *config.Config, msgs event.Messages, opts ...session.Option) *session.Session {
	v := event.NewValidator(msgs, event.WithDateLayouts(cfg.Form.DateLayouts...))
	return session.New(v, opts...)
}

// FormCmd opens the interactive form TUI.
type FormCmd struct {
	Locale      string `help:"Message locale (es, en)."`
	NoAltScreen bool   `help:"Draw inline instead of on the alternate screen."`
	LogFile     string `help:"Append session log lines to this file." type:"path"`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the form TUI.
func (f *FormCmd) Run() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("form: requires a terminal (TTY)")
	}

	cfg, err := resolveConfig(f.Locale)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	msgs, err := newPrinter(cfg)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}

	logger, closeLog, err := openLog(f.LogFile)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	defer closeLog()

	sess := newSession(cfg, msgs, session.WithLogger(logger))
	m := dashboard.NewModel(sess, msgs,
		dashboard.WithDefaults(event.RawRecord{Name: cfg.Form.DefaultName}),
		dashboard.WithDisplayLayout(cfg.Form.DisplayLayout),
	)

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen && !f.NoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return f.run(true, tea.NewProgram(m, opts...))
}

// run executes the tea program, enabling testable wiring.
func (f *FormCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("form: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// openLog returns a logger appending to path, or a discarding logger when
// path is empty. The returned func closes the file.
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return log.New(f, "agenda: ", log.LstdFlags), func() { _ = f.Close() }, nil
}

// ApplyCmd runs a YAML action script against a fresh session.
type ApplyCmd struct {
	File    string `arg:"" help:"Script file with a list of submit/edit/delete actions." type:"path"`
	Locale  string `help:"Message locale (es, en)."`
	Metrics bool   `help:"Append a Prometheus text dump of the session counters."`
	Strict  bool   `help:"Fail when any action is rejected or targets a missing id."`
	Verbose bool   `help:"Log each session action to stderr."`
}

// Run executes the apply command.
func (a *ApplyCmd) Run() error {
	cfg, err := resolveConfig(a.Locale)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	return a.run(os.Stdout, os.Stderr, cfg)
}

// run applies the script, writing results to w and session logs to logw.
func (a *ApplyCmd) run(w, logw io.Writer, cfg *config.Config) error {
	msgs, err := newPrinter(cfg)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	s, err := script.Load(a.File)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	opts := []session.Option{}
	if a.Verbose {
		opts = append(opts, session.WithLogger(log.New(logw, "agenda: ", 0)))
	}
	var rec *metrics.Recorder
	if a.Metrics {
		rec = metrics.NewRecorder()
		opts = append(opts, session.WithMetrics(rec))
	}

	sess := newSession(cfg, msgs, opts...)
	sum := script.NewRunner(sess, msgs, w, script.WithDisplayLayout(cfg.Form.DisplayLayout)).Run(s)

	if rec != nil {
		_, _ = fmt.Fprintln(w)
		if err := rec.WriteText(w); err != nil {
			return fmt.Errorf("apply: writing metrics: %w", err)
		}
	}

	if a.Strict && sum.Failed() > 0 {
		return fmt.Errorf("apply: %d of %d actions failed: %w", sum.Failed(), len(s.Actions), script.ErrRejected)
	}
	return nil
}

// Exit codes.
const (
	exitSuccess  = 0
	exitRejected = 1
	exitSetup    = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, script.ErrRejected) {
		return exitRejected
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("Collect event records in a form and manage them in a table."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
