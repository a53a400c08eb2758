package cli

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/csheth/fc100v/internal/calc"
	"github.com/csheth/fc100v/internal/llm"
	"github.com/csheth/fc100v/internal/logging"
	"github.com/csheth/fc100v/internal/tui"
)

var errNotTerminal = errors.New("stdout is not a terminal; use `fc100v press` for scripted runs")

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !isTerminal(os.Stdout) {
		return errNotTerminal
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newClient(cfg, "", log)
	if err != nil {
		return err
	}
	log.WithField("provider", client.Name()).Info("starting fc100v")

	model := tui.New(tui.Config{
		Interpreter: calc.New(calc.WithInitialMode(cfg.Mode())),
		LLM:         client,
		BuildLLM: func(manualText string) (llm.Client, error) {
			return newClient(cfg, manualText, log)
		},
		ManualSource:   cfg.Assistant.Manual,
		TranscriptPath: cfg.TranscriptPath,
		RequestTimeout: cfg.Assistant.RequestTimeout.Std(),
		Logger:         log,
	})

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		log.WithError(err).Error("program error")
		return err
	}
	log.Info("fc100v exited")
	return nil
}
