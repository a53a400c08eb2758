package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/csheth/fc100v/internal/chat"
	"github.com/csheth/fc100v/internal/credentials"
	"github.com/csheth/fc100v/internal/logging"
	"github.com/csheth/fc100v/internal/manual"
)

const (
	defaultAnswerWidth = 80
	manualLoadTimeout  = 2 * time.Minute
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask the assistant one question and print the answer",
		Long: `Ask sends a single question to the configured provider. With no arguments
the question is read from standard input when it is not a terminal.`,
		Example: `  fc100v ask how do I switch to amortization mode
  echo "What does SOLVE do?" | fc100v ask --provider ollama`,
		RunE: runAsk,
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	question, err := readQuestion(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	if _, err := credentials.Resolve(cfg.Assistant.Provider); err != nil {
		return err
	}

	manualText := ""
	if cfg.Assistant.Manual != "" {
		manualText, err = loadManual(cmd.Context(), cfg.Assistant.Manual)
		if err != nil {
			log.WithError(err).WithField("source", cfg.Assistant.Manual).Warn("manual load failed")
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: manual unavailable: %v\n", err)
			manualText = ""
		}
	}

	client, err := newClient(cfg, manualText, log)
	if err != nil {
		return err
	}
	// The question's deadline starts after the manual is in hand.
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Assistant.RequestTimeout.Std())
	defer cancel()
	log.WithField("provider", client.Name()).Info("one-shot question")
	answer, err := client.Ask(ctx, question)
	if err != nil {
		return err
	}
	text := strings.Join(chat.Lines(answer), "\n")
	fmt.Fprintln(cmd.OutOrStdout(), wordwrap.String(text, answerWidth(cmd.OutOrStdout())))
	return nil
}

func loadManual(parent context.Context, source string) (string, error) {
	ctx, cancel := context.WithTimeout(parent, manualLoadTimeout)
	defer cancel()
	return manual.Load(ctx, source)
}

func readQuestion(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return "", errors.New("no question given")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read question: %w", err)
	}
	question := strings.TrimSpace(string(data))
	if question == "" {
		return "", errors.New("no question given")
	}
	return question, nil
}

// answerWidth is the terminal width when out is a terminal, then $COLUMNS,
// then 80.
func answerWidth(out io.Writer) int {
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 20 {
			return width
		}
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 20 {
		return n
	}
	return defaultAnswerWidth
}
