package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/fc100v/internal/chat"
	"github.com/csheth/fc100v/internal/llm"
	"github.com/csheth/fc100v/internal/manual"
	"github.com/csheth/fc100v/internal/transcript"
)

func askJob(client llm.Client, req chat.Request) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		answer, err := client.Ask(ctx, req.Question)
		return askResultMsg{req: req, answer: answer, err: err}, err
	}
}

func loadManualJob(source string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		text, err := manual.Load(ctx, source)
		return manualLoadedMsg{source: source, text: text, err: err}, err
	}
}

func archiveSessionJob(path, provider string, messages []chat.Message, startedAt time.Time) jobRunner {
	toPersist := append([]chat.Message(nil), messages...)
	closedAt := time.Now()
	return func(context.Context) (tea.Msg, error) {
		session := transcript.FromChat(toPersist, provider, startedAt, closedAt)
		if err := transcript.Append(path, session); err != nil {
			return archiveResultMsg{err: err}, err
		}
		return archiveResultMsg{count: len(toPersist)}, nil
	}
}

func copyReadoutCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{text: text, err: write(text)}
	}
}
