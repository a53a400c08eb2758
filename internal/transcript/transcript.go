// Package transcript archives closed assistant sessions to a JSON file.
package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/csheth/fc100v/internal/chat"
)

const entryTypeSession = "session"

// Session is one archived overlay session.
type Session struct {
	EntryType string    `json:"entryType"`
	StartedAt time.Time `json:"startedAt"`
	ClosedAt  time.Time `json:"closedAt"`
	Provider  string    `json:"provider,omitempty"`
	Messages  []Message `json:"messages"`
}

// Message is one archived conversation entry.
type Message struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type entryHeader struct {
	EntryType string `json:"entryType"`
}

// FromChat converts overlay messages into a session.
func FromChat(messages []chat.Message, provider string, startedAt, closedAt time.Time) Session {
	s := Session{
		EntryType: entryTypeSession,
		StartedAt: startedAt,
		ClosedAt:  closedAt,
		Provider:  provider,
		Messages:  make([]Message, 0, len(messages)),
	}
	for _, m := range messages {
		s.Messages = append(s.Messages, Message{Sender: string(m.Sender), Text: m.Text, Timestamp: m.Timestamp})
	}
	return s
}

// Append adds session to the archive at path. Empty sessions are skipped.
func Append(path string, session Session) error {
	if path == "" || len(session.Messages) == 0 {
		return nil
	}
	session.EntryType = entryTypeSession
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	entries, err := loadEntries(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	entries = append(entries, raw)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data, 0o644)
}

// Load returns every archived session. A missing file is an empty archive;
// entries of other types are ignored.
func Load(path string) ([]Session, error) {
	entries, err := loadEntries(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var sessions []Session
	for _, raw := range entries {
		var header entryHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, err
		}
		if header.EntryType != entryTypeSession {
			continue
		}
		var s Session
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func loadEntries(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return entries, nil
}

// atomicWriteFile writes through a temp file in the same directory so a crash
// never leaves a truncated archive.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".transcript-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
