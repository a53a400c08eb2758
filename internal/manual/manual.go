// Package manual loads the calculator's user's guide so the assistant can
// quote it. Sources may be local PDF or text files, or an http(s) URL to a
// PDF that is downloaded once into the user cache.
package manual

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for files that are neither PDF nor text.
var ErrUnsupportedFormat = errors.New("unsupported manual format")

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// Load returns the plain text of the manual at source.
func Load(ctx context.Context, source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", nil
	}
	path := source
	if isRemote(source) {
		cache, err := NewCache("", nil)
		if err != nil {
			return "", err
		}
		path, err = cache.Fetch(ctx, source)
		if err != nil {
			return "", fmt.Errorf("download manual: %w", err)
		}
	}
	return LoadFile(path)
}

// LoadFile reads a local manual. The format is chosen by extension; files
// without a known extension are sniffed for the PDF magic number.
func LoadFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfText(path)
	case ".txt", ".md", ".text":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return Clean(string(data)), nil
	}
	head, err := readHead(path, 5)
	if err != nil {
		return "", err
	}
	if bytes.Equal(head, []byte("%PDF-")) {
		return pdfText(path)
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}

func pdfText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", err
	}
	return Clean(builder.String()), nil
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
