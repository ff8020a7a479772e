// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/poiesic/homeqa/core"
)

// SupportedExtensions lists the file extensions LoadFile understands.
var SupportedExtensions = []string{".md", ".markdown", ".txt", ".pdf"}

// Supported reports whether path has an extension LoadFile understands.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadFile reads path into a document. Markdown and text files are used
// as is; PDF files are reduced to their plain text.
func LoadFile(path string) (core.Document, error) {
	if !Supported(path) {
		return core.Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return core.Document{}, err
	}

	var content, title string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		content, err = pdfText(data)
		if err != nil {
			return core.Document{}, err
		}
		title = firstNonEmptyLine(content)
	case ".md", ".markdown":
		content = normalizePlainText(string(data))
		title = markdownTitle(content)
	default:
		content = normalizePlainText(string(data))
		title = firstNonEmptyLine(content)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return core.Document{}, core.ErrEmptyContent
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return core.Document{Title: title, Content: content}, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return normalizePlainText(buf.String()), nil
}

// markdownTitle returns the text of the first heading, or the first
// non-empty line when there is none.
func markdownTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}
		if heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#")); heading != "" {
			return heading
		}
	}
	return firstNonEmptyLine(content)
}

func firstNonEmptyLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func normalizePlainText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
