package terminal

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// ErrClosed is returned by ReadLine once the user ends input with Ctrl+C
// or Ctrl+D.
var ErrClosed = errors.New("input closed")

// Prompt reads lines with editing and a history file.
type Prompt struct {
	line        *liner.State
	historyFile string
}

func NewPrompt(historyFile string) *Prompt {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	p := &Prompt{line: line, historyFile: historyFile}
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	return p
}

func (p *Prompt) ReadLine(prompt string) (string, error) {
	input, err := p.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return "", ErrClosed
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		p.line.AppendHistory(input)
	}
	return input, nil
}

// Close writes the history file and restores the terminal.
func (p *Prompt) Close() error {
	if p.historyFile != "" {
		if f, err := os.OpenFile(p.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			p.line.WriteHistory(f)
			f.Close()
		}
	}
	return p.line.Close()
}
