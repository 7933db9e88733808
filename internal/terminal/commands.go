package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"beauty-assistant/internal/assistant"
)

var helpLines = []string{
	"/select <id>       select or unselect a product",
	"/clear             clear all selected products",
	"/routine           build a routine from the selected products",
	"/category [name]   filter by category (no name shows all)",
	"/search [text]     filter by keyword (no text clears it)",
	"/selected          list the selected products",
	"/help              show this list",
	"/quit              leave",
}

// Input is one parsed line: either a controller command or a terminal-only
// action.
type Input struct {
	Command assistant.Command
	Help    bool
	Quit    bool
}

// Parser turns input lines into commands. It remembers the category and
// search filters so each one can be changed on its own.
type Parser struct {
	category string
	query    string
}

func (p *Parser) Parse(line string) (Input, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return Input{Command: assistant.SubmitMessage{Text: line}}, nil
	}

	name, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "select", "toggle":
		id, err := strconv.Atoi(arg)
		if err != nil {
			return Input{}, fmt.Errorf("usage: /select <product id>")
		}
		return Input{Command: assistant.ToggleProduct{ID: id}}, nil
	case "clear":
		return Input{Command: assistant.ClearSelection{}}, nil
	case "routine":
		return Input{Command: assistant.GenerateRoutine{}}, nil
	case "category":
		p.category = arg
		return Input{Command: assistant.FilterProducts{Category: p.category, Query: p.query}}, nil
	case "search":
		p.query = arg
		return Input{Command: assistant.FilterProducts{Category: p.category, Query: p.query}}, nil
	case "selected":
		return Input{Command: assistant.ShowSelected{}}, nil
	case "help", "?":
		return Input{Help: true}, nil
	case "quit", "exit":
		return Input{Quit: true}, nil
	}
	return Input{}, fmt.Errorf("unknown command /%s (try /help)", name)
}
