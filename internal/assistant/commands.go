package assistant

import (
	"context"
	"fmt"
)

// Command is one user action handed to Dispatch.
type Command interface {
	isCommand()
}

type SubmitMessage struct{ Text string }

type GenerateRoutine struct{}

type ToggleProduct struct{ ID int }

type ClearSelection struct{}

type FilterProducts struct {
	Category string
	Query    string
}

type ShowSelected struct{}

func (SubmitMessage) isCommand() {}
func (GenerateRoutine) isCommand() {}
func (ToggleProduct) isCommand() {}
func (ClearSelection) isCommand() {}
func (FilterProducts) isCommand() {}
func (ShowSelected) isCommand() {}

// Dispatch runs cmd. Request commands return the Turn they produced; the
// rest return a nil Turn.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (*Turn, error) {
	switch cmd := cmd.(type) {
	case SubmitMessage:
		return c.SubmitUserMessage(ctx, cmd.Text)
	case GenerateRoutine:
		return c.GenerateRoutine(ctx)
	case ToggleProduct:
		return nil, c.ToggleProduct(ctx, cmd.ID)
	case ClearSelection:
		c.ClearSelection(ctx)
	case FilterProducts:
		c.FilterProducts(cmd.Category, cmd.Query)
	case ShowSelected:
		c.ShowSelected()
	default:
		return nil, fmt.Errorf("unsupported command %T", cmd)
	}
	return nil, nil
}
