package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"beauty-assistant/internal/models"
	"beauty-assistant/internal/services"
)

var ErrUnknownProduct = errors.New("no product with that id in the catalog")

// Renderer draws the session. Pending returns a Placeholder owned by one
// request; settling it replaces the pending text in place.
type Renderer interface {
	Message(role, text string)
	Pending(text string) Placeholder
	Question(text string)
	ProductGrid(products []models.Product, selected func(id int) bool)
	GridNotice(text string)
	SelectedProducts(products []models.Product)
	SelectedNotice(text string)
}

type Placeholder interface {
	Settle(text string)
}

type TurnState int

const (
	TurnIdle TurnState = iota
	TurnAwaitingReply
	TurnResolved
	TurnFailed
)

func (s TurnState) String() string {
	switch s {
	case TurnIdle:
		return "idle"
	case TurnAwaitingReply:
		return "awaiting-reply"
	case TurnResolved:
		return "resolved"
	case TurnFailed:
		return "failed"
	}
	return fmt.Sprintf("TurnState(%d)", int(s))
}

// Turn is the record of one request/reply cycle.
type Turn struct {
	ID    uuid.UUID
	Kind  ActionKind
	State TurnState
	Reply string // raw reply as stored in history
	Err   error
}

type Options struct {
	SystemPrompt string
	// HistoryLimit caps the messages sent for a chat turn; 0 sends everything.
	HistoryLimit int
	// CatalogErr is the error from loading the catalog, if any.
	CatalogErr error
	Logger     *zap.Logger
}

// Controller owns one session's conversation and selection and maps user
// actions onto them.
type Controller struct {
	conv      *Conversation
	selection *SelectionSet
	products  []models.Product
	client    Completer
	view      Renderer
	slots     *Slots
	logger    *zap.Logger

	historyLimit int
	catalogErr   error

	mu       sync.Mutex
	category string
	query    string
}

func NewController(client Completer, selection *SelectionSet, products []models.Product, view Renderer, opts Options) *Controller {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = DefaultSystemPrompt
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		conv:         NewConversation(opts.SystemPrompt),
		selection:    selection,
		products:     products,
		client:       client,
		view:         view,
		slots:        NewSlots(),
		logger:       opts.Logger,
		historyLimit: opts.HistoryLimit,
		catalogErr:   opts.CatalogErr,
	}
}

func (c *Controller) Conversation() *Conversation { return c.conv }

func (c *Controller) Selection() *SelectionSet { return c.selection }

func (c *Controller) Products() []models.Product { return c.products }

// Start restores the stored selection, draws the catalog panels and greets
// the user.
func (c *Controller) Start(ctx context.Context) {
	if err := c.selection.Restore(ctx); err != nil {
		c.logger.Error("error reading stored selections", zap.Error(err))
	}
	c.renderGrid()
	c.renderSelected()
	c.Greet()
}

// Greet shows the greeting and records it as the assistant's first turn.
func (c *Controller) Greet() {
	c.view.Message(models.RoleAssistant, GreetingText)
	if err := c.conv.Append(models.ChatMessage{Role: models.RoleAssistant, Content: GreetingText}); err != nil {
		c.logger.Error("error recording greeting", zap.Error(err))
	}
}

// SubmitUserMessage runs one chat turn. Blank input is ignored and yields a
// nil Turn. A failed turn leaves only the user message in history.
func (c *Controller) SubmitUserMessage(ctx context.Context, text string) (*Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	id, err := c.slots.Acquire(ActionChat)
	if err != nil {
		return nil, err
	}
	defer c.slots.Release(ActionChat, id)

	turn := &Turn{ID: id, Kind: ActionChat, State: TurnIdle}

	if err := c.conv.Append(models.ChatMessage{Role: models.RoleUser, Content: text}); err != nil {
		return nil, err
	}
	c.view.Message(models.RoleUser, text)
	c.view.Question(QuestionText(text))

	placeholder := c.view.Pending(ThinkingText)
	turn.State = TurnAwaitingReply

	reply, err := c.client.Complete(ctx, c.conv.Window(c.historyLimit))
	if err != nil {
		placeholder.Settle(ChatFallbackText)
		c.logger.Error("chat error", zap.Error(err), zap.String("turn_id", id.String()))
		turn.State, turn.Err = TurnFailed, err
		return turn, nil
	}

	if err := c.conv.Append(models.ChatMessage{Role: models.RoleAssistant, Content: reply}); err != nil {
		placeholder.Settle(ChatFallbackText)
		c.logger.Error("error recording reply", zap.Error(err), zap.String("turn_id", id.String()))
		turn.State, turn.Err = TurnFailed, err
		return turn, nil
	}
	placeholder.Settle(FormatReply(reply))
	turn.State, turn.Reply = TurnResolved, reply
	return turn, nil
}

// GenerateRoutine asks for a routine built from the selected products. Only
// the routine context goes upstream; on success the context and the reply
// join the main conversation. With nothing selected it shows guidance and
// makes no request.
func (c *Controller) GenerateRoutine(ctx context.Context) (*Turn, error) {
	selected := c.selectedProducts()
	if len(selected) == 0 {
		c.view.Message(models.RoleAssistant, RoutineGuidanceText)
		return nil, nil
	}

	id, err := c.slots.Acquire(ActionRoutine)
	if err != nil {
		return nil, err
	}
	defer c.slots.Release(ActionRoutine, id)

	turn := &Turn{ID: id, Kind: ActionRoutine, State: TurnIdle}

	c.view.Message(models.RoleUser, RoutineRequestText)
	placeholder := c.view.Pending(RoutinePendingText)

	routineContext, err := BuildRoutineContext(selected)
	if err != nil {
		placeholder.Settle(RoutineFallbackText)
		c.logger.Error("routine generation error", zap.Error(err), zap.String("turn_id", id.String()))
		turn.State, turn.Err = TurnFailed, err
		return turn, nil
	}

	turn.State = TurnAwaitingReply
	reply, err := c.client.Complete(ctx, RoutineMessages(c.conv.System().Content, routineContext))
	if err != nil {
		placeholder.Settle(RoutineFallbackText)
		c.logger.Error("routine generation error", zap.Error(err), zap.String("turn_id", id.String()))
		turn.State, turn.Err = TurnFailed, err
		return turn, nil
	}

	err = c.conv.Append(
		models.ChatMessage{Role: models.RoleUser, Content: routineContext},
		models.ChatMessage{Role: models.RoleAssistant, Content: reply},
	)
	if err != nil {
		placeholder.Settle(RoutineFallbackText)
		c.logger.Error("error recording routine", zap.Error(err), zap.String("turn_id", id.String()))
		turn.State, turn.Err = TurnFailed, err
		return turn, nil
	}
	placeholder.Settle(FormatReply(reply))
	turn.State, turn.Reply = TurnResolved, reply
	return turn, nil
}

// ToggleProduct selects or deselects a catalog product and redraws.
func (c *Controller) ToggleProduct(ctx context.Context, id int) error {
	if _, ok := c.product(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownProduct, id)
	}
	if _, err := c.selection.Toggle(ctx, id); err != nil {
		c.logger.Error("error saving selections", zap.Error(err))
	}
	c.renderGrid()
	c.renderSelected()
	return nil
}

// ClearSelection empties the selection; with nothing selected it does nothing.
func (c *Controller) ClearSelection(ctx context.Context) {
	changed, err := c.selection.Clear(ctx)
	if err != nil {
		c.logger.Error("error saving selections", zap.Error(err))
	}
	if !changed {
		return
	}
	c.renderGrid()
	c.renderSelected()
}

// FilterProducts sets the catalog filters and redraws the grid.
func (c *Controller) FilterProducts(category, query string) {
	c.mu.Lock()
	c.category, c.query = category, query
	c.mu.Unlock()
	c.renderGrid()
}

func (c *Controller) ShowSelected() {
	c.renderSelected()
}

func (c *Controller) renderGrid() {
	c.mu.Lock()
	category, query := c.category, strings.TrimSpace(c.query)
	c.mu.Unlock()

	switch {
	case c.catalogErr != nil:
		c.view.GridNotice(CatalogErrorText)
		return
	case len(c.products) == 0:
		c.view.GridNotice(CatalogLoadingText)
		return
	case category == "" && query == "":
		c.view.GridNotice(ChooseFilterText)
		return
	}

	filtered := services.FilterProducts(c.products, category, query)
	if len(filtered) == 0 {
		c.view.GridNotice(NoMatchesText)
		return
	}
	c.view.ProductGrid(filtered, c.selection.Has)
}

func (c *Controller) renderSelected() {
	selected := c.selectedProducts()
	if len(selected) == 0 {
		c.view.SelectedNotice(EmptySelectionText)
		return
	}
	c.view.SelectedProducts(selected)
}

// selectedProducts returns selected catalog products in catalog order. IDs
// no longer in the catalog are skipped.
func (c *Controller) selectedProducts() []models.Product {
	var out []models.Product
	for _, p := range c.products {
		if c.selection.Has(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Controller) product(id int) (models.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
