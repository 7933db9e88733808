package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"beauty-assistant/internal/assistant"
	"beauty-assistant/internal/models"
)

var (
	rose    = lipgloss.Color("#E11D48")
	gold    = lipgloss.Color("#D4A017")
	cyan    = lipgloss.Color("#22D3EE")
	emerald = lipgloss.Color("#10B981")
	gray    = lipgloss.Color("#9CA3AF")
)

// Display renders the session to a writer. Replies arrive from request
// goroutines, so every write holds mu.
type Display struct {
	mu  sync.Mutex
	out io.Writer

	banner    lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	dim       lipgloss.Style
	heading   lipgloss.Style
	check     lipgloss.Style
	errStyle  lipgloss.Style
}

func NewDisplay(out io.Writer) *Display {
	r := lipgloss.NewRenderer(out)
	return &Display{
		out:       out,
		banner:    r.NewStyle().Foreground(gold).Bold(true),
		user:      r.NewStyle().Foreground(cyan).Bold(true),
		assistant: r.NewStyle().Foreground(rose).Bold(true),
		dim:       r.NewStyle().Foreground(gray).Italic(true),
		heading:   r.NewStyle().Foreground(gold).Underline(true),
		check:     r.NewStyle().Foreground(emerald).Bold(true),
		errStyle:  r.NewStyle().Foreground(rose),
	}
}

func (d *Display) printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, format, args...)
}

func (d *Display) Welcome(categories []string) {
	d.printf("%s\n", d.banner.Render("L’Oréal Beauty Assistant"))
	if len(categories) > 0 {
		d.printf("%s\n", d.dim.Render("Categories: "+strings.Join(categories, ", ")))
	}
	d.printf("%s\n\n", d.dim.Render("Type a question, or /help for commands."))
}

func (d *Display) Help() {
	d.printf("%s\n", d.heading.Render("Commands"))
	for _, line := range helpLines {
		d.printf("  %s\n", line)
	}
	d.printf("\n")
}

func (d *Display) Error(err error) {
	d.printf("%s\n", d.errStyle.Render("✗ "+err.Error()))
}

func (d *Display) Goodbye() {
	d.printf("\n%s\n", d.banner.Render("À bientôt!"))
}

// Message prints one transcript entry under its speaker label.
func (d *Display) Message(role, text string) {
	label := d.assistant.Render("Assistant")
	if role == models.RoleUser {
		label = d.user.Render("You")
	}
	d.printf("%s\n%s\n\n", label, text)
}

func (d *Display) Question(text string) {
	d.printf("%s\n", d.dim.Render(text))
}

// Pending prints the waiting text. The terminal cannot rewrite a line that
// may have scrolled away, so settling prints the reply beneath it.
func (d *Display) Pending(text string) assistant.Placeholder {
	d.printf("%s\n", d.dim.Render(text))
	return &pendingReply{display: d}
}

func (d *Display) ProductGrid(products []models.Product, selected func(id int) bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintf(d.out, "%s\n", d.heading.Render("Products"))
	for _, p := range products {
		mark := "[ ]"
		if selected(p.ID) {
			mark = d.check.Render("[✓]")
		}
		fmt.Fprintf(d.out, "%s %3d  %s · %s %s\n", mark, p.ID, p.Name, p.Brand, d.dim.Render("("+p.Category+")"))
	}
	fmt.Fprintln(d.out)
}

func (d *Display) GridNotice(text string) {
	d.printf("%s\n\n", d.dim.Render(text))
}

func (d *Display) SelectedProducts(products []models.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintf(d.out, "%s\n", d.heading.Render("Selected products"))
	for _, p := range products {
		fmt.Fprintf(d.out, "  %s %s %s\n", d.check.Render("•"), p.Name, d.dim.Render(p.Brand))
	}
	fmt.Fprintln(d.out)
}

func (d *Display) SelectedNotice(text string) {
	d.printf("%s\n\n", d.dim.Render(text))
}

type pendingReply struct {
	display *Display
	once    sync.Once
}

func (p *pendingReply) Settle(text string) {
	p.once.Do(func() {
		p.display.Message(models.RoleAssistant, text)
	})
}
