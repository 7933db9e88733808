package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"beauty-assistant/internal/models"
)

// DefaultSystemPrompt defines the assistant's persona, allowed topics and
// output formatting.
var DefaultSystemPrompt = strings.TrimSpace(`
You are the "L'Oréal Beauty Assistant", an AI chatbot for L'Oréal.

Your job:
- Help people discover and compare L'Oréal makeup, skincare, haircare, and fragrance products.
- Suggest simple routines for their needs (for example oily skin, dry hair, frizz control, long-wear makeup, sensitive skin).
- Explain how to use L'Oréal products safely and effectively.

Rules:
- Only answer questions about beauty, skincare, haircare, makeup, fragrance, ingredients, application techniques, L'Oréal Paris, and the other brands in the L'Oréal group (Maybelline New York, Garnier, NYX Professional Makeup, CeraVe, La Roche-Posay, and so on).
- If a question is off topic (coding, homework, politics, random trivia), politely decline and invite a beauty-related question instead.
- Recommend L'Oréal group brands and products. Do not recommend competing brands.
- Keep answers friendly, concise, and easy to follow, with short paragraphs and bullet points where they help.
- Ask for missing details (skin type, sensitivity, hair type, preferred finish, fragrance intensity) when you need them for a better recommendation.
- Do not make medical diagnoses. For serious or persistent skin or scalp problems, suggest seeing a dermatologist or healthcare professional.
- Write clean, plain text rather than heavy Markdown. Avoid headings like "###" and bold markers like "**text**". Use short paragraphs, numbered steps, and simple bullets with the bullet character (•).
- You may use 1–3 relevant emojis (💧, ✨, 🌙, ☀️, 💄, 🌸) to keep the tone friendly, but do not overuse them.
`)

// Fixed user-facing texts.
const (
	GreetingText = "Bonjour! I’m your L’Oréal Beauty Assistant. 🖤\n\n" +
		"Start by selecting products to build a routine, or ask me anything about skincare, makeup, haircare, or fragrance from the L’Oréal family."

	ThinkingText        = "Thinking about the best L’Oréal recommendation for you…"
	ChatFallbackText    = "I’m having trouble reaching the AI service right now. Please try again in a moment."
	RoutineRequestText  = "Can you build a personalized routine using my selected products?"
	RoutinePendingText  = "Putting together your personalized routine…"
	RoutineFallbackText = "I tried to generate your routine but ran into an error. Please try again in a moment, or try with fewer products if you selected a very large set."
	RoutineGuidanceText = "To create a routine, please select at least one product from the list above."

	CatalogErrorText   = "Something went wrong loading products. Please restart and try again."
	CatalogLoadingText = "Products are still loading. Please try again in a moment."
	ChooseFilterText   = "Choose a category or type a keyword to explore L'Oréal group products."
	NoMatchesText      = "No products match your filters yet. Try another category or search term."
	EmptySelectionText = "No products selected yet. Select a product to add it to your routine."
)

const routineInstructions = "\n\nTask: Create a simple routine using ONLY the selected products. " +
	"Output format must be:\n" +
	"AM Routine:\n• Step 1 ...\n• Step 2 ...\n\n" +
	"PM Routine:\n• Step 1 ...\n• Step 2 ...\n\n" +
	"Then add a short section: Tips (2–4 bullets).\n" +
	"If a routine is missing something essential (like moisturizer or sunscreen), mention it as 'Optional Additions (L’Oréal group)' but do NOT recommend specific products unless the user asks."

// QuestionText is the "You asked" line shown above replies.
func QuestionText(text string) string {
	return fmt.Sprintf("You asked: “%s”", text)
}

// BuildRoutineContext renders the selected products as an indented JSON
// summary followed by the routine output instructions.
func BuildRoutineContext(products []models.Product) (string, error) {
	summary := make([]models.ProductSummary, 0, len(products))
	for _, p := range products {
		summary = append(summary, models.ProductSummary{
			Name:        p.Name,
			Brand:       p.Brand,
			Category:    p.Category,
			Description: p.Description,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return "", fmt.Errorf("failed to encode product summary: %w", err)
	}

	return "Here is the list of L'Oréal group products the user selected, as JSON:\n\n" +
		strings.TrimRight(buf.String(), "\n") +
		routineInstructions, nil
}

// RoutineMessages is the ephemeral request for a routine: the system
// instruction and one user message carrying the product context.
func RoutineMessages(systemPrompt, context string) []models.ChatMessage {
	return []models.ChatMessage{
		{Role: models.RoleSystem, Content: systemPrompt},
		{Role: models.RoleUser, Content: context},
	}
}
