package categorizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/centavo/centavo/internal/ai"
	"github.com/centavo/centavo/pkg/category"
	"github.com/centavo/centavo/pkg/transaction"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// HistoryFinder looks up past transactions so repeated descriptions keep
// landing in the category the user last picked for them.
type HistoryFinder interface {
	FindLatestByDescription(ctx context.Context, description string, txType category.Type) (*transaction.Transaction, error)
}

// Categorizer picks a category for a transaction description. It prefers the
// category of the most recent transaction with the same description, and only
// asks the AI model when there is no history to learn from.
type Categorizer struct {
	history HistoryFinder
	ai      ai.Client
}

func New(history HistoryFinder, aiClient ai.Client) *Categorizer {
	return &Categorizer{history: history, ai: aiClient}
}

func (c *Categorizer) Resolve(ctx context.Context, description string, txType category.Type, candidates []category.Category) (uuid.UUID, error) {
	if len(candidates) == 0 {
		return uuid.Nil, fmt.Errorf("%w for type %q", category.ErrNoCategories, txType)
	}

	previous, err := c.history.FindLatestByDescription(ctx, description, txType)
	if err != nil {
		log.Warnf("History lookup failed for %q, falling back to AI: %v", description, err)
	} else if previous != nil && previous.CategoryID != uuid.Nil {
		return previous.CategoryID, nil
	}

	answer, err := c.ai.Complete(ctx, buildPrompt(description, txType, candidates))
	if err != nil {
		log.Warnf("AI categorization failed for %q: %v", description, err)
		return fallback(candidates), nil
	}

	answer = cleanAnswer(answer)
	for _, candidate := range candidates {
		name := strings.ToLower(candidate.Name)
		got := strings.ToLower(answer)
		if strings.Contains(name, got) || strings.Contains(got, name) {
			return candidate.ID, nil
		}
	}

	return fallback(candidates), nil
}

func buildPrompt(description string, txType category.Type, candidates []category.Category) string {
	kind := "gasto"
	if txType == category.TypeIncome {
		kind = "ingreso"
	}

	names := make([]string, len(candidates))
	for i, candidate := range candidates {
		names[i] = candidate.Name
	}

	return fmt.Sprintf(`De acuerdo a la siguiente descripción de un %s: "%s".
Por favor elige la categoría más adecuada de esta lista: [%s].
Responde únicamente con el nombre de la categoría, sin puntuación y nada más.`,
		kind, description, strings.Join(names, ", "))
}

var answerCleaner = strings.NewReplacer("'", "", `"`, "", ".", "", ",", "")

func cleanAnswer(answer string) string {
	return answerCleaner.Replace(strings.TrimSpace(answer))
}

// fallback prefers a catch-all "Otros" category and otherwise settles for the
// first candidate.
func fallback(candidates []category.Category) uuid.UUID {
	for _, candidate := range candidates {
		if strings.Contains(candidate.Name, "Otros") {
			return candidate.ID
		}
	}
	return candidates[0].ID
}
