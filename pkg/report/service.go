package report

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/centavo/centavo/internal/ai"
	"github.com/centavo/centavo/pkg/stats"
	log "github.com/sirupsen/logrus"
)

const recentTransactionLimit = 15

// jsonObjectPattern grabs the first through the last brace, so a response
// wrapped in markdown fences or chatter still yields the JSON object.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

type Service interface {
	// Generate asks the AI model for a financial report over the given range.
	// A nil report means the report is unavailable, never an empty one.
	Generate(ctx context.Context, from *time.Time, to *time.Time) (*Report, error)
}

type ServiceImpl struct {
	stats stats.Service
	ai    ai.Client
}

func NewService(statsService stats.Service, aiClient ai.Client) *ServiceImpl {
	return &ServiceImpl{stats: statsService, ai: aiClient}
}

type promptTransaction struct {
	Desc     string  `json:"desc"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category,omitempty"`
	Type     string  `json:"type"`
}

type promptData struct {
	TotalIncome        float64             `json:"totalIncome"`
	TotalExpenses      float64             `json:"totalExpenses"`
	Balance            float64             `json:"balance"`
	SavingsRate        float64             `json:"savingsRate"`
	RecentTransactions []promptTransaction `json:"recentTransactions"`
}

func (s *ServiceImpl) Generate(ctx context.Context, from *time.Time, to *time.Time) (*Report, error) {
	summary := s.stats.Summary(ctx, from, to)

	data := promptData{
		TotalIncome:   summary.Income,
		TotalExpenses: summary.Expenses,
		Balance:       summary.Income - summary.Expenses,
		SavingsRate:   savingsRate(summary.Income, summary.Expenses),
	}
	recent := summary.Transactions
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}
	for _, item := range recent {
		data.RecentTransactions = append(data.RecentTransactions, promptTransaction{
			Desc:     item.Description,
			Amount:   item.Amount,
			Category: item.CategoryName,
			Type:     string(item.Type),
		})
	}

	prompt, err := buildPrompt(data)
	if err != nil {
		return nil, err
	}

	answer, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		log.Errorf("AI report generation failed: %v", err)
		return nil, fmt.Errorf("could not generate report: %w", err)
	}

	rawJSON := jsonObjectPattern.FindString(answer)
	if rawJSON == "" {
		return nil, fmt.Errorf("AI response contains no JSON object")
	}
	var report Report
	if err := json.Unmarshal([]byte(rawJSON), &report); err != nil {
		return nil, fmt.Errorf("could not parse report: %w", err)
	}
	return &report, nil
}

func buildPrompt(data promptData) (string, error) {
	serialized, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not serialize report data: %w", err)
	}

	return fmt.Sprintf(`Eres un Asesor Financiero Senior y experto en Economía Personal.
Tu objetivo es analizar los datos financieros del usuario y proporcionar un informe ejecutivo de alta calidad.

DATOS ACTUALES:
%s

ESTRUCTURA DEL REPORTE (JSON):
Retorna estrictamente un objeto JSON con este formato:
{
  "executiveSummary": "Un párrafo potente analizando la situación actual.",
  "keyInsights": ["Insight 1", "Insight 2", "Insight 3"],
  "recommendations": ["Recomendación 1", "Recomendación 2"],
  "healthScore": 0-100 (un número representando la salud financiera),
  "financialArchetype": "Un nombre creativo basado en sus hábitos"
}

REGLAS:
- El tono debe ser profesional, directo y experto.
- Los insights deben basarse en la relación ingreso/gasto y categorías detectadas.
- El idioma debe ser ESPAÑOL.
- Retorna SOLO el JSON.`, serialized), nil
}

// savingsRate is the saved share of income in percent, rounded to one
// decimal. Zero income yields zero rather than a division by zero.
func savingsRate(income, expenses float64) float64 {
	if income <= 0 {
		return 0
	}
	return math.Round((income-expenses)/income*1000) / 10
}
