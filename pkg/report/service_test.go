package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/centavo/centavo/pkg/category"
	"github.com/centavo/centavo/pkg/stats"
	"github.com/centavo/centavo/pkg/transaction"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStats struct {
	summary stats.Summary
}

func (s *stubStats) Summary(_ context.Context, _ *time.Time, _ *time.Time) stats.Summary {
	return s.summary
}

func (s *stubStats) MonthlyStats(_ context.Context, _ stats.Mode, _ int) []stats.CycleStats {
	return nil
}

func (s *stubStats) CategoryBreakdown(_ context.Context, _ *time.Time, _ *time.Time) []stats.CategoryAmount {
	return nil
}

func (s *stubStats) Drilldown(_ context.Context, _ string, _ *time.Time, _ *time.Time) []stats.CategoryAmount {
	return nil
}

func (s *stubStats) BudgetStatus(_ context.Context, _ *time.Time, _ *time.Time) []stats.BudgetStatus {
	return nil
}

type stubAI struct {
	answer string
	err    error
	prompt string
}

func (s *stubAI) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.answer, s.err
}

const validReportJSON = `{
	"executiveSummary": "Finanzas estables con margen de ahorro.",
	"keyInsights": ["Ahorras una cuarta parte de tus ingresos"],
	"recommendations": ["Define un presupuesto para Comida"],
	"healthScore": 78,
	"financialArchetype": "El Estratega"
}`

func TestGenerateParsesReport(t *testing.T) {
	// given
	aiClient := &stubAI{answer: validReportJSON}
	service := NewService(&stubStats{summary: stats.Summary{Income: 1000, Expenses: 750}}, aiClient)

	// when
	generated, err := service.Generate(context.Background(), nil, nil)

	// then
	require.NoError(t, err)
	require.NotNil(t, generated)
	assert.Equal(t, "Finanzas estables con margen de ahorro.", generated.ExecutiveSummary)
	assert.Equal(t, 78.0, generated.HealthScore)
	assert.Equal(t, "El Estratega", generated.FinancialArchetype)
	assert.Len(t, generated.KeyInsights, 1)
}

func TestGenerateExtractsJSONFromWrappedResponse(t *testing.T) {
	// given
	aiClient := &stubAI{answer: "Claro, aquí tienes el reporte:\n```json\n" + validReportJSON + "\n```\n¡Saludos!"}
	service := NewService(&stubStats{}, aiClient)

	// when
	generated, err := service.Generate(context.Background(), nil, nil)

	// then
	require.NoError(t, err)
	require.NotNil(t, generated)
	assert.Equal(t, "El Estratega", generated.FinancialArchetype)
}

func TestGeneratePromptCarriesSavingsRateAndRecentTransactions(t *testing.T) {
	// given
	transactions := make([]transaction.Transaction, 0, 20)
	for i := 0; i < 20; i++ {
		transactions = append(transactions, transaction.Transaction{
			ID:           uuid.New(),
			Amount:       100,
			Description:  "SUPER",
			Type:         category.TypeExpense,
			CategoryName: "Comida",
		})
	}
	aiClient := &stubAI{answer: validReportJSON}
	service := NewService(&stubStats{summary: stats.Summary{Income: 3000, Expenses: 2000, Transactions: transactions}}, aiClient)

	// when
	_, err := service.Generate(context.Background(), nil, nil)

	// then
	require.NoError(t, err)
	assert.Contains(t, aiClient.prompt, `"savingsRate": 33.3`)
	assert.Contains(t, aiClient.prompt, `"totalIncome": 3000`)
	assert.Contains(t, aiClient.prompt, `"balance": 1000`)
	assert.Equal(t, 15, strings.Count(aiClient.prompt, `"desc": "SUPER"`), "only the 15 most recent transactions travel")
}

func TestGenerateZeroIncomeYieldsZeroSavingsRate(t *testing.T) {
	// given
	aiClient := &stubAI{answer: validReportJSON}
	service := NewService(&stubStats{summary: stats.Summary{Expenses: 500}}, aiClient)

	// when
	_, err := service.Generate(context.Background(), nil, nil)

	// then
	require.NoError(t, err)
	assert.Contains(t, aiClient.prompt, `"savingsRate": 0`)
}

func TestGenerateFailsWhenAIIsDown(t *testing.T) {
	// given
	service := NewService(&stubStats{}, &stubAI{err: errors.New("quota exceeded")})

	// when
	generated, err := service.Generate(context.Background(), nil, nil)

	// then
	require.Error(t, err)
	assert.Nil(t, generated)
}

func TestGenerateFailsOnResponseWithoutJSON(t *testing.T) {
	// given
	service := NewService(&stubStats{}, &stubAI{answer: "No puedo generar el reporte."})

	// when
	generated, err := service.Generate(context.Background(), nil, nil)

	// then
	require.Error(t, err)
	assert.Nil(t, generated)
}

func TestGenerateFailsOnMalformedJSON(t *testing.T) {
	// given
	service := NewService(&stubStats{}, &stubAI{answer: `{"healthScore": "muy alta"}`})

	// when
	generated, err := service.Generate(context.Background(), nil, nil)

	// then
	require.Error(t, err)
	assert.Nil(t, generated)
}
