package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/rs/zerolog/hlog"
	"github.com/shopspring/decimal"

	"caderneta/internal/chart"
	"caderneta/internal/ledger"
)

const (
	msgNoData         = "Nenhum dado disponível."
	msgChartMalformed = "Arquivo CSV vazio ou mal formatado."
	msgReportEmpty    = "Nenhuma movimentação encontrada."
	msgLoadFailed     = "Falha ao carregar os dados."
	msgRenderFailed   = "Falha ao gerar os gráficos."
	msgSaveFailed     = "Falha ao salvar o gráfico."
)

// Charts handles GET /graficos. Each call writes a new image to the public
// directory; old images are never removed.
func (h *Handler) Charts(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.ledger.LoadAll()
	switch {
	case errors.Is(err, ledger.ErrNoData):
		plainText(w, http.StatusOK, msgNoData)
		return
	case errors.Is(err, ledger.ErrEmpty), errors.Is(err, ledger.ErrMalformed):
		plainText(w, http.StatusOK, msgChartMalformed)
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("failed to load ledger")
		plainText(w, http.StatusInternalServerError, msgLoadFailed)
		return
	}

	summary := ledger.Summarize(sheet.Records)
	img, err := chart.Render(chart.Plan(summary))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to render charts")
		plainText(w, http.StatusInternalServerError, msgRenderFailed)
		return
	}

	name, err := h.charts.SaveUnique("graficos_", ".png", img)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to save chart")
		plainText(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}
	h.metrics.ChartsRendered.Inc()

	h.renderTemplate(w, r, "graficos.html", map[string]interface{}{
		"Image":        "/static/" + name,
		"TotalIncome":  formatBRL(summary.Income.Total),
		"TotalExpense": formatBRL(summary.Expense.Total),
		"Balance":      formatBRL(summary.Income.Total.Sub(summary.Expense.Total)),
	})
}

// Report handles GET /relatorio: every row, in file order.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.ledger.LoadAll()
	switch {
	case errors.Is(err, ledger.ErrNoData):
		plainText(w, http.StatusOK, msgNoData)
		return
	case errors.Is(err, ledger.ErrEmpty), errors.Is(err, ledger.ErrMalformed):
		plainText(w, http.StatusOK, msgReportEmpty)
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("failed to load ledger")
		plainText(w, http.StatusInternalServerError, msgLoadFailed)
		return
	}

	h.renderTemplate(w, r, "relatorio.html", map[string]interface{}{
		"Columns": sheet.Columns,
		"Rows":    sheet.Rows,
	})
}

// formatBRL renders an amount as Brazilian reais, e.g. "R$1.234,50".
// Amounts beyond int64 cents fall back to plain decimal notation.
func formatBRL(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).BigInt()
	if !cents.IsInt64() {
		return "R$" + strings.Replace(d.StringFixed(2), ".", ",", 1)
	}
	return money.New(cents.Int64(), money.BRL).Display()
}
