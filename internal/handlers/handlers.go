package handlers

import (
	"html/template"
	"io"
	"net/http"
	"path/filepath"

	"github.com/rs/zerolog/hlog"

	"caderneta/internal/ledger"
	"caderneta/internal/metrics"
	"caderneta/internal/quote"
	"caderneta/internal/storage"
	"caderneta/internal/voice"
)

type Handler struct {
	ledger      *ledger.Store
	recorder    *ledger.Recorder
	quotes      *quote.Provider
	charts      *storage.LocalStorage
	intake      *voice.Intake
	metrics     *metrics.Registry
	templateDir string
}

func New(
	store *ledger.Store,
	recorder *ledger.Recorder,
	quotes *quote.Provider,
	charts *storage.LocalStorage,
	intake *voice.Intake,
	m *metrics.Registry,
	templateDir string,
) *Handler {
	return &Handler{
		ledger:      store,
		recorder:    recorder,
		quotes:      quotes,
		charts:      charts,
		intake:      intake,
		metrics:     m,
		templateDir: templateDir,
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, page string, data interface{}) {
	tmpl, err := template.ParseFiles(
		filepath.Join(h.templateDir, "layout.html"),
		filepath.Join(h.templateDir, page),
	)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("page", page).Msg("template parse failed")
		plainText(w, http.StatusInternalServerError, "Erro ao montar a página.")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("page", page).Msg("template execute failed")
	}
}

// plainText answers with a bare message, the way every non-page route
// reports status to the browser.
func plainText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, msg)
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "index.html", map[string]interface{}{
		"Quote":       h.quotes.Today(),
		"TypeIncome":  ledger.TypeIncome,
		"TypeExpense": ledger.TypeExpense,
	})
}

var registerFields = []string{"tipo", "descricao", "valor"}

// Register handles POST /registrar. Fields are stored exactly as sent, but
// all three must be present.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		plainText(w, http.StatusBadRequest, "Formulário inválido.")
		return
	}
	for _, field := range registerFields {
		if _, ok := r.PostForm[field]; !ok {
			plainText(w, http.StatusBadRequest, "Campo ausente: "+field)
			return
		}
	}

	entry, err := h.recorder.Record(
		r.PostFormValue("tipo"),
		r.PostFormValue("descricao"),
		r.PostFormValue("valor"),
	)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to record entry")
		plainText(w, http.StatusInternalServerError, "Falha ao registrar movimento.")
		return
	}

	h.metrics.EntriesRecorded.WithLabelValues("form").Inc()
	hlog.FromRequest(r).Debug().
		Str("tipo", entry.Type).
		Str("descricao", entry.Description).
		Str("valor", entry.Amount).
		Msg("entry recorded")

	http.Redirect(w, r, "/", http.StatusFound)
}
