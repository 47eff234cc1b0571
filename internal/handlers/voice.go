package handlers

import (
	"io"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"caderneta/internal/voice"
)

const maxAudioUpload = 32 << 20

// Voice handles POST /voz_web. The answer is always a plain-text status
// message, whatever step the intake stopped at.
func (h *Handler) Voice(w http.ResponseWriter, r *http.Request) {
	var audio io.Reader
	if err := r.ParseMultipartForm(maxAudioUpload); err == nil {
		if file, _, err := r.FormFile("audio"); err == nil {
			defer file.Close()
			audio = file
		}
	}

	out := h.intake.Process(r.Context(), audio)
	h.metrics.VoiceOutcomes.WithLabelValues(out.Label()).Inc()

	logger := hlog.FromRequest(r)
	switch {
	case out.OK():
		h.metrics.EntriesRecorded.WithLabelValues("voice").Inc()
		logger.Info().
			Str("tipo", out.Entry.Type).
			Str("descricao", out.Entry.Description).
			Str("valor", out.Entry.Amount).
			Msg("voice entry recorded")
	case out.Stage == voice.StageReceive, out.Stage == voice.StageExtract:
		logger.Info().Str("stage", string(out.Stage)).Str("text", out.Text).Err(out.Err).Msg("voice entry not recognized")
	default:
		logger.Error().Str("stage", string(out.Stage)).Err(out.Err).Msg("voice intake failed")
	}

	plainText(w, http.StatusOK, out.Message())
}
