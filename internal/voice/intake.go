// Package voice turns a dictated clip into a ledger entry: persist the
// upload, transcode, transcribe, extract (type, amount, description), commit.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"caderneta/internal/ledger"
	"caderneta/internal/storage"
)

// Fixed temporary names; concurrent requests overwrite each other's files.
const (
	uploadName = "entrada.webm"
	wavName    = "entrada.wav"
)

// ErrNoAudio means the request carried no audio attachment.
var ErrNoAudio = errors.New("voice: no audio received")

// Stage is the intake step an outcome stopped at.
type Stage string

const (
	StageReceive    Stage = "receive"
	StagePersist    Stage = "persist"
	StageTranscode  Stage = "transcode"
	StageTranscribe Stage = "transcribe"
	StageExtract    Stage = "extract"
	StageCommit     Stage = "commit"
	StageDone       Stage = "done"
)

// Recorder appends an entry dated today.
type Recorder interface {
	Record(kind, description, amount string) (ledger.Entry, error)
}

// Outcome is the result of one intake. Err is nil only when an entry was
// written.
type Outcome struct {
	Stage       Stage
	Text        string
	Transaction Transaction
	Entry       ledger.Entry
	Err         error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// Message is the text shown to the user. Audio handling failures share one
// generic message that carries the underlying error.
func (o Outcome) Message() string {
	switch {
	case o.Err == nil:
		return "Movimento registrado com sucesso!"
	case errors.Is(o.Err, ErrNoAudio):
		return "Nenhum áudio recebido."
	case errors.Is(o.Err, ErrTypeNotFound):
		return "Tipo não identificado."
	case errors.Is(o.Err, ErrAmountNotFound):
		return "Valor não encontrado."
	case errors.Is(o.Err, ErrDescriptionNotFound):
		return "Descrição não encontrada."
	default:
		return fmt.Sprintf("Erro ao processar o áudio: %v", o.Err)
	}
}

// Label is a short, low-cardinality name for the outcome.
func (o Outcome) Label() string {
	switch {
	case o.Err == nil:
		return "recorded"
	case errors.Is(o.Err, ErrNoAudio):
		return "no_audio"
	case errors.Is(o.Err, ErrTypeNotFound):
		return "type_not_found"
	case errors.Is(o.Err, ErrAmountNotFound):
		return "amount_not_found"
	case errors.Is(o.Err, ErrDescriptionNotFound):
		return "description_not_found"
	default:
		return string(o.Stage) + "_failed"
	}
}

type Intake struct {
	temp        *storage.LocalStorage
	transcoder  Transcoder
	transcriber Transcriber
	recorder    Recorder
	logger      zerolog.Logger
}

func NewIntake(temp *storage.LocalStorage, transcoder Transcoder, transcriber Transcriber, recorder Recorder, logger zerolog.Logger) *Intake {
	return &Intake{
		temp:        temp,
		transcoder:  transcoder,
		transcriber: transcriber,
		recorder:    recorder,
		logger:      logger,
	}
}

// Process runs every step in order and stops at the first failure; nothing
// is written to the ledger unless all extraction steps succeed. A nil audio
// reader means no attachment was sent.
func (in *Intake) Process(ctx context.Context, audio io.Reader) Outcome {
	if audio == nil {
		return Outcome{Stage: StageReceive, Err: ErrNoAudio}
	}

	src, err := in.temp.SaveAs(uploadName, audio)
	if err != nil {
		return Outcome{Stage: StagePersist, Err: err}
	}

	dst := in.temp.GetPath(wavName)
	if err := in.transcoder.Transcode(ctx, src, dst); err != nil {
		return Outcome{Stage: StageTranscode, Err: err}
	}

	text, err := in.transcriber.Transcribe(ctx, dst)
	if err != nil {
		return Outcome{Stage: StageTranscribe, Err: err}
	}
	in.logger.Info().Str("text", text).Msg("recognized speech")

	tx, err := Parse(text)
	if err != nil {
		return Outcome{Stage: StageExtract, Text: text, Err: err}
	}

	entry, err := in.recorder.Record(tx.Type, tx.Description, tx.Amount)
	if err != nil {
		return Outcome{Stage: StageCommit, Text: text, Transaction: tx, Err: err}
	}

	return Outcome{Stage: StageDone, Text: text, Transaction: tx, Entry: entry}
}
