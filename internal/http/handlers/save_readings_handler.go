package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"cdvtrack/internal/http/middleware"
	"cdvtrack/internal/service"
)

// ReadingsSaver reconciles submitted reading batches.
type ReadingsSaver interface {
	SaveBatch(ctx context.Context, batch service.Batch) error
}

// SubmitGuard rejects rapid duplicate submissions per caller.
type SubmitGuard interface {
	AllowSubmission(ctx context.Context, key string) (bool, error)
}

// NewSaveReadingsHandler handles POST /salvar_dados_cdv/.
func NewSaveReadingsHandler(readings ReadingsSaver, guard SubmitGuard, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		allowed, err := guard.AllowSubmission(r.Context(), identity.GuardKey())
		if err != nil {
			logger.Error("submission guard", zap.Error(err))
			writeStatus(w, http.StatusInternalServerError, false, "Ocorreu um erro inesperado no servidor.")
			return
		}
		if !allowed {
			writeStatus(w, http.StatusTooManyRequests, false, "Requisição ignorada (duplicada).")
			return
		}

		var batch service.Batch
		if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
			writeStatus(w, http.StatusBadRequest, false, "Dados JSON inválidos.")
			return
		}

		if err := readings.SaveBatch(r.Context(), batch); err != nil {
			var notFound *service.StationNotFoundError
			switch {
			case errors.Is(err, service.ErrStationNameMissing):
				writeStatus(w, http.StatusBadRequest, false, "Nome da estação não fornecido.")
			case errors.As(err, &notFound):
				writeStatus(w, http.StatusNotFound, false, fmt.Sprintf("Estação %q não encontrada.", notFound.Name))
			default:
				logger.Error("save readings batch", zap.Error(err), zap.Stack("stack"))
				writeStatus(w, http.StatusInternalServerError, false,
					fmt.Sprintf("Ocorreu um erro inesperado no servidor: %s", err))
			}
			return
		}

		writeStatus(w, http.StatusOK, true, "Dados salvos com sucesso!")
	}
}
