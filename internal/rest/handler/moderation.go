package handler

import (
	"net/http"

	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	restTypes "github.com/pracor/pracor/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ModerationHandler handles staff decisions about submitted records.
type ModerationHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewModerationHandler creates a new moderation handler.
func NewModerationHandler(db database.Client, logger *zap.Logger) *ModerationHandler {
	return &ModerationHandler{
		db:     db,
		logger: logger.Named("moderation_handler"),
	}
}

// Moderate approves or rejects a review, salary or interview.
func (h *ModerationHandler) Moderate(w http.ResponseWriter, req bunrouter.Request) error {
	kind, err := pathKind(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	id, err := pathID(req, "id")
	if err != nil {
		return writeError(w, h.logger, err)
	}

	var body restTypes.ModerationBody
	if err := decode(req, &body); err != nil {
		return writeError(w, h.logger, err)
	}

	status, err := enum.ApprovalStatusString(body.Status)
	if err != nil {
		validation := types.NewValidationError()
		validation.Add(types.FormPrimary, types.FieldErrors{"status": "must be approved or rejected"})
		return writeError(w, h.logger, validation)
	}

	if err := h.db.Service().Item().Moderate(req.Context(), currentUser(req).ID, kind, id, status); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
