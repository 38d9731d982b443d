package handler

import (
	"net/http"

	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/linking"
	"github.com/pracor/pracor/internal/rest/convert"
	restTypes "github.com/pracor/pracor/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// PositionHandler handles positions and the company link workflow.
type PositionHandler struct {
	db     database.Client
	linker *linking.Linker
	logger *zap.Logger
}

// NewPositionHandler creates a new position handler.
func NewPositionHandler(db database.Client, linker *linking.Linker, logger *zap.Logger) *PositionHandler {
	return &PositionHandler{
		db:     db,
		linker: linker,
		logger: logger.Named("position_handler"),
	}
}

// ListUnlinked returns the positions of the user that still have no company.
func (h *PositionHandler) ListUnlinked(w http.ResponseWriter, req bunrouter.Request) error {
	positions, err := h.db.Service().Position().ListUnlinked(req.Context(), currentUser(req).ID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.Positions(positions))
}

// DeletePosition removes a position of the user.
func (h *PositionHandler) DeletePosition(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return writeError(w, h.logger, err)
	}

	if err := h.db.Service().Position().Delete(req.Context(), currentUser(req).ID, id); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Reconcile matches a free-text company name with existing companies.
func (h *PositionHandler) Reconcile(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.ReconcileBody
	if err := decode(req, &body); err != nil {
		return writeError(w, h.logger, err)
	}

	result, err := h.db.Service().Position().Reconcile(req.Context(), currentUser(req).ID, body.Name)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.Reconciliation(result))
}

// Import stores an external profile and starts a link workflow.
func (h *PositionHandler) Import(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.ImportBody
	if err := decode(req, &body); err != nil {
		return writeError(w, h.logger, err)
	}

	step, err := h.linker.Import(req.Context(), currentUser(req).ID, convert.ImportedPositions(body.Positions))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return writeJSON(w, http.StatusCreated, convert.LinkStep(step))
}

// CurrentStep returns the pending step of a link workflow.
func (h *PositionHandler) CurrentStep(w http.ResponseWriter, req bunrouter.Request) error {
	step, err := h.linker.Current(req.Context(), currentUser(req).ID, req.Param("token"))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.LinkStep(step))
}

// Link attaches the current position of a workflow to the chosen company.
func (h *PositionHandler) Link(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.LinkBody
	if err := decode(req, &body); err != nil {
		return writeError(w, h.logger, err)
	}

	step, err := h.linker.Choose(req.Context(), currentUser(req).ID, req.Param("token"), body.CompanyID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.LinkStep(step))
}

// Skip leaves the current position of a workflow unlinked.
func (h *PositionHandler) Skip(w http.ResponseWriter, req bunrouter.Request) error {
	step, err := h.linker.Skip(req.Context(), currentUser(req).ID, req.Param("token"))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.LinkStep(step))
}
