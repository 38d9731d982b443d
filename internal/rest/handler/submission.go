package handler

import (
	"net/http"
	"strconv"

	"github.com/pracor/pracor/internal/rest/convert"
	"github.com/pracor/pracor/internal/rest/middleware/identity"
	restTypes "github.com/pracor/pracor/internal/rest/types"
	"github.com/pracor/pracor/internal/submission"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// SubmissionHandler handles review, salary and interview submissions.
type SubmissionHandler struct {
	submitter *submission.Submitter
	logger    *zap.Logger
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(submitter *submission.Submitter, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submitter: submitter,
		logger:    logger.Named("submission_handler"),
	}
}

// PositionForm tells the client whether the position sub-form must be sent
// with a submission of this kind.
func (h *SubmissionHandler) PositionForm(w http.ResponseWriter, req bunrouter.Request) error {
	companyID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, h.logger, err)
	}

	kind, err := pathKind(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	needed, err := h.submitter.NeedsPositionForm(req.Context(), kind, currentUser(req).ID, companyID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, restTypes.PositionFormResponse{NeedsPositionForm: needed})
}

// Submit stores a submission. A rejected submission answers 422 with the
// errors of every form and a resent one answers 303 to the company page.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, req bunrouter.Request) error {
	companyID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, h.logger, err)
	}

	kind, err := pathKind(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	var body restTypes.SubmissionBody
	if err := decode(req, &body); err != nil {
		return writeError(w, h.logger, err)
	}

	ctx := req.Context()
	request := convert.SubmissionRequest(&body, kind, companyID, currentUser(req).ID, identity.TokenFromContext(ctx))

	result, err := h.submitter.Submit(ctx, request)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	switch result.State {
	case submission.StateRejected:
		return writeError(w, h.logger, result.Errors)
	case submission.StateDuplicate:
		w.Header().Set("Location", "/v1/companies/"+strconv.FormatInt(companyID, 10))
		return writeJSON(w, http.StatusSeeOther, convert.SubmissionResult(result))
	default:
		return writeJSON(w, http.StatusCreated, convert.SubmissionResult(result))
	}
}
