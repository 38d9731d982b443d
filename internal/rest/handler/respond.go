package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/pracor/pracor/internal/rest/convert"
	"github.com/pracor/pracor/internal/rest/middleware/identity"
	restTypes "github.com/pracor/pracor/internal/rest/types"
	"github.com/pracor/pracor/internal/session"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Paging defaults for list endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var errInvalidBody = errors.New("invalid request body")

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

// decode reads a JSON request body into dst.
func decode(req bunrouter.Request, dst any) error {
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(dst); err != nil {
		return errInvalidBody
	}
	return nil
}

// writeError maps a service error to its response. Unexpected errors are
// logged and answered with 500.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) error {
	var (
		validation *types.ValidationError
		conflict   *types.ConflictError
	)

	switch {
	case errors.As(err, &validation):
		return writeJSON(w, http.StatusUnprocessableEntity, restTypes.ErrorResponse{
			Error: "validation failed",
			Forms: formErrors(validation),
		})
	case errors.As(err, &conflict):
		return writeJSON(w, http.StatusConflict, restTypes.ErrorResponse{
			Error:    types.ErrCompanyExists.Error(),
			Existing: convert.Companies(conflict.Existing),
		})
	case errors.Is(err, errInvalidBody):
		return writeJSON(w, http.StatusBadRequest, restTypes.ErrorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrCompanyNotFound),
		errors.Is(err, types.ErrPositionNotFound),
		errors.Is(err, types.ErrRecordNotFound),
		errors.Is(err, types.ErrUserNotFound),
		errors.Is(err, types.ErrUnknownItemKind),
		errors.Is(err, session.ErrWorkflowNotFound):
		return writeJSON(w, http.StatusNotFound, restTypes.ErrorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrNotContributor), errors.Is(err, types.ErrNotStaff):
		return writeJSON(w, http.StatusForbidden, restTypes.ErrorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrCompanyExists), errors.Is(err, session.ErrWorkflowFinished):
		return writeJSON(w, http.StatusConflict, restTypes.ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed", zap.Error(err))
		return writeJSON(w, http.StatusInternalServerError, restTypes.ErrorResponse{Error: "internal server error"})
	}
}

func formErrors(validation *types.ValidationError) map[string]map[string]string {
	forms := make(map[string]map[string]string, len(validation.Forms))
	for form, fields := range validation.Forms {
		forms[form] = fields
	}
	return forms
}

// pathID parses an int64 route parameter.
func pathID(req bunrouter.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(req.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, types.ErrRecordNotFound
	}
	return id, nil
}

// pathKind parses the item kind route parameter.
func pathKind(req bunrouter.Request) (enum.ItemKind, error) {
	kind, err := enum.ItemKindString(req.Param("kind"))
	if err != nil {
		return 0, types.ErrUnknownItemKind
	}
	return kind, nil
}

// page reads limit and offset query parameters.
func page(req bunrouter.Request) (int, int) {
	query := req.URL.Query()

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit <= 0 {
		limit = DefaultPageSize
	}
	limit = min(limit, MaxPageSize)

	offset, err := strconv.Atoi(query.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}

// currentUser returns the user stored by the identity middleware.
func currentUser(req bunrouter.Request) *types.User {
	return identity.FromContext(req.Context())
}
