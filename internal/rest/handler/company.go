package handler

import (
	"net/http"
	"strings"

	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/rest/convert"
	restTypes "github.com/pracor/pracor/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// CompanyHandler handles company endpoints.
type CompanyHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(db database.Client, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		db:     db,
		logger: logger.Named("company_handler"),
	}
}

// ListCompanies returns a page of companies ordered by name, or the matches of
// the q parameter when it is present.
func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, req bunrouter.Request) error {
	limit, offset := page(req)

	if term := req.URL.Query().Get("q"); strings.TrimSpace(term) != "" {
		companies, err := h.db.Service().Company().Search(req.Context(), term, limit)
		if err != nil {
			return writeError(w, h.logger, err)
		}
		return bunrouter.JSON(w, convert.Companies(companies))
	}

	companies, err := h.db.Service().Company().List(req.Context(), limit, offset)
	if err != nil {
		return writeError(w, h.logger, err)
	}
	return bunrouter.JSON(w, convert.Companies(companies))
}

// GetCompany returns the company page.
func (h *CompanyHandler) GetCompany(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return writeError(w, h.logger, err)
	}

	detail, err := h.db.Service().Company().Detail(req.Context(), id)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.CompanyDetail(detail))
}

// CreateCompany creates a company and links the positions waiting for its name.
func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.CompanyRequestBody
	if err := decode(req, &body); err != nil {
		return writeError(w, h.logger, err)
	}

	company, linked, err := h.db.Service().Company().Create(req.Context(), convert.CompanyInput(&body))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return writeJSON(w, http.StatusCreated, restTypes.CreateCompanyResponse{
		Company:         convert.Company(company),
		LinkedPositions: linked,
	})
}

// UpdateCompany changes the name, city or website of a company.
func (h *CompanyHandler) UpdateCompany(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return writeError(w, h.logger, err)
	}

	var body restTypes.CompanyRequestBody
	if err := decode(req, &body); err != nil {
		return writeError(w, h.logger, err)
	}

	company, err := h.db.Service().Company().Update(req.Context(), id, convert.CompanyInput(&body))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.Company(company))
}

// DeleteCompany removes a company with every record about it.
func (h *CompanyHandler) DeleteCompany(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return writeError(w, h.logger, err)
	}

	if err := h.db.Service().Company().Delete(req.Context(), id); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ListItems returns a page of one kind of record about a company. Only
// contributors may browse records.
func (h *CompanyHandler) ListItems(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return writeError(w, h.logger, err)
	}

	kind, err := pathKind(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	limit, offset := page(req)
	records, err := h.db.Service().Item().List(req.Context(), currentUser(req), kind, id, limit, offset)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.Items(records))
}

// ListCompanyRequests returns the company names waiting to be created.
func (h *CompanyHandler) ListCompanyRequests(w http.ResponseWriter, req bunrouter.Request) error {
	requests, err := h.db.Model().CompanyRequest().List(req.Context())
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.CompanyRequests(requests))
}
