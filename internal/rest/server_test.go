package rest_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/dbtest"
	"github.com/pracor/pracor/internal/linking"
	"github.com/pracor/pracor/internal/notify"
	"github.com/pracor/pracor/internal/redis/redistest"
	"github.com/pracor/pracor/internal/rest"
	"github.com/pracor/pracor/internal/rest/middleware/identity"
	restTypes "github.com/pracor/pracor/internal/rest/types"
	"github.com/pracor/pracor/internal/session"
	"github.com/pracor/pracor/internal/setup/config"
	"github.com/pracor/pracor/internal/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	memberID = 7
	staffID  = 1
)

type testServer struct {
	t      *testing.T
	server *rest.Server
	db     database.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zap.NewNop()
	db := dbtest.New(t)
	manager, _ := redistest.New(t)

	guard, err := session.NewDuplicateGuard(manager, time.Hour, logger)
	require.NoError(t, err)
	store, err := session.NewWorkflowStore(manager, time.Hour, logger)
	require.NoError(t, err)
	publisher, err := notify.NewPublisher(manager, logger)
	require.NoError(t, err)

	cfg := &config.APIConfig{
		IP: config.IPConfig{AllowLocalIPs: true},
		RateLimit: config.RateLimit{
			RequestsPerSecond:   1000,
			BurstSize:           1000,
			StaffRequestsPerSec: 1000,
			StaffBurstSize:      1000,
		},
	}

	server := rest.NewServer(db, submission.New(db, guard, publisher, logger), linking.New(db, store, logger), logger, cfg)
	t.Cleanup(server.Close)

	return &testServer{t: t, server: server, db: db}
}

type call struct {
	method string
	path   string
	userID int64
	staff  bool
	token  string
	body   any
}

func (s *testServer) do(c call) *httptest.ResponseRecorder {
	s.t.Helper()

	var body bytes.Buffer
	if c.body != nil {
		data, err := sonic.Marshal(c.body)
		require.NoError(s.t, err)
		body.Write(data)
	}

	req := httptest.NewRequest(c.method, c.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if c.userID != 0 {
		req.Header.Set(identity.HeaderUserID, strconv.FormatInt(c.userID, 10))
		req.Header.Set(identity.HeaderUserEmail, "user"+strconv.FormatInt(c.userID, 10)+"@example.com")
	}
	if c.staff {
		req.Header.Set(identity.HeaderUserStaff, "true")
	}
	if c.token != "" {
		req.Header.Set(identity.HeaderFormToken, c.token)
	}

	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) createCompany(name, website string) *restTypes.Company {
	s.t.Helper()

	rec := s.do(call{method: http.MethodPost, path: "/v1/companies", userID: memberID, body: restTypes.CompanyRequestBody{
		Name: name, HeadquartersCity: "warszawa", Website: website,
	}})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	return decodeBody[restTypes.CreateCompanyResponse](s.t, rec).Company
}

func reviewBody(overall int) restTypes.SubmissionBody {
	return restTypes.SubmissionBody{
		Review: &restTypes.ReviewForm{
			Title:   "Solid employer",
			Pros:    "People",
			Cons:    "Commute",
			Comment: "Would work here again",
			Ratings: restTypes.Ratings{
				OverallScore: overall, Advancement: 3, WorkLife: 4, Compensation: 3, Environment: 5,
			},
		},
		Position: &restTypes.PositionForm{Title: "Engineer", Location: "Warszawa", EmploymentStatus: "full_time"},
	}
}

func companyPath(id int64, suffix string) string {
	return "/v1/companies/" + strconv.FormatInt(id, 10) + suffix
}

func TestAuthenticationRequired(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(call{method: http.MethodGet, path: "/v1/companies"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(call{method: http.MethodGet, path: "/healthz"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCompanyEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	company := s.createCompany("Acme", "https://acme.pl")
	assert.Equal(t, "http://www.acme.pl", company.Website)
	assert.Equal(t, "Warszawa", company.HeadquartersCity)
	assert.Nil(t, company.Scores)

	t.Run("conflict lists the existing company", func(t *testing.T) {
		rec := s.do(call{method: http.MethodPost, path: "/v1/companies", userID: memberID, body: restTypes.CompanyRequestBody{
			Name: "Acme", HeadquartersCity: "Łódź", Website: "other.pl",
		}})
		require.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeBody[restTypes.ErrorResponse](t, rec)
		require.Len(t, resp.Existing, 1)
		assert.Equal(t, company.ID, resp.Existing[0].ID)
	})

	t.Run("invalid input", func(t *testing.T) {
		rec := s.do(call{method: http.MethodPost, path: "/v1/companies", userID: memberID, body: restTypes.CompanyRequestBody{}})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decodeBody[restTypes.ErrorResponse](t, rec)
		assert.Contains(t, resp.Forms, "company")
	})

	t.Run("search ignores case and diacritics", func(t *testing.T) {
		s.createCompany("Żabka Polska", "zabka.pl")
		rec := s.do(call{method: http.MethodGet, path: "/v1/companies?q=ZABKA", userID: memberID})
		require.Equal(t, http.StatusOK, rec.Code)
		companies := decodeBody[[]restTypes.Company](t, rec)
		require.Len(t, companies, 1)
		assert.Equal(t, "Żabka Polska", companies[0].Name)
	})

	t.Run("missing company", func(t *testing.T) {
		rec := s.do(call{method: http.MethodGet, path: "/v1/companies/999", userID: memberID})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete requires staff", func(t *testing.T) {
		rec := s.do(call{method: http.MethodDelete, path: companyPath(company.ID, ""), userID: memberID})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestSubmissionFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	company := s.createCompany("Acme", "acme.pl")

	rec := s.do(call{method: http.MethodGet, path: companyPath(company.ID, "/submissions/review"), userID: memberID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[restTypes.PositionFormResponse](t, rec).NeedsPositionForm)

	rec = s.do(call{method: http.MethodGet, path: companyPath(company.ID, "/items/review"), userID: memberID})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(call{
		method: http.MethodPost, path: companyPath(company.ID, "/submissions/review"),
		userID: memberID, token: "form-1", body: reviewBody(5),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decodeBody[restTypes.SubmissionResult](t, rec)
	assert.Equal(t, string(submission.StateSuccess), result.State)
	assert.NotZero(t, result.ItemID)
	require.NotNil(t, result.PositionID)

	rec = s.do(call{
		method: http.MethodPost, path: companyPath(company.ID, "/submissions/review"),
		userID: memberID, token: "form-1", body: reviewBody(5),
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, companyPath(company.ID, ""), rec.Header().Get("Location"))

	rec = s.do(call{method: http.MethodGet, path: companyPath(company.ID, "/submissions/review"), userID: memberID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[restTypes.PositionFormResponse](t, rec).NeedsPositionForm)

	rec = s.do(call{method: http.MethodGet, path: companyPath(company.ID, ""), userID: memberID})
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decodeBody[restTypes.CompanyDetail](t, rec)
	assert.Equal(t, int64(1), detail.Company.ReviewCount)
	require.NotNil(t, detail.Company.Scores)
	assert.InDelta(t, 5.0, detail.Company.Scores.OverallScore, 1e-9)
	assert.Equal(t, 5, detail.Stars["overallScore"].Full)
	require.Len(t, detail.Items, 3)
	assert.Equal(t, "review", detail.Items[0].Kind)
	assert.Equal(t, 1, detail.Items[0].Count)

	rec = s.do(call{method: http.MethodGet, path: companyPath(company.ID, "/items/review"), userID: memberID})
	require.Equal(t, http.StatusOK, rec.Code)
	reviews := decodeBody[[]restTypes.Review](t, rec)
	require.Len(t, reviews, 1)
	assert.Equal(t, "pending", reviews[0].Approval.Status)

	t.Run("staff rejection removes the review from the scores", func(t *testing.T) {
		path := "/v1/moderation/review/" + strconv.FormatInt(reviews[0].ID, 10)

		rec := s.do(call{method: http.MethodPost, path: path, userID: memberID, body: restTypes.ModerationBody{Status: "rejected"}})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = s.do(call{method: http.MethodPost, path: path, userID: staffID, staff: true, body: restTypes.ModerationBody{Status: "pending"}})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec = s.do(call{method: http.MethodPost, path: path, userID: staffID, staff: true, body: restTypes.ModerationBody{Status: "rejected"}})
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = s.do(call{method: http.MethodGet, path: companyPath(company.ID, ""), userID: memberID})
		require.Equal(t, http.StatusOK, rec.Code)
		detail := decodeBody[restTypes.CompanyDetail](t, rec)
		assert.Equal(t, int64(0), detail.Company.ReviewCount)
		assert.Nil(t, detail.Company.Scores)
	})
}

func TestSubmissionRejected(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	company := s.createCompany("Acme", "acme.pl")

	body := reviewBody(9)
	body.Position.Location = ""

	rec := s.do(call{
		method: http.MethodPost, path: companyPath(company.ID, "/submissions/review"),
		userID: memberID, token: "form-2", body: body,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody[restTypes.ErrorResponse](t, rec)
	assert.Contains(t, resp.Forms["primary"], "overallScore")
	assert.Contains(t, resp.Forms["position"], "location")

	rec = s.do(call{
		method: http.MethodPost, path: companyPath(company.ID, "/submissions/review"),
		userID: memberID, token: "form-2", body: reviewBody(4),
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(call{method: http.MethodPost, path: companyPath(company.ID, "/submissions/bonus"), userID: memberID, body: reviewBody(4)})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(call{method: http.MethodPost, path: companyPath(999, "/submissions/review"), userID: memberID, body: reviewBody(4)})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportAndLink(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(call{method: http.MethodPost, path: "/v1/positions/import", userID: memberID, body: restTypes.ImportBody{
		Positions: []restTypes.ImportedPosition{{CompanyName: "Acme Corp", Title: "Engineer"}},
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	step := decodeBody[restTypes.LinkStep](t, rec)
	require.False(t, step.Done)
	require.NotNil(t, step.Reconciliation)
	assert.False(t, step.Reconciliation.Queued)
	assert.Equal(t, 1, step.Remaining)

	rec = s.do(call{method: http.MethodGet, path: "/v1/link-workflows/" + step.Token, userID: memberID + 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(call{method: http.MethodGet, path: "/v1/company-requests", userID: staffID, staff: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]restTypes.CompanyRequest](t, rec))

	rec = s.do(call{method: http.MethodPost, path: "/v1/link-workflows/" + step.Token + "/skip", userID: memberID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[restTypes.LinkStep](t, rec).Done)

	rec = s.do(call{method: http.MethodGet, path: "/v1/company-requests", userID: staffID, staff: true})
	require.Equal(t, http.StatusOK, rec.Code)
	requests := decodeBody[[]restTypes.CompanyRequest](t, rec)
	require.Len(t, requests, 1)
	assert.Equal(t, "Acme Corp", requests[0].Name)

	rec = s.do(call{method: http.MethodPost, path: "/v1/companies", userID: memberID, body: restTypes.CompanyRequestBody{
		Name: "Acme Corp", HeadquartersCity: "Gdańsk", Website: "acme.com",
	}})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(1), decodeBody[restTypes.CreateCompanyResponse](t, rec).LinkedPositions)

	rec = s.do(call{method: http.MethodGet, path: "/v1/positions/unlinked", userID: memberID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]restTypes.Position](t, rec))
}
