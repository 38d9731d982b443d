package rest

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/linking"
	"github.com/pracor/pracor/internal/rest/handler"
	"github.com/pracor/pracor/internal/rest/middleware/header"
	"github.com/pracor/pracor/internal/rest/middleware/identity"
	"github.com/pracor/pracor/internal/rest/middleware/ip"
	"github.com/pracor/pracor/internal/rest/middleware/ratelimit"
	"github.com/pracor/pracor/internal/setup/config"
	"github.com/pracor/pracor/internal/submission"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the REST API service.
type Server struct {
	handler     http.Handler
	rateLimiter *ratelimit.Middleware
}

// NewServer creates a new REST API server.
func NewServer(
	db database.Client,
	submitter *submission.Submitter,
	linker *linking.Linker,
	logger *zap.Logger,
	cfg *config.APIConfig,
) *Server {
	companyHandler := handler.NewCompanyHandler(db, logger)
	submissionHandler := handler.NewSubmissionHandler(submitter, logger)
	positionHandler := handler.NewPositionHandler(db, linker, logger)
	moderationHandler := handler.NewModerationHandler(db, logger)

	// Create middleware instances
	headerMiddleware := header.New(logger)
	ipMiddleware := ip.New(logger, &cfg.IP)
	identityMiddleware := identity.New(db, logger)
	rateLimiter := ratelimit.New(&cfg.RateLimit, logger)

	router := bunrouter.New()

	router.GET("/healthz", func(w http.ResponseWriter, _ bunrouter.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	})

	router.Use(
		headerMiddleware.AsRESTMiddleware,
		ipMiddleware.AsRESTMiddleware,
		identityMiddleware.AsRESTMiddleware,
		rateLimiter.AsRESTMiddleware,
	).WithGroup("/v1", func(g *bunrouter.Group) {
		g.GET("/companies", companyHandler.ListCompanies)
		g.POST("/companies", companyHandler.CreateCompany)
		g.GET("/companies/:id", companyHandler.GetCompany)
		g.PUT("/companies/:id", companyHandler.UpdateCompany)
		g.GET("/companies/:id/items/:kind", companyHandler.ListItems)
		g.GET("/companies/:id/submissions/:kind", submissionHandler.PositionForm)
		g.POST("/companies/:id/submissions/:kind", submissionHandler.Submit)

		g.GET("/positions/unlinked", positionHandler.ListUnlinked)
		g.DELETE("/positions/:id", positionHandler.DeletePosition)
		g.POST("/positions/reconcile", positionHandler.Reconcile)
		g.POST("/positions/import", positionHandler.Import)

		g.GET("/link-workflows/:token", positionHandler.CurrentStep)
		g.POST("/link-workflows/:token/link", positionHandler.Link)
		g.POST("/link-workflows/:token/skip", positionHandler.Skip)

		staff := g.Use(identity.RequireStaff)
		staff.DELETE("/companies/:id", companyHandler.DeleteCompany)
		staff.GET("/company-requests", companyHandler.ListCompanyRequests)
		staff.POST("/moderation/:kind/:id", moderationHandler.Moderate)
	})

	return &Server{
		handler:     gzhttp.GzipHandler(router),
		rateLimiter: rateLimiter,
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close releases the resources held by the middlewares.
func (s *Server) Close() {
	s.rateLimiter.Close()
}
