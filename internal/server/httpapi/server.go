// Package httpapi exposes the gophterms server over HTTP/JSON using gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophterms/internal/common"
	"github.com/dmitrijs2005/gophterms/internal/logging"
	"github.com/dmitrijs2005/gophterms/internal/server/models"
	"github.com/dmitrijs2005/gophterms/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, userName string) ([]byte, error)
	Login(ctx context.Context, userName string, verifierCandidate []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Profile(ctx context.Context, userID string) (*services.Profile, error)
}

type CollectionService interface {
	Create(ctx context.Context, creatorID, name, description, termsText string) (*models.Collection, error)
	Get(ctx context.Context, id string) (*models.Collection, error)
	List(ctx context.Context) ([]models.Collection, error)
	UpdateTerms(ctx context.Context, userID, id, termsText string) (*models.Collection, error)
}

type TermsService interface {
	Accept(ctx context.Context, userID, collectionID, hash string) (*models.Acceptance, error)
}

type HTTPServer struct {
	address     string
	logger      logging.Logger
	users       UserService
	collections CollectionService
	terms       TermsService
	jwtSecret   []byte
	corsOrigins []string
}

func NewHTTPServer(a string, l logging.Logger, us UserService, cs CollectionService, ts TermsService, secretKey string, corsOrigins []string) *HTTPServer {
	return &HTTPServer{
		address:     a,
		logger:      l.With("module", "http_server"),
		users:       us,
		collections: cs,
		terms:       ts,
		jwtSecret:   []byte(secretKey),
		corsOrigins: corsOrigins,
	}
}

// Handler builds the gin engine with middleware and every route mounted
// under common.APIPrefix.
func (s *HTTPServer) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	if len(s.corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  s.corsOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", common.AuthorizationHeader},
			ExposeHeaders: []string{"Content-Length", requestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	api := r.Group(common.APIPrefix)
	api.GET("/ping", s.ping)

	user := api.Group("/user")
	user.POST("", s.register)
	user.GET("/salt", s.getSalt)
	user.POST("/authentication", s.login)
	user.POST("/authentication/refresh", s.refresh)
	user.GET("/me", s.authRequired(), s.me)

	col := api.Group("/collection")
	col.GET("", s.listCollections)
	col.GET("/:id", s.getCollection)
	col.POST("", s.authRequired(), s.createCollection)
	col.PUT("/:id/terms", s.authRequired(), s.updateTerms)
	col.POST("/:id/acceptTerms", s.authRequired(), s.acceptTerms)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
