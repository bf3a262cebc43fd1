// Package sandbox serves a local stand-in for the Konnect admin API over
// seeded in-memory data, with the same authentication behaviour as the
// real service: missing or invalid tokens get 401, non-admin tokens get 403.
package sandbox

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/hako/durafmt"
	"github.com/ironstar-io/chizerolog"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/techipro/konnect-admin/api/appointments"
	"github.com/techipro/konnect-admin/api/categories"
	"github.com/techipro/konnect-admin/api/kyc"
	"github.com/techipro/konnect-admin/api/payments"
	"github.com/techipro/konnect-admin/api/services"
	"github.com/techipro/konnect-admin/api/settings"
	"github.com/techipro/konnect-admin/api/system"
	"github.com/techipro/konnect-admin/api/technicians"
	"github.com/techipro/konnect-admin/api/users"
	"github.com/techipro/konnect-admin/auth"
	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/db/memory"
	"github.com/techipro/konnect-admin/db/mongo"
	"github.com/techipro/konnect-admin/env"
	"github.com/techipro/konnect-admin/types"
)

// BasePath is the versioned API root served by the sandbox
const BasePath = "/api/v1"

// Server bundles together the resources used by the sandbox at runtime
type Server struct {
	provider   db.Provider
	jwtManager *auth.JWTManager
	logger     zerolog.Logger
	started    time.Time
}

// NewServer creates a sandbox server over the given data and token manager
func NewServer(provider db.Provider, jwtManager *auth.JWTManager, logger zerolog.Logger) *Server {
	return &Server{
		provider:   provider,
		jwtManager: jwtManager,
		logger:     logger,
		started:    time.Now(),
	}
}

// NewServerFromEnv creates a sandbox server with seeded data.
// Data lives in MongoDB when SANDBOX_MONGO_URI is set and in memory otherwise.
// A random signing secret is generated if SANDBOX_JWT_SECRET is unset.
func NewServerFromEnv(logger zerolog.Logger) (*Server, error) {
	jwtManager, err := auth.NewJWTManager()
	if env.IsMissing(err) {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, errors.Wrap(err, "generate sandbox secret")
		}

		ttl, err := env.GetDurationEnv("sandbox token lifetime", "SANDBOX_TOKEN_TTL")
		if err != nil && !env.IsMissing(err) {
			return nil, err
		}

		logger.Warn().Msg("SANDBOX_JWT_SECRET not set; using a random secret for this run")
		jwtManager = auth.NewJWTManagerWithSecret(secret, ttl)
	} else if err != nil {
		return nil, errors.Wrap(err, "load sandbox JWT configuration")
	}

	var provider db.Provider = memory.NewSeededProvider()
	mongoProvider, err := mongo.NewProviderFromEnv(logger)
	if err == nil {
		provider = mongoProvider
	} else if !env.IsMissing(err) {
		return nil, err
	}

	return NewServer(provider, jwtManager, logger), nil
}

// seeder is implemented by persistent providers that start out empty
type seeder interface {
	SeedFrom(ctx context.Context, src db.Provider) (bool, error)
}

// Connect connects the data provider if it holds a connection,
// and fills it with the demo records on first use
func (s *Server) Connect(ctx context.Context) error {
	connector, ok := s.provider.(db.Connector)
	if !ok {
		return nil
	}

	s.logger.Info().Msg("connecting sandbox data provider")
	if err := connector.Connect(ctx); err != nil {
		return errors.Wrap(err, "connect sandbox data provider")
	}

	if seeder, ok := s.provider.(seeder); ok {
		seeded, err := seeder.SeedFrom(ctx, memory.NewSeededProvider())
		if err != nil {
			return errors.Wrap(err, "seed sandbox data")
		}
		if seeded {
			s.logger.Info().Msg("seeded empty database with demo records")
		}
	}

	return nil
}

// Disconnect releases the data provider's connection, if any
func (s *Server) Disconnect(ctx context.Context) error {
	connector, ok := s.provider.(db.Connector)
	if !ok {
		return nil
	}

	if err := connector.Disconnect(ctx); err != nil {
		return errors.Wrap(err, "disconnect sandbox data provider")
	}
	s.logger.Info().Msg("disconnected sandbox data provider")
	return nil
}

// JWTManager returns the token manager used to sign and verify tokens
func (s *Server) JWTManager() *auth.JWTManager {
	return s.jwtManager
}

// DemoTokens signs one token for the seeded admin and one for a non-admin
// account, for use against the sandbox
func (s *Server) DemoTokens(ctx context.Context) (admin string, user string, err error) {
	adminUser, err := s.provider.GetUser(ctx, memory.SeedAdminID)
	if err != nil {
		return "", "", err
	}
	admin, err = s.jwtManager.Issue(*adminUser)
	if err != nil {
		return "", "", errors.Wrap(err, "sign admin token")
	}

	customer, err := s.provider.GetUser(ctx, memory.SeedCustomerID)
	if err != nil {
		return "", "", err
	}
	user, err = s.jwtManager.Issue(*customer)
	if err != nil {
		return "", "", errors.Wrap(err, "sign user token")
	}

	return admin, user, nil
}

// Serve runs the sandbox until ctx is cancelled,
// in which case it attempts to gracefully shutdown.
// This function blocks.
func (s *Server) Serve(ctx context.Context, port int) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Routes(),
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()
	s.logger.Info().
		Int("port", port).
		Str("base_path", BasePath).
		Str("token_ttl", durafmt.Parse(s.jwtManager.TTL).String()).
		Msg("sandbox API started")

	select {
	case err := <-serveErr:
		if err != nil {
			return errors.Wrap(err, "sandbox listen")
		}
		return nil
	case <-ctx.Done():
	}
	s.logger.Info().Msg("sandbox API stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "sandbox shutdown")
	}
	s.logger.Info().
		Str("uptime", durafmt.ParseShort(time.Since(s.started)).String()).
		Msg("sandbox API exited properly")
	return nil
}

// Routes builds the sandbox router
func (s *Server) Routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.Recoverer,                          // Recover from panics without crashing the server
		chizerolog.LoggerMiddleware(&s.logger),        // Log API request calls
		middleware.RedirectSlashes,                    // Redirect slashes to no slash URL versions
		render.SetContentType(render.ContentTypeJSON), // Set content-type headers to application/json
		middleware.NoCache,                            // Prevent clients from caching the results
		s.corsMiddleware(),                            // Create cors middleware from go-chi/cors
	)

	router.Route(BasePath, func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			// Can be used for health checks
			r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
		})

		// Admin routes: 401 without a valid token, 403 without the ADMIN role
		r.Group(func(r chi.Router) {
			r.Use(s.jwtManager.Authenticated())
			r.Use(auth.AdminAuthenticated)

			r.Mount("/kyc-admin", kyc.Routes(s.provider))
			r.Mount("/technicians", technicians.Routes(s.provider))
			r.Route("/admin", func(r chi.Router) {
				system.Register(r, s.provider, s.started)
				r.Mount("/users", users.Routes(s.provider))
				r.Mount("/technicians", technicians.AdminRoutes(s.provider))
				r.Mount("/categories", categories.Routes(s.provider))
				r.Mount("/settings", settings.Routes(s.provider))
				r.Mount("/appointments", appointments.Routes(s.provider))
				r.Mount("/services", services.Routes(s.provider))
				r.Mount("/payments", payments.Routes(s.provider))
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, types.ErrorResponse{Message: "route not found"})
	})

	return router
}

func (s *Server) corsMiddleware() func(http.Handler) http.Handler {
	// See if the CORS_ALLOWED_ORIGINS environment variable was set
	allowedOrigins := "*"
	if value, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok {
		allowedOrigins = value
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
