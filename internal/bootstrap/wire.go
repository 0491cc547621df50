package bootstrap

import (
	"net/http"

	"github.com/thorryuk/Sekai---Backend/internal/application/auth"
	"github.com/thorryuk/Sekai---Backend/internal/application/records"
	"github.com/thorryuk/Sekai---Backend/internal/config"
	"github.com/thorryuk/Sekai---Backend/internal/infrastructure/supabase"
	"github.com/thorryuk/Sekai---Backend/internal/security"
	"github.com/thorryuk/Sekai---Backend/internal/tablestore"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/handlers"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/middleware"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)
	NewRouter  func(router.Deps) (http.Handler, error)
}

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewRouter:  router.New,
	}
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) table store client (the only external dependency)
	store := tablestore.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.UpstreamTimeout)

	// 2) auth wiring
	userRepo := supabase.NewUserRepo(store)
	hasher := security.NewBcryptHasher()
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	authSvc := auth.NewService(userRepo, hasher, signer, auth.Config{
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})

	// 3) record forwarding
	recordsSvc := records.NewService(store)

	// 4) transport
	handler, err := deps.NewRouter(router.Deps{
		Auth:      handlers.NewAuthHandler(authSvc),
		Stores:    handlers.NewRecordsHandler(recordsSvc, records.Stores),
		Scans:     handlers.NewRecordsHandler(recordsSvc, records.Scans),
		AccessMW:  middleware.Gate(signer, auth.TokenAccess),
		RefreshMW: middleware.Gate(signer, auth.TokenRefresh),
	})
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {}
	return srv, cleanup, nil
}
