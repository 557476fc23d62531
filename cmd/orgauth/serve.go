package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirhosseinghanipour/orgauth/internal/application/auth"
	"github.com/amirhosseinghanipour/orgauth/internal/application/organization"
	"github.com/amirhosseinghanipour/orgauth/internal/config"
	infraauth "github.com/amirhosseinghanipour/orgauth/internal/infrastructure/auth"
	httprouter "github.com/amirhosseinghanipour/orgauth/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/orgauth/internal/logger"
)

type ServeCmd struct {
	ShutdownTimeout time.Duration `help:"Grace period for in-flight requests on shutdown." default:"10s"`
}

func (c *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	log := logger.Setup(globals.Debug)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	hasher := newHasher(cfg.Hasher)
	issuer, err := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), infraauth.WithIssuer(cfg.JWT.Issuer))
	if err != nil {
		return fmt.Errorf("create token issuer: %w", err)
	}

	registerUC := auth.NewRegisterUser(st.users, hasher, issuer)
	loginUC, err := auth.NewLogin(st.users, hasher, issuer)
	if err != nil {
		return fmt.Errorf("create login: %w", err)
	}
	getUserUC := auth.NewGetUser(st.users)
	auditor := handlers.NewAuditor(log, newAuditSink(cfg.Audit))

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:  handlers.NewAuthHandler(registerUC, loginUC, auditor, log),
		UsersHandler: handlers.NewUsersHandler(getUserUC, log),
		OrganizationsHandler: handlers.NewOrganizationsHandler(
			organization.NewCreateOrganization(st.users, st.orgs),
			organization.NewGetOrganization(st.users, st.orgs),
			organization.NewListOrganizations(st.users, st.orgs),
			organization.NewAddMember(st.users, st.orgs),
			auditor,
			log,
		),
		HealthHandler: handlers.NewHealthHandler(st.pinger, log),
		RequireJWT:    middleware.NewAuthValidator(issuer, log).Handler,
		Log:           log,
		Secure:        middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		CORS:          middleware.CORS(cfg.CORS.Origins),
		Metrics:       cfg.Metrics.Enabled,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       time.Minute,
		MaxHeaderBytes:    8 * 1024,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("store", cfg.Store).
			Str("version", globals.Version).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
