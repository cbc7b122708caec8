package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/vaultmarkets/onboarding/handler"
	"github.com/vaultmarkets/onboarding/modules/account"
	"github.com/vaultmarkets/onboarding/modules/wizard"
	"github.com/vaultmarkets/onboarding/pkg/clientip"
	"github.com/vaultmarkets/onboarding/pkg/config"
	"github.com/vaultmarkets/onboarding/pkg/cookie"
	"github.com/vaultmarkets/onboarding/pkg/crm"
	"github.com/vaultmarkets/onboarding/pkg/environment"
	"github.com/vaultmarkets/onboarding/pkg/httpserver"
	"github.com/vaultmarkets/onboarding/pkg/logger"
	"github.com/vaultmarkets/onboarding/pkg/mongo"
	"github.com/vaultmarkets/onboarding/pkg/pg"
	"github.com/vaultmarkets/onboarding/pkg/ratelimit"
	"github.com/vaultmarkets/onboarding/pkg/redis"
	"github.com/vaultmarkets/onboarding/pkg/requestid"
	"github.com/vaultmarkets/onboarding/pkg/session"
	"github.com/vaultmarkets/onboarding/svc/auth"
	"github.com/vaultmarkets/onboarding/svc/onboarding"
)

const serviceName = "onboarding-gateway"

type appConfig struct {
	Environment environment.Config
	HTTP        httpserver.Config
	ClientIP    clientip.Config
	RateLimit   ratelimit.Config
	Cookie      cookie.Config
	Session     session.Config
	Progress    onboarding.Config
	CRM         crm.Config
	Postgres    pg.Config
	Redis       redis.Config
	Mongo       mongo.Config

	LogLevel      string        `env:"LOG_LEVEL"`
	ReadyTimeout  time.Duration `env:"READY_TIMEOUT" envDefault:"3s"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load[appConfig]()
	if err != nil {
		return err
	}

	env := environment.Parse(cfg.Environment.Env)
	logOpts := []logger.Option{
		logger.WithEnvironment(env, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		logOpts = append(logOpts, logger.WithLevel(lvl))
	}
	log := logger.New(logOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close(log)

	graph := onboarding.DefaultGraph()
	if cfg.Progress.GraphPath != "" {
		if graph, err = onboarding.LoadGraph(cfg.Progress.GraphPath); err != nil {
			return err
		}
	}

	progressStore, err := onboarding.NewStore(cfg.Progress, deps.backends(cfg))
	if err != nil {
		return err
	}
	progress := onboarding.NewProgressService(progressStore, graph, onboarding.WithLogger(log))
	resolver := onboarding.NewResolver(progressStore, graph, log)
	navigator := onboarding.NewNavigator(progressStore, graph)

	sessionStore, err := newSessionStore(cfg, deps)
	if err != nil {
		return err
	}
	sessions := session.NewManagerFromConfig(cfg.Session, sessionStore)

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	crmClient, err := crm.New(cfg.CRM)
	if err != nil {
		return err
	}

	authSvc := auth.NewService(auth.NewCRMProvider(crmClient), cookies, progress, auth.WithLogger(log))

	ips := clientip.NewFromConfig(cfg.ClientIP)
	limiter := ratelimit.NewFromConfig(cfg.RateLimit)
	tooMany := handler.Handle(handler.JSONError(handler.ErrTooManyRequests))
	limit := ratelimit.Middleware(limiter, func(r *http.Request) string {
		return clientip.FromContext(r.Context())
	}, tooMany)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(ips.Middleware)
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		exposed := []string{requestid.Header, "Retry-After"}
		if cfg.Session.TokenHeader != "" {
			exposed = append(exposed, cfg.Session.TokenHeader)
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.HTTP.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestid.Header},
			ExposedHeaders:   exposed,
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(log, cfg.ReadyTimeout, deps.checks()))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/onboarding", wizard.NewHandler(progress, resolver, navigator, sessions,
			wizard.WithReporter(wizard.NewCRMReporter(crmClient, log)),
			wizard.WithLogger(log),
		).Handle())
		r.Mount("/", account.NewHandler(authSvc, sessions, resolver, graph,
			account.WithRateLimit(limit),
			account.WithLogger(log),
		).Handle())
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, r)
	})
	g.Go(func() error {
		limiter.Run(gctx, cfg.SweepInterval)
		return nil
	})
	if ms, ok := sessionStore.(*session.MemoryStore); ok {
		g.Go(func() error {
			ms.Run(gctx, cfg.SweepInterval)
			return nil
		})
	}

	log.InfoContext(ctx, "gateway started",
		logger.Component("gateway"),
		logger.Addr(cfg.HTTP.Addr),
		logger.ProgressStore(cfg.Progress.Backend),
		logger.SessionStore(cfg.Session.Backend),
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("gateway stopped", logger.Component("gateway"))
	return nil
}

func newSessionStore(cfg appConfig, deps *dependencies) (session.Store, error) {
	switch cfg.Session.Backend {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		if deps.redis == nil {
			return nil, errors.New("session store: redis client not configured")
		}
		return session.NewRedisStore(deps.redis, cfg.Redis.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("session store: unknown backend %q", cfg.Session.Backend)
	}
}
