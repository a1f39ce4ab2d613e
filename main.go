//
// Admin
// =====
// Server-rendered admin panel for the content backend: articles and job
// positions, with a diagnostics port for metrics and health.
//
// Boot the server:
// ----------------
// $ ADMIN_API_URL=http://localhost:8080/api go run .
//
// Route docs:
// -----------
// $ go run . -routes
//
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/article"
	"github.com/SergeyParamoshkin/admin/internal/errresponse"
	"github.com/SergeyParamoshkin/admin/internal/logging"
	"github.com/SergeyParamoshkin/admin/internal/metrics"
	"github.com/SergeyParamoshkin/admin/internal/position"
	"github.com/SergeyParamoshkin/admin/internal/richtext"
	"github.com/SergeyParamoshkin/admin/internal/session"
	"github.com/SergeyParamoshkin/admin/internal/theme"
	"github.com/SergeyParamoshkin/admin/internal/validation"
	"github.com/SergeyParamoshkin/admin/internal/view"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	sugarLogger *zap.SugaredLogger
	config      Config

	metrics   *metrics.Provider
	sessions  *session.Store
	view      *view.Renderer
	articles  *article.Handler
	positions *position.Handler
}

func main() {
	config, err := LoadConfig(os.Args[1:], ".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(config.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() // flushes buffer, if any
	zap.ReplaceGlobals(logger)

	a, err := NewApp(config, logger)
	if err != nil {
		logger.Sugar().Fatalw("init", "error", err)
	}

	// Passing -routes to the program will generate docs for the router.
	if config.Routes {
		fmt.Println(docgen.MarkdownRoutesDoc(a.Router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/admin",
			Intro:       "Yota-X admin panel routes.",
		}))

		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = a.Run(ctx); err != nil {
		a.sugarLogger.Errorw("server stopped", "error", err)
	}
}

func NewApp(config Config, logger *zap.Logger) (*App, error) {
	provider, err := metrics.Setup()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}

	recorder, err := metrics.NewRecorder(provider.Meter(ServiceName))
	if err != nil {
		return nil, err
	}

	credentials := client.ChainProvider{client.StaticToken(config.AuthToken)}
	if config.TokenFile != "" {
		credentials = append(credentials, client.FileStore{Path: config.TokenFile})
	}

	api := client.New(config.APIURL,
		client.WithHTTPClient(http.Client{Timeout: config.BackendTimeout}),
		client.WithCredentials(credentials),
		client.WithLogger(logger),
		client.WithObserver(recorder.Observe),
		client.WithRateLimit(rate.Limit(config.BackendRPS), 1),
	)

	sessions, err := session.NewStore(config.SessionCapacity)
	if err != nil {
		return nil, err
	}

	sugar := logger.Sugar()

	rd, err := view.New(sessions, sugar)
	if err != nil {
		return nil, err
	}

	v := validation.New()

	return &App{
		sugarLogger: sugar,
		config:      config,
		metrics:     provider,
		sessions:    sessions,
		view:        rd,
		articles:    article.New(api, rd, sessions, v, richtext.NewSanitizer()),
		positions:   position.New(api, rd, sessions, v),
	}, nil
}

func (a *App) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(a.sugarLogger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	FileServer(r, "/static", view.Static())

	r.Group(func(r chi.Router) {
		r.Use(session.SameOrigin)
		r.Use(theme.Hints)
		r.Use(a.sessions.Middleware)

		r.Get("/", http.RedirectHandler(article.ListPath, http.StatusFound).ServeHTTP)
		r.Get("/dashboard", a.view.Placeholder("Dashboard"))
		r.Get("/settings", a.view.Placeholder("Settings"))

		r.Route(article.ListPath, a.articles.Routes)
		r.Route(position.ListPath, a.positions.Routes)
		r.Route("/ui", a.view.UIRoutes)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/slug", article.SlugPreview)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			if err := render.Render(w, r, errresponse.ErrNotFound); err != nil {
				a.sugarLogger.Errorw(err.Error())
			}
		})
	})

	return r
}

func (a *App) DiagRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	r.Get("/healthz", a.Healthz)

	return r
}

func (a *App) Healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, render.M{"status": "ok", "sessions": a.sessions.Len()})
}

// Run serves both routers until ctx is done, then shuts them down.
func (a *App) Run(ctx context.Context) error {
	servers := []*http.Server{
		{Addr: a.config.Addr, Handler: a.Router(), ReadHeaderTimeout: 10 * time.Second},
		{Addr: a.config.DiagAddr, Handler: a.DiagRouter(), ReadHeaderTimeout: 10 * time.Second},
	}

	g, ctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		g.Go(func() error {
			a.sugarLogger.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}

			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var err error
		for _, srv := range servers {
			err = multierr.Append(err, srv.Shutdown(shutdownCtx))
		}

		return multierr.Append(err, a.metrics.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit any URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}
