package main

import (
	"context"
	"embed"
	"encoding/gob"
	"log/slog"
	"net/http"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/sessions"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/activity"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/configuration"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/dashboard"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/flash"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/pages"
	"github.com/adampresley/workshopadmin/cmd/admin/internal/tables"
	"github.com/adampresley/workshopadmin/pkg/database"
	"github.com/adampresley/workshopadmin/pkg/models"
	"github.com/adampresley/workshopadmin/pkg/services"
	"github.com/alitto/pond/v2"
	"github.com/rfberaldo/sqlz"
)

var (
	Version string = "development"
	appName string = "workshopadmin"

	//go:embed app
	appFS embed.FS

	config configuration.Config

	/* Services */
	activityService services.ActivityService
	db              *sqlz.DB
	flashStore      flash.SessionFlashStore
	pageRenderer    pages.TemplatePageRenderer
	renderer        rendering.TemplateRenderer
	resourceService services.ResourceService
	sessionService  sessions.Session[*models.Notification]
	snapshotService *services.SnapshotService
	tableRenderer   tables.HtmlTableRenderer

	/* Controllers */
	activityController  activity.ActivityHandlers
	dashboardController dashboard.DashboardHandlers
)

func main() {
	var (
		err error
	)

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("apiBaseURL", config.APIBaseURL),
	)

	slog.Debug("setting up...")

	shutdownCtx, cancel := context.WithCancel(context.Background())

	/*
	 * Setup services
	 */
	if db, err = database.Connect(config.DSN); err != nil {
		panic(err)
	}

	if err = database.Migrate(db); err != nil {
		panic(err)
	}

	gob.Register(&models.Notification{})

	cookieStore := sessions.NewCookieStore(config.CookieSecret)
	sessionService = sessions.NewSessionWrapper[*models.Notification](cookieStore, "workshopadminflash", "flash")
	flashStore = flash.NewSessionFlashStore(sessionService)

	renderer, err = rendering.NewGoTemplateRenderer(rendering.GoTemplateRendererConfig{
		TemplateDir:       "app",
		TemplateExtension: ".html",
		TemplateFS:        appFS,
		PagesDir:          "pages",
	})

	if err != nil {
		panic(err)
	}

	pageRenderer = pages.NewTemplatePageRenderer(renderer)

	activityService = services.NewActivityService(services.ActivityServiceConfig{
		DB: db,
	})

	resourceService = services.NewResourceService(services.ResourceServiceConfig{
		BaseURL: config.APIBaseURL,
		Timeout: time.Duration(config.RequestTimeout) * time.Second,
	})

	snapshotService = services.NewSnapshotService(services.SnapshotServiceConfig{
		ResourceService: resourceService,
	})

	tableRenderer = tables.NewHtmlTableRenderer()

	fetchPool := pond.NewPool(config.MaxFetchWorkers, pond.WithContext(shutdownCtx))

	/*
	 * Setup controllers
	 */
	activityController = activity.NewActivityController(activity.ActivityControllerConfig{
		ActivityService: activityService,
		Limit:           config.ActivityLimit,
		Renderer:        pageRenderer,
	})

	dashboardController = dashboard.NewDashboardController(dashboard.DashboardControllerConfig{
		ActivityService: activityService,
		FlashStore:      flashStore,
		Pool:            fetchPool,
		Renderer:        pageRenderer,
		SnapshotService: snapshotService,
		TableRenderer:   tableRenderer,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	flashMiddleware := newFlashMiddleware(
		flashStore,
		[]string{
			"/static",
			"/heartbeat",
		},
	)

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /", HandlerFunc: dashboardController.DashboardPage, Middlewares: []mux.MiddlewareFunc{flashMiddleware}},
		{Path: "GET /activity", HandlerFunc: activityController.ActivityPage},
		{Path: "GET /entities/{entity}", HandlerFunc: dashboardController.EntityPage, Middlewares: []mux.MiddlewareFunc{flashMiddleware}},
		{Path: "GET /entities/{entity}/rows", HandlerFunc: dashboardController.EntityRows},
		{Path: "DELETE /entities/{entity}/{id}", HandlerFunc: dashboardController.DeleteAction},
		{Path: "POST /entities/{entity}/{id}/delete", HandlerFunc: dashboardController.DeleteFormAction},
	}

	routerConfig := mux.RouterConfig{
		Address:              config.Host,
		Debug:                Version == "development",
		ServeStaticContent:   true,
		StaticContentRootDir: "app",
		StaticContentPrefix:  "/static/",
		StaticFS:             appFS,
		HttpWriteTimeout:     60,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Start the activity pruning job
	 */
	setupActivityPruner(shutdownCtx)

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	cancel()
	mux.Shutdown(httpServer)
	_ = fetchPool.Stop().Wait()
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

func setupActivityPruner(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		runner := func() {
			cutoff := time.Now().AddDate(0, 0, -config.ActivityRetentionDays)

			removed, err := activityService.Prune(cutoff)

			if err != nil {
				slog.Error("error pruning activity", "error", err)
				return
			}

			slog.Info("activity pruner finished.", "removed", removed, "cutoff", cutoff)
		}

		runner()

		for {
			select {
			case <-ctx.Done():
				return

			case <-ticker.C:
				runner()
			}
		}
	}()
}
