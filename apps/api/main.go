package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	archiveshandler "github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/handler"
	archivesrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/repo"
	archivesservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/service"
	certificateshandler "github.com/Ashhiii/BFPSYSTEM-sub000/domains/certificates/be/handler"
	certificatesservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/certificates/be/service"
	recordshandler "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/handler"
	recordsrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/repo"
	recordsservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/service"
	renewalshandler "github.com/Ashhiii/BFPSYSTEM-sub000/domains/renewals/be/handler"
	renewalsrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/renewals/be/repo"
	renewalsservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/renewals/be/service"
	spreadsheethandler "github.com/Ashhiii/BFPSYSTEM-sub000/domains/spreadsheet/be/handler"
	spreadsheetservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/spreadsheet/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/gcp"
	platformlogging "github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/logging"
	platformmiddleware "github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/middleware"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	platformstorage "github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/storage"
)

type config struct {
	Port            string        `env:"PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	GCloudProject   string        `env:"GCLOUD_PROJECT"`
	StoreBackend    string        `env:"STORE_BACKEND" envDefault:"firestore"` // firestore | memory
	ExportBackend   string        `env:"EXPORT_BACKEND" envDefault:"gcs"`     // gcs | local
	ExportBucket    string        `env:"EXPORT_BUCKET"`                       // required when EXPORT_BACKEND=gcs
	ExportLocalDir  string        `env:"EXPORT_LOCAL_DIR" envDefault:"./.data/exports"`
	PDFBaseURL      string        `env:"PDF_BASE_URL" envDefault:"http://localhost:3000"`
	ContractDir     string        `env:"CONTRACT_DIR" envDefault:"contracts"`
}

// stores bundles the per-domain repositories for one backend choice.
type stores struct {
	records  recordsservice.Repository
	archives archivesservice.Repository
	renewals renewalsservice.Repository
}

func main() {
	ctx := context.Background()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := platformlogging.NewLogger(platformlogging.Config{
		Component: "records-api",
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
	})
	if err != nil {
		log.Fatalf("init zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	st := buildStores(ctx, cfg, logger)

	recordsService := recordsservice.New(st.records)
	archivesService := archivesservice.New(st.archives)
	renewalsService := renewalsservice.New(st.renewals)
	certificatesService := certificatesservice.New(cfg.PDFBaseURL)

	sink := buildExportSink(ctx, cfg, logger)
	spreadsheetService := spreadsheetservice.New(
		recordsService,
		archivesService,
		persistence.NewRowValidator(),
		sink,
	)

	recordsHTTPHandler := recordshandler.New(recordsService, logger)
	archivesHTTPHandler := archiveshandler.New(archivesService, recordsService, logger)
	renewalsHTTPHandler := renewalshandler.New(renewalsService, archivesService, logger)
	spreadsheetHTTPHandler := spreadsheethandler.New(spreadsheetService, recordsService, logger)
	certificatesHTTPHandler := certificateshandler.New(certificatesService, logger)

	rootRouter := chi.NewRouter()

	rootRouter.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		chimw.Timeout(cfg.RequestTimeout),
		platformmiddleware.DefaultCORS(),
	)

	rootRouter.Use(platformlogging.RequestLogger(logger))

	rootRouter.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rootRouter.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	registerDocsRoutes(rootRouter, logger, cfg.ContractDir)

	apiRouter := chi.NewRouter()

	mountValidated(apiRouter, logger, cfg, "records.yaml", "/records", recordsHTTPHandler.Routes())
	mountValidated(apiRouter, logger, cfg, "archives.yaml", "/archives", archivesHTTPHandler.Routes())
	mountValidated(apiRouter, logger, cfg, "renewals.yaml", "/renewals", renewalsHTTPHandler.Routes())
	mountValidated(apiRouter, logger, cfg, "spreadsheet.yaml", "/spreadsheet", spreadsheetHTTPHandler.Routes())
	mountValidated(apiRouter, logger, cfg, "certificates.yaml", "/pdf", certificatesHTTPHandler.Routes())

	rootRouter.Mount("/api/v1", apiRouter)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rootRouter,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Info("starting api server",
			zap.String("port", cfg.Port),
			zap.String("store_backend", cfg.StoreBackend),
			zap.String("export_backend", cfg.ExportBackend),
		)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildStores selects the persistence backend. Firestore is the production
// path; the in-memory stores keep local development free of credentials.
func buildStores(ctx context.Context, cfg config, logger *zap.Logger) stores {
	switch cfg.StoreBackend {
	case "firestore":
		client, err := gcp.InitFirestore(ctx, cfg.GCloudProject)
		if err != nil {
			logger.Fatal("init firestore client", zap.Error(err))
		}
		return stores{
			records:  recordsrepo.NewFirestoreRepository(client),
			archives: archivesrepo.NewFirestoreRepository(client),
			renewals: renewalsrepo.NewFirestoreRepository(client),
		}
	case "memory":
		logger.Warn("using in-memory stores; data is lost on restart")
		current := recordsrepo.NewMemoryRepository()
		return stores{
			records:  current,
			archives: archivesrepo.NewMemoryRepository(current),
			renewals: renewalsrepo.NewMemoryRepository(current),
		}
	default:
		logger.Fatal("invalid STORE_BACKEND (use firestore or memory)", zap.String("backend", cfg.StoreBackend))
		return stores{}
	}
}

// buildExportSink selects where workbook exports are written.
func buildExportSink(ctx context.Context, cfg config, logger *zap.Logger) platformstorage.Sink {
	switch cfg.ExportBackend {
	case "gcs":
		if cfg.ExportBucket == "" {
			logger.Fatal("export bucket required when EXPORT_BACKEND=gcs")
		}
		gcsClient, err := storage.NewClient(ctx)
		if err != nil {
			logger.Fatal("init gcs client", zap.Error(err))
		}
		return platformstorage.NewGCSSink(gcsClient, cfg.ExportBucket)
	case "local":
		if strings.TrimSpace(cfg.ExportLocalDir) == "" {
			logger.Fatal("export local dir required when EXPORT_BACKEND=local")
		}
		return platformstorage.NewLocalSink(cfg.ExportLocalDir)
	default:
		logger.Fatal("invalid EXPORT_BACKEND (use gcs or local)", zap.String("backend", cfg.ExportBackend))
		return nil
	}
}

// mountValidated attaches a domain router behind its OpenAPI contract
// validator. Each domain gets its own group so the validator only sees
// requests routed to it.
func mountValidated(router chi.Router, logger *zap.Logger, cfg config, contractFile, pattern string, h http.Handler) {
	validator, err := platformmiddleware.NewSpecValidator(cfg.ContractDir + "/" + contractFile)
	if err != nil {
		logger.Fatal("build contract validator", zap.String("contract", contractFile), zap.Error(err))
	}
	router.Group(func(r chi.Router) {
		r.Use(validator)
		r.Mount(pattern, h)
	})
}
