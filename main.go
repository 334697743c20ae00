package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	_ "github.com/lib/pq"

	"github.com/octavianissuemonitoring/parser-law-sub001/api"
	"github.com/octavianissuemonitoring/parser-law-sub001/config"
	"github.com/octavianissuemonitoring/parser-law-sub001/dao"
	"github.com/octavianissuemonitoring/parser-law-sub001/httpclient"
	"github.com/octavianissuemonitoring/parser-law-sub001/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(fmt.Sprintf("failed to load config %s: %v", configPath, err))
	}

	applyLogLevel(cfg.Log.Level)

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal(fmt.Sprintf("failed to open database: %v", err))
	}
	if err := db.Ping(); err != nil {
		log.Fatal(fmt.Sprintf("failed to connect to database: %v", err))
	}

	actDAO := &dao.ActDAO{Db: db}
	articleDAO := &dao.ArticleDAO{Db: db}
	annexDAO := &dao.AnnexDAO{Db: db}
	changeRecordDAO := &dao.ChangeRecordDAO{Db: db}

	importService := service.NewImportService(db, actDAO, articleDAO, annexDAO, changeRecordDAO)
	ingestService := &service.IngestService{
		Portal:         httpclient.NewPortalClient(time.Duration(cfg.Ingest.FetchTimeoutS) * time.Second),
		ImportService:  importService,
		MaxConcurrency: cfg.Ingest.MaxConcurrency,
	}

	app := fiber.New()
	router := app.Group("/api")

	importAPI := &api.ImportAPI{Router: router, IngestService: ingestService}
	importAPI.Register()

	actAPI := &api.ActAPI{
		Router:        router,
		ActDAO:        actDAO,
		ArticleDAO:    articleDAO,
		AnnexDAO:      annexDAO,
		ImportService: importService,
	}
	actAPI.Register()

	log.Info(fmt.Sprintf("Listening on port %d", cfg.Server.Port))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal(fmt.Sprintf("server stopped: %v", err))
	}
}

func applyLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.LevelDebug)
	case "warn":
		log.SetLevel(log.LevelWarn)
	case "error":
		log.SetLevel(log.LevelError)
	default:
		log.SetLevel(log.LevelInfo)
	}
}
