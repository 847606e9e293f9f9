package main

import (
	"context"
	"log"

	"gorm.io/gorm/logger"

	"interntrack.com/interntrack/config"
	"interntrack.com/interntrack/core"
	"interntrack.com/interntrack/core/store"
	"interntrack.com/interntrack/core/store/gormstore"
	"interntrack.com/interntrack/core/store/memstore"
	"interntrack.com/interntrack/infrastructure/communication"
	"interntrack.com/interntrack/infrastructure/filesystem"
	"interntrack.com/interntrack/web"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}

	var st store.Store
	switch cfg.StoreDriver {
	case "memory":
		ms, err := memstore.New(cfg.SnapshotPath)
		if err != nil {
			log.Fatalf("open memory store: %v", err)
		}
		st = ms
		log.Println("using in-memory store; data is not durable across restarts unless SNAPSHOT_PATH is set")
	case "mysql", "postgres":
		gs, err := gormstore.Open(cfg.StoreDriver, cfg.DSN, logger.Warn)
		if err != nil {
			log.Fatalf("open %s store: %v", cfg.StoreDriver, err)
		}
		defer gs.Close()
		if err := gs.AutoMigrate(); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		st = gs
	default:
		log.Fatalf("unsupported store driver %q", cfg.StoreDriver)
	}

	attendanceSvc, err := core.NewAttendanceService(st.Attendance()).WithShift(cfg.ShiftStart, cfg.GraceMinutes)
	if err != nil {
		log.Fatal(err)
	}
	reportSvc := core.NewReportService(st.Reports())

	if cfg.SlackToken != "" {
		sl := communication.NewSlack(cfg.SlackToken, communication.SlackOption{InfoChannelID: cfg.SlackInfoChannel})
		attendanceSvc.WithNotifier(sl)
		reportSvc.WithNotifier(sl)
	}

	var storage filesystem.Storage
	switch cfg.ScreenshotStorage {
	case "s3":
		s3Storage, err := filesystem.NewS3Storage(ctx, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("open s3 storage: %v", err)
		}
		storage = s3Storage
	default:
		storage = filesystem.NewLocalStorage(cfg.UploadDir)
	}

	router := web.NewRouter(web.Deps{
		Store:       st,
		Attendance:  attendanceSvc,
		Reports:     reportSvc,
		Storage:     storage,
		JWTSecret:   []byte(cfg.JWTSecret),
		TokenTTL:    cfg.TokenTTL,
		CORSOrigins: cfg.CORSOrigins,
	})

	log.Printf("server running on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
