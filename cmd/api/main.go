package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	httpadp "simlok-backend/internal/adapter/http"
	mw "simlok-backend/internal/adapter/middleware"
	"simlok-backend/internal/adapter/repository/mysql"
	"simlok-backend/internal/config"
	"simlok-backend/internal/domain/user"
	"simlok-backend/internal/infrastructure/cache"
	"simlok-backend/internal/infrastructure/db"
	"simlok-backend/internal/infrastructure/queue"
	"simlok-backend/internal/infrastructure/storage"
	"simlok-backend/internal/logstream"
	"simlok-backend/internal/pdf"
	"simlok-backend/internal/qr"
	authuc "simlok-backend/internal/usecase/auth"
	notifuc "simlok-backend/internal/usecase/notification"
	scanuc "simlok-backend/internal/usecase/scan"
	subuc "simlok-backend/internal/usecase/submission"
	useruc "simlok-backend/internal/usecase/user"
	"simlok-backend/internal/usecase/workflow"
	"simlok-backend/pkg/id"
)

const sessionSweepInterval = time.Hour

type qrImager struct{}

func (qrImager) PNG(token string) ([]byte, error) { return qr.PNG(token) }

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	// The log file feeds the admin SSE stream, so everything written through
	// the standard logger lands both on stderr and on disk.
	logFile := openLogFile(cfg.LogFile)
	defer logFile.Close()
	log.SetOutput(io.MultiWriter(os.Stderr, logFile))

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	// Repositories
	users := mysql.NewUserRepository(gdb)
	sessions := mysql.NewSessionRepository(gdb)
	submissions := mysql.NewSubmissionRepository(gdb)
	scans := mysql.NewQrScanRepository(gdb)
	notifications := mysql.NewNotificationRepository(gdb)
	txRunner := mysql.NewGormUoW(gdb)

	// Domain services
	signer := qr.NewSigner(cfg.QRSecret)
	renderer := pdf.NewRenderer(qrImager{})

	var events workflow.EventPublisher
	if cfg.KafkaBroker != "" {
		producer := queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
		defer producer.Close()
		events = producer
		log.Printf("kafka events enabled on %s topic %s", cfg.KafkaBroker, cfg.KafkaTopic)
	}

	// Usecases
	authUC := authuc.NewUsecase(users, sessions, cfg.SessionTTL)
	subUC := subuc.NewUsecase(submissions)
	wfUC := workflow.NewUsecase(txRunner, signer, events)
	scanUC := scanuc.NewUsecase(submissions, scans, signer)
	userUC := useruc.NewUsecase(users, sessions)
	notifUC := notifuc.NewUsecase(notifications)

	seedSuperAdmin(users, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background workers: expired-session sweep and the log tailer behind
	// the admin live stream.
	go sweepSessions(ctx, sessions)
	stream := logstream.New()
	go logstream.NewTailer(cfg.LogFile, stream).Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover(), mw.Metrics())

	httpadp.Register(e, httpadp.Handlers{
		Base:         httpadp.NewHandler(),
		Auth:         httpadp.NewAuthHandler(authUC),
		Submission:   httpadp.NewSubmissionHandler(subUC, scans),
		Workflow:     httpadp.NewWorkflowHandler(wfUC),
		Scan:         httpadp.NewScanHandler(scanUC),
		User:         httpadp.NewUserHandler(userUC),
		Notification: httpadp.NewNotificationHandler(notifUC),
		Permit:       httpadp.NewPermitHandler(subUC, renderer),
		Upload:       httpadp.NewUploadHandler(store),
		LogStream:    httpadp.NewLogStreamHandler(stream),
	},
		mw.Session(authUC),
		mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

func openLogFile(path string) *os.File {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatalf("log dir: %v", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("log file: %v", err)
	}
	return f
}

// seedSuperAdmin creates the bootstrap account on first boot. Without it
// nobody could verify vendors or manage roles.
func seedSuperAdmin(users user.Repository, cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := users.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return
	} else if !errors.Is(err, user.ErrNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("seed admin: lookup: %v", err)
		return
	}
	if cfg.AdminPass == "" {
		log.Printf("seed admin: ADMIN_PASS not set, skipping bootstrap account")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPass), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin: hash: %v", err)
		return
	}
	now := time.Now().UTC()
	admin := &user.User{
		UserID:       id.NewID32(),
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Name:         "Super Admin",
		Role:         user.RoleSuperAdmin,
		Verified:     true,
		VerifiedAt:   &now,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Printf("seed admin: create: %v", err)
		return
	}
	log.Printf("seed admin: created %s", cfg.AdminEmail)
}

func sweepSessions(ctx context.Context, sessions interface {
	DeleteExpired(ctx context.Context) (int64, error)
}) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := sessions.DeleteExpired(ctx); err != nil {
				log.Printf("session sweep: %v", err)
			} else if n > 0 {
				log.Printf("session sweep: removed %d expired sessions", n)
			}
		}
	}
}
