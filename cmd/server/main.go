package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/sokakpati/shelter-api/internal/config"
	"github.com/sokakpati/shelter-api/internal/database"
	"github.com/sokakpati/shelter-api/internal/handler"
	"github.com/sokakpati/shelter-api/internal/queue"
	"github.com/sokakpati/shelter-api/internal/reconcile"
	"github.com/sokakpati/shelter-api/internal/repository"
	"github.com/sokakpati/shelter-api/internal/router"
	queue_publisher "github.com/sokakpati/shelter-api/internal/service"
	"github.com/sokakpati/shelter-api/internal/upload"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil disables cache and rate limiting
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	pets := repository.NewPetRepo(db)
	forms := repository.NewFormRepo(db)
	admins := repository.NewAdminRepo(db)
	tokens := repository.NewTokenRepo(db)
	donations := repository.NewDonationRepo(db)
	team := repository.NewTeamRepo(db)

	h := router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, admins, tokens),
		AdminUsers: handler.NewAdminUserHandler(cfg, admins),
		Pets:       handler.NewPetHandler(pets),
		Forms:      handler.NewFormHandler(forms, reconcile.New(pets), queue_publisher.PublishAdoptionDecided),
		Donations:  handler.NewDonationHandler(donations),
		Team:       handler.NewTeamHandler(team),
		Upload:     handler.NewUploadHandler(upload.NewClient(cfg.ImgBBKey)),
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, h, rdb)
	router.RegisterAuth(e, h)
	router.RegisterAdmin(e, h, cfg.JWTSecret)

	// Background audit trail for adoption decisions; runs its own
	// reconnect loop for the broker.
	go func() {
		if err := queue.StartAdoptionConsumer(); err != nil {
			log.Printf("adoption consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
