package server

import (
	"backend-pacetrack/internal/auth"
	"backend-pacetrack/internal/config"
	"backend-pacetrack/internal/db"
	"backend-pacetrack/internal/history"
	"backend-pacetrack/internal/stream"
	"backend-pacetrack/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	// A nil pool must stay a nil Querier, not a typed nil inside the
	// interface.
	var querier db.Querier
	if s.DB != nil {
		querier = s.DB
	}

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, querier))
	tracking.RegisterRoutes(s.App.Group("/tracking"), tracking.NewService(querier, s.Stream, s.Cfg.TrackerOptions()), jwtMiddleware)
	history.RegisterRoutes(s.App.Group("/history"), history.NewService(querier), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
