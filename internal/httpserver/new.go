package httpserver

import (
	"database/sql"
	"errors"

	"widget-srv/config"
	"widget-srv/internal/widget"
	"widget-srv/pkg/discord"
	"widget-srv/pkg/kafka"
	"widget-srv/pkg/log"
	pkgMinio "widget-srv/pkg/minio"
	pkgRedis "widget-srv/pkg/redis"
	"widget-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string

	// Database Configuration
	postgresDB  *sql.DB
	redisClient pkgRedis.IRedis

	// Storage & Messaging Configuration
	minio    pkgMinio.MinIO
	producer kafka.IProducer

	// Authentication & Security Configuration
	config       *config.Config
	jwtManager   scope.Manager
	cookieConfig config.CookieConfig

	// Cross-domain usecases wired during mapHandlers.
	widgetUC widget.UseCase

	// Monitoring & Notification Configuration
	discord discord.IDiscord
}

type Config struct {
	// Server Configuration
	Host        string
	Port        int
	Mode        string
	Environment string

	// Database Configuration
	PostgresDB  *sql.DB
	RedisClient pkgRedis.IRedis

	// Storage & Messaging Configuration
	MinIO    pkgMinio.MinIO
	Producer kafka.IProducer

	// Authentication & Security Configuration
	Config       *config.Config
	JWTManager   scope.Manager
	CookieConfig config.CookieConfig

	// Monitoring & Notification Configuration
	Discord discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		// Server Configuration
		l:           logger,
		gin:         gin.New(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,

		// Database Configuration
		postgresDB:  cfg.PostgresDB,
		redisClient: cfg.RedisClient,

		// Storage & Messaging Configuration
		minio:    cfg.MinIO,
		producer: cfg.Producer,

		// Authentication & Security Configuration
		config:       cfg.Config,
		jwtManager:   cfg.JWTManager,
		cookieConfig: cfg.CookieConfig,

		// Monitoring & Notification Configuration
		discord: cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	// Server Configuration
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}

	// Database Configuration
	if srv.postgresDB == nil {
		return errors.New("postgresDB is required")
	}
	if srv.redisClient == nil {
		return errors.New("redisClient is required")
	}

	// Storage & Messaging Configuration
	if srv.minio == nil {
		return errors.New("minio is required")
	}
	if srv.producer == nil {
		return errors.New("producer is required")
	}

	// Authentication & Security Configuration
	if srv.config == nil {
		return errors.New("config is required")
	}
	if srv.jwtManager == nil {
		return errors.New("jwtManager is required")
	}

	return nil
}
