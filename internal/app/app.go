// Package app wires repositories, services and handlers into one gin engine.
package app

import (
	"net/http"

	"wallpapers/internal/config"
	"wallpapers/internal/middleware"
	"wallpapers/internal/modules/auth"
	"wallpapers/internal/modules/favorite"
	"wallpapers/internal/modules/feed"
	"wallpapers/internal/modules/media"
	"wallpapers/internal/modules/users"
	"wallpapers/internal/modules/views"
	"wallpapers/internal/modules/wallpaper"
	jwtsvc "wallpapers/internal/pkg/jwt"
	"wallpapers/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App is the assembled HTTP application.
type App struct {
	Router *gin.Engine
	Feed   *feed.Hub
}

// Option tweaks wiring, mostly for tests.
type Option func(*options)

type options struct {
	wallpaperOpts []wallpaper.Option
	accessLog     bool
}

func WithWallpaperOptions(opts ...wallpaper.Option) Option {
	return func(o *options) { o.wallpaperOpts = append(o.wallpaperOpts, opts...) }
}

func WithoutAccessLog() Option {
	return func(o *options) { o.accessLog = false }
}

// New builds the application. rdb may be nil, views are then counted without
// de-duplication.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, opts ...Option) *App {
	o := options{accessLog: true}
	for _, opt := range opts {
		opt(&o)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	wallpaperRepo := repository.NewWallpaperRepository(db)
	tagRepo := repository.NewTagRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	jwt := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := feed.NewHub()

	var counter wallpaper.ViewCounter = views.NewDBCounter(wallpaperRepo)
	if rdb != nil {
		counter = views.NewDedupCounter(rdb, wallpaperRepo, cfg.ViewDedupWindow)
	}

	// Services
	mediaService := media.NewService(media.NewRepository(db), cfg.UploadDir, cfg.StaticURLBase, cfg.MaxUploadBytes)
	wallpaperService := wallpaper.NewService(
		wallpaperRepo,
		tagRepo,
		favoriteRepo,
		mediaService,
		counter,
		append([]wallpaper.Option{wallpaper.WithNotifier(hub)}, o.wallpaperOpts...)...,
	)
	favoriteService := favorite.NewService(favoriteRepo, wallpaperRepo, userRepo)
	usersService := users.NewService(userRepo, wallpaperRepo, favoriteRepo)
	authService := auth.NewService(userRepo, jwt, auth.LogoutConfig{
		Domain:   cfg.AuthDomain,
		ClientID: cfg.AuthClientID,
		ReturnTo: cfg.AppRootURL,
	})

	// Handlers
	wallpaperHandler := wallpaper.NewHandler(wallpaperService)
	favoriteHandler := favorite.NewHandler(favoriteService)
	usersHandler := users.NewHandler(usersService)
	authHandler := auth.NewHandler(authService)
	feedHandler := feed.NewWSHandler(hub, cfg.CORSAllowedOrigins)

	r := gin.New()
	if o.accessLog {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Static(cfg.StaticURLBase, cfg.UploadDir)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	feedHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public (token optional)
		public := v1.Group("")
		public.Use(middleware.OptionalJWTAuth(jwt), middleware.LoadActor(userRepo))

		// protected
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(jwt), middleware.LoadActor(userRepo))

		authHandler.RegisterPublicRoutes(public)
		authHandler.RegisterProtectedRoutes(protected)
		wallpaperHandler.RegisterRoutes(public, protected)
		favoriteHandler.RegisterRoutes(public, protected)
		usersHandler.RegisterRoutes(public)
	}

	return &App{Router: r, Feed: hub}
}

// Close disconnects feed subscribers.
func (a *App) Close() {
	a.Feed.Close()
}
