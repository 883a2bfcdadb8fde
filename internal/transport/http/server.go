package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "todoapp/internal/app"
	"todoapp/internal/bootstrap"
	"todoapp/internal/cache"
	"todoapp/internal/repository"
	"todoapp/internal/session"
	"todoapp/internal/transport/http/handler"
	"todoapp/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	todoRepo := repository.NewTodoRepository(app.MySQL)
	sessionStore := session.NewStore(
		app.Redis,
		time.Duration(app.Config.Session.TTLMinute)*time.Minute,
		time.Duration(app.Config.Session.RememberTTLMinute)*time.Minute,
	)
	listCache := cache.NewTodoListCache(
		app.Redis,
		time.Duration(app.Config.Redis.TodoListTTLSeconds)*time.Second,
	)

	authService := appsvc.NewAuthService(userRepo, sessionStore)
	todoService := appsvc.NewTodoService(todoRepo, listCache)
	authHandler := handler.NewAuthHandler(authService, app.Config.Session)
	todoHandler := handler.NewTodoHandler(todoService)

	requireLogin := middleware.RequireLogin(app.Config.Session.CookieName, sessionStore)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", requireLogin, authHandler.Me)

	todoGroup := v1.Group("/todos")
	todoGroup.Use(requireLogin)
	todoGroup.GET("", todoHandler.List)
	todoGroup.POST("", todoHandler.Create)
	todoGroup.GET("/:id", todoHandler.Get)
	todoGroup.PUT("/:id", todoHandler.Update)
	todoGroup.DELETE("/:id", todoHandler.Delete)

	return router
}
