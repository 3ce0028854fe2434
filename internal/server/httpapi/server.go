// Package httpapi exposes the JSON API: the auth endpoints and the
// token-guarded book endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bookworm/internal/logging"
	"bookworm/internal/server/models"
	"bookworm/internal/server/services"
)

type userService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, *models.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type bookService interface {
	Create(ctx context.Context, userID string, req *services.CreateBookRequest) (*models.Book, error)
	List(ctx context.Context, page, limit int) (*services.BookPage, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Book, error)
	Delete(ctx context.Context, userID, bookID string) error
}

type Server struct {
	address   string
	users     userService
	books     bookService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, us userService, bs bookService, secretKey string) *Server {
	return &Server{
		address:   a,
		logger:    l.With("module", "httpapi"),
		users:     us,
		books:     bs,
		jwtSecret: []byte(secretKey),
	}
}

func (s *Server) initRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	// Mobile and web clients hit the API cross-origin.
	router.Use(cors.Default())

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.POST("/refresh", s.refreshTokens)
	}

	booksGroup := router.Group("/api/books")
	booksGroup.Use(s.authMiddleware())
	{
		booksGroup.POST("", s.createBook)
		booksGroup.GET("", s.listBooks)
		booksGroup.GET("/user", s.listMyBooks)
		booksGroup.DELETE("/:id", s.deleteBook)
	}

	return router
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.initRoutes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
