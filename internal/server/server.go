package server

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/driftnet/internal/field"
)

// ThemeStore persists the light/dark choice.
type ThemeStore interface {
	SetTheme(ctx context.Context, mode field.Mode) error
}

type Options struct {
	Addr   string
	FPS    int
	Store  ThemeStore
	Logger *slog.Logger
}

// Server exposes a Scene over HTTP.
type Server struct {
	scene  *Scene
	opts   Options
	log    *slog.Logger
	engine *gin.Engine
}

type viewportRequest struct {
	Width  float64 `json:"width" binding:"required,gt=0"`
	Height float64 `json:"height" binding:"required,gt=0"`
}

type pointerRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type themeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func New(scene *Scene, opts Options) *Server {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{scene: scene, opts: opts, log: logger}
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(template.Must(template.New("index.html").Parse(indexHTML)))

	r.GET("/", s.index)
	r.GET("/frame.svg", s.frame)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.scene.Stats())
	})
	api.GET("/theme", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"mode": s.scene.Mode().String()})
	})
	api.PUT("/theme", s.setTheme)
	api.POST("/viewport", s.setViewport)
	api.POST("/pointer", s.movePointer)
	api.DELETE("/pointer", func(c *gin.Context) {
		s.scene.LeavePointer()
		c.Status(http.StatusNoContent)
	})

	s.engine = r
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler { return s.engine }

// Run ticks the scene and serves HTTP until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.scene.Run(ctx, s.opts.FPS)

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("server_listening", "addr", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	s.log.Info("server_shutdown")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.scene.Close()
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.Request.URL.Path == "/frame.svg" {
			return
		}
		s.log.Debug("http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"mode":     s.scene.Mode().String(),
		"interval": 1000 / s.opts.FPS,
	})
}

func (s *Server) frame(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/svg+xml", []byte(s.scene.SVG()))
}

func (s *Server) setTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := field.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.scene.SetMode(mode)
	if s.opts.Store != nil {
		if err := s.opts.Store.SetTheme(c.Request.Context(), mode); err != nil {
			s.log.Warn("theme_save_failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save theme"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode.String()})
}

func (s *Server) setViewport(c *gin.Context) {
	var req viewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.scene.Resize(req.Width, req.Height); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.scene.Stats())
}

func (s *Server) movePointer(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.scene.MovePointer(req.X, req.Y)
	c.Status(http.StatusNoContent)
}
