package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/tinytelemetry/hackboard/internal/datasource"
	"github.com/tinytelemetry/hackboard/internal/model"
	"github.com/tinytelemetry/hackboard/internal/teams"
)

// Server serves the static event document and read-only views over HTTP.
type Server struct {
	addr      string
	doc       *model.Document
	body      []byte
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP server for doc.
func NewServer(addr string, doc *model.Document) (*Server, error) {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	if doc == nil {
		return nil, fmt.Errorf("httpserver: nil document")
	}
	body, err := datasource.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("httpserver: encode document: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		doc:    doc,
		body:   body,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Handler builds the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/teams", s.handleTeams)
	r.GET(model.DefaultDataPath, s.handleDocument)
	r.GET("/calendar.ics", s.handleCalendar)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	})
	return c.Handler(r)
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()
	log.Info().Str("addr", listener.Addr().String()).Msg("http server listening")

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"uptime":     time.Since(s.startTime).String(),
		"team_count": len(s.doc.Teams),
	})
}

func (s *Server) handleDocument(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=60")
	c.Data(http.StatusOK, "application/json; charset=utf-8", s.body)
}

type teamJSON struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
}

func (s *Server) handleTeams(c *gin.Context) {
	date := c.Query("date")
	if date == "" && len(s.doc.Event.Dates) > 0 {
		date = s.doc.Event.Dates[0].Value
	}
	if teams.DayKey(date) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must look like D/M/Y"})
		return
	}

	visible := teams.Filter(s.doc.Teams, date)
	out := make([]teamJSON, 0, len(visible))
	for _, t := range visible {
		out = append(out, teamJSON{
			ID:          t.ID,
			Name:        t.Name,
			Date:        t.Date,
			DisplayDate: teams.DisplayDate(t, date),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"count": len(out),
		"teams": out,
	})
}

func (s *Server) handleCalendar(c *gin.Context) {
	data, err := buildCalendar(s.doc.Event, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render calendar"})
		return
	}
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
