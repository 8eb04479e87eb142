package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"NavBot/internal/pipeline"
)

const (
	msgPostExecuted = "/postAllCountryNav executed.\n"
	msgPostFailed   = "/postAllCountryNav failed.\n"
	msgAwake        = "I'm awake!\n"
)

// Runner runs one fetch-format-publish cycle.
type Runner interface {
	Run(ctx context.Context) (*pipeline.Outcome, error)
}

// Server exposes the pipeline over HTTP.
type Server struct {
	Router   *gin.Engine
	pipeline Runner
	gatherer prometheus.Gatherer
	log      logrus.FieldLogger
	now      func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithMetrics serves g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger replaces the default logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) { s.log = l }
}

// WithClock replaces time.Now for the wakeup log line.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates the router and registers all routes.
func New(p Runner, opts ...Option) *Server {
	s := &Server{
		Router:   gin.New(),
		pipeline: p,
		log:      logrus.WithField("component", "server"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Router.Use(gin.Recovery(), requestid.New(), s.requestLogger())

	s.Router.POST("/postAllCountryNav", s.handlePostAllCountryNav)
	s.Router.GET("/wakeup", s.handleWakeup)
	if s.gatherer != nil {
		s.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) handlePostAllCountryNav(c *gin.Context) {
	log := s.log.WithField("request_id", requestid.Get(c))
	log.Info("/postAllCountryNav received request.")

	if _, err := s.pipeline.Run(c.Request.Context()); err != nil {
		log.WithError(err).Error("/postAllCountryNav failed")
		c.String(http.StatusInternalServerError, msgPostFailed)
		return
	}
	c.String(http.StatusOK, msgPostExecuted)
}

func (s *Server) handleWakeup(c *gin.Context) {
	s.log.WithField("woke_at", s.now().UTC().Format(time.RFC3339)).Info("[WAKEUP] instance woke up")
	c.String(http.StatusOK, msgAwake)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"request_id": requestid.Get(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Debug("request handled")
	}
}
