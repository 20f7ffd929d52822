// Package httpapi implements the `serve` subcommand's HTTP surface: a
// classify endpoint over an already-loaded Model, a health check, a
// Prometheus scrape endpoint and a websocket stream of learner progress
// events.
package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"
	"github.com/gorilla/websocket"
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/exporters/prometheus"

	"github.com/awnumar/memguard"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/model"
)

// Server bundles everything serve needs: a model cache, an optional
// bearer token and a logger.
type Server struct {
	cache   *ModelCache
	token   *memguard.Enclave
	logger  *slog.Logger
	catalog *dataset.Catalog

	upgrader websocket.Upgrader
}

// NewServer returns a Server. apiToken may be empty to disable auth;
// when set it is sealed in a memguard enclave for the server's
// lifetime rather than kept as a plain string.
func NewServer(cache *ModelCache, catalog *dataset.Catalog, apiToken string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	var token *memguard.Enclave
	if apiToken != "" {
		token = memguard.NewEnclave([]byte(apiToken))
	}
	return &Server{
		cache:   cache,
		token:   token,
		logger:  logger,
		catalog: catalog,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Router builds the gin engine with every route mounted, instrumented
// with otelgin and, when an API token is configured, bearer auth.
func (s *Server) Router(registry *prometheus.Exporter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), otelgin.Middleware("ripperk"))

	v1 := r.Group("/v1")
	if s.token != nil {
		v1.Use(s.requireBearerToken)
	}
	v1.GET("/healthz", s.handleHealthz)
	v1.POST("/classify", s.handleClassify)
	v1.GET("/learn/stream", s.handleLearnStream)

	r.GET("/metrics", s.handleMetrics())

	return r
}

func (s *Server) requireBearerToken(c *gin.Context) {
	want, err := s.token.Open()
	if err != nil {
		c.AbortWithStatusJSON(500, gin.H{"error": "auth unavailable"})
		return
	}
	defer want.Destroy()

	got := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(got) <= len(prefix) || got[:len(prefix)] != prefix || got[len(prefix):] != string(want.Bytes()) {
		c.AbortWithStatusJSON(401, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// ClassifyRequest is the POST /v1/classify request body.
type ClassifyRequest struct {
	Attributes map[string]string `json:"attributes" binding:"required"`
}

// ClassifyResponse is the POST /v1/classify response body. RunID is
// tagged as strfmt.UUID rather than a plain string for OpenAPI-style
// schema fidelity on the generated API docs.
type ClassifyResponse struct {
	Class string      `json:"class"`
	RunID strfmt.UUID `json:"run_id"`
}

func (s *Server) handleClassify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	modelPath := c.Query("model")
	if modelPath == "" {
		c.JSON(400, gin.H{"error": "missing model query parameter"})
		return
	}

	m, err := s.cache.Get(c.Request.Context(), modelPath, s.catalog)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	inst := requestToInstance(req)
	class := m.Classify(inst)

	c.JSON(200, ClassifyResponse{Class: class, RunID: newRunID()})
}

func requestToInstance(req ClassifyRequest) dataset.Instance {
	attrs := make([]dataset.Attribute, 0, len(req.Attributes))
	for name, raw := range req.Attributes {
		attrs = append(attrs, dataset.ParseCellAttribute(name, raw))
	}
	return dataset.Instance{Attributes: attrs}
}

func (s *Server) handleMetrics() gin.HandlerFunc {
	handler := registryHandler()
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// handleLearnStream upgrades to a websocket and relays learner progress
// events from events until the client disconnects or events closes.
func (s *Server) handleLearnStream(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	StreamModel(conn, s, c)
}
