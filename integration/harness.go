// Package integration runs the Datapad server end to end: the full gin
// middleware stack, the functions service and the HTTP client.
package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/datapad/audit"
	"github.com/kasuganosora/datapad/cache"
	"github.com/kasuganosora/datapad/client"
	"github.com/kasuganosora/datapad/config"
	"github.com/kasuganosora/datapad/functions"
	"github.com/kasuganosora/datapad/metrics"
	mw "github.com/kasuganosora/datapad/middleware"
	"github.com/kasuganosora/datapad/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// TestServer wraps a real HTTP server with the Datapad stack wired as in
// main.go.
type TestServer struct {
	DB      *gorm.DB
	Cache   cache.Cache
	PubSub  cache.PubSub
	Audit   *audit.Service
	Metrics *metrics.Metrics
	Server  *httptest.Server
	URL     string // http://127.0.0.1:<port>
	Sec     config.SecurityConfig
	Funcs   config.FunctionsConfig
}

// NewTestServer starts a server on an in-memory database. The server and
// its background workers stop when the test ends.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// ---- Infrastructure ----
	db := testutil.SetupTestDB(t)
	c, pubsub := testutil.SetupTestCache(t)
	logger := testutil.Logger(t)

	sec := config.SecurityConfig{
		JWTSecret:      "integration-test-secret",
		RateLimitRPS:   1000,
		RateLimitBurst: 2000,
	}
	funcs := config.FunctionsConfig{BasePath: "/.netlify/functions"}

	ctx, cancel := context.WithCancel(context.Background())
	auditSvc := audit.New(db, logger)
	m := metrics.New()

	svc := functions.New(functions.Options{
		DB:           db,
		Cache:        c,
		PubSub:       pubsub,
		InventoryTTL: time.Minute,
		Audit:        auditSvc,
		Metrics:      m,
		Logger:       logger,
	})
	listening := make(chan error, 1)
	go func() { listening <- svc.Listen(ctx) }()

	// ---- Gin HTTP Server ----
	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(ctx, rate.Limit(sec.RateLimitRPS), sec.RateLimitBurst))
	r.Use(mw.Auth(sec))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", mw.IPWhitelist(sec.MetricsAllowedIPs), gin.WrapH(m.Handler()))
	svc.Register(r, funcs, sec)

	server := httptest.NewServer(r)
	t.Cleanup(func() {
		server.Close()
		cancel()
		require.NoError(t, <-listening)
		auditSvc.Stop()
	})

	return &TestServer{
		DB:      db,
		Cache:   c,
		PubSub:  pubsub,
		Audit:   auditSvc,
		Metrics: m,
		Server:  server,
		URL:     server.URL,
		Sec:     sec,
		Funcs:   funcs,
	}
}

// Token mints a bearer token for userName.
func (ts *TestServer) Token(t *testing.T, userName string) string {
	t.Helper()
	token, err := mw.GenerateToken(userName, ts.Sec.JWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

// Client returns a functions client, authenticated as userName unless it
// is empty.
func (ts *TestServer) Client(t *testing.T, userName string) *client.Client {
	t.Helper()
	opts := []client.Option{client.WithHTTPClient(ts.Server.Client())}
	if userName != "" {
		opts = append(opts, client.WithToken(ts.Token(t, userName)))
	}
	return client.New(ts.URL+ts.Funcs.BasePath, opts...)
}

// Get sends a GET request to path.
func (ts *TestServer) Get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := ts.Server.Client().Get(ts.URL + path)
	require.NoError(t, err)
	return resp
}
