package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	catalogservice "github.com/smallbiznis/storefront/internal/catalog/service"
	"github.com/smallbiznis/storefront/internal/config"
	inquiryservice "github.com/smallbiznis/storefront/internal/inquiry/service"
	"github.com/smallbiznis/storefront/internal/observability"
	obsmetrics "github.com/smallbiznis/storefront/internal/observability/metrics"
	orderservice "github.com/smallbiznis/storefront/internal/order/service"
	"github.com/smallbiznis/storefront/internal/providers/pdf"
	"github.com/smallbiznis/storefront/internal/ratelimit"
	"github.com/smallbiznis/storefront/internal/storage/memory"
	"github.com/smallbiznis/storefront/internal/upload"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	srv   *Server
	store *memory.Store
	cfg   config.Config
}

type serverOption func(*config.Config)

func withEnvironment(env string) serverOption {
	return func(cfg *config.Config) { cfg.Environment = env }
}

func withFormLimit(perMinute int64) serverOption {
	return func(cfg *config.Config) { cfg.FormRateLimitPerMinute = perMinute }
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	return newTestServerWithCatalog(t, nil, opts...)
}

// newTestServerWithCatalog swaps in catalogSvc when it is non-nil.
func newTestServerWithCatalog(t *testing.T, catalogSvc catalogdomain.Service, opts ...serverOption) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	node, err := snowflake.NewNode(8)
	require.NoError(t, err)

	cfg := config.Config{
		Environment: "test",
		Upload: config.UploadConfig{
			Dir:       t.TempDir(),
			AssetsDir: t.TempDir(),
			MaxBytes:  1 << 20,
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	log := zap.NewNop()
	store := memory.New(node, memory.WithoutSeed())
	if catalogSvc == nil {
		catalogSvc = catalogservice.New(catalogservice.Params{Log: log, Repo: store})
	}

	obsCfg := observability.Config{ServiceName: "storefront", Environment: cfg.Environment}
	httpMetrics := obsmetrics.NewHTTPMetrics(obsmetrics.Config{ServiceName: "storefront", Environment: cfg.Environment})

	srv := NewServer(ServerParams{
		Gin:         NewEngine(obsCfg, httpMetrics),
		Cfg:         cfg,
		Log:         log,
		Storage:     store,
		CatalogSvc:  catalogSvc,
		OrderSvc:    orderservice.New(orderservice.Params{Log: log, Repo: store}),
		InquirySvc:  inquiryservice.New(inquiryservice.Params{Log: log, Repo: store}),
		Uploads:     upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxBytes, log),
		Receipts:    pdf.New(),
		Limiter:     ratelimit.NewFormLimiter(cfg, nil, log),
		Images:      config.NewStaticStorefrontConfigHolder(config.DefaultStorefrontConfig()),
		HTTPMetrics: httpMetrics,
	})
	return &testServer{srv: srv, store: store, cfg: cfg}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Errors  []struct {
			Field string `json:"field"`
			Code  string `json:"code"`
		} `json:"errors"`
	} `json:"error"`
}

func writeFile(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0o644))
}
