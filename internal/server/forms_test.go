package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitForms(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/corporate-inquiry", map[string]any{
		"name":     "Budi",
		"email":    "budi@example.com",
		"company":  "PT Roti",
		"phone":    "0811111111",
		"message":  "Hampers for 50 people",
		"quantity": 50,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	inquiry := decode[struct {
		Inquiry struct {
			ID       string `json:"id"`
			Company  string `json:"company"`
			Quantity *int64 `json:"quantity"`
		} `json:"inquiry"`
	}](t, w).Inquiry
	assert.NotEmpty(t, inquiry.ID)
	require.NotNil(t, inquiry.Quantity)
	assert.Equal(t, int64(50), *inquiry.Quantity)

	w = ts.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Ani",
		"email":   "ani@example.com",
		"subject": "Opening hours",
		"message": "Are you open on Sunday?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"contact"`)

	w = ts.do(t, http.MethodPost, "/api/contact", map[string]any{"name": "Ani", "email": "ani@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decode[errorBody](t, w).Error.Type)
}

func TestSubscribeRejectsDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/newsletter", map[string]any{"email": "Fan@Example.com "})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	newsletter := decode[struct {
		Newsletter struct {
			Email string `json:"email"`
		} `json:"newsletter"`
	}](t, w).Newsletter
	assert.Equal(t, "fan@example.com", newsletter.Email)

	w = ts.do(t, http.MethodPost, "/api/newsletter", map[string]any{"email": "fan@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, "email", body.Error.Errors[0].Field)
	assert.Equal(t, "already_subscribed", body.Error.Errors[0].Code)
}

func TestFormRateLimit(t *testing.T) {
	ts := newTestServer(t, withFormLimit(1))

	w := ts.do(t, http.MethodPost, "/api/newsletter", map[string]any{"email": "one@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = ts.do(t, http.MethodPost, "/api/newsletter", map[string]any{"email": "two@example.com"})
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate_limited", decode[errorBody](t, w).Error.Type)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Buckets are per endpoint.
	w = ts.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name": "Ani", "email": "ani@example.com", "subject": "Hi", "message": "Hello",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

// 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func uploadRequest(t *testing.T, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	ts := newTestServer(t)

	w := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(w, uploadRequest(t, "image", "bun.png", "image/png", pngBytes))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[struct {
		Message  string `json:"message"`
		ImageURL string `json:"imageUrl"`
	}](t, w)
	assert.Equal(t, "File uploaded successfully", resp.Message)
	assert.Regexp(t, regexp.MustCompile(`^\d{13}-.+\.png$`), resp.ImageURL)

	stored, err := os.ReadFile(filepath.Join(ts.cfg.Upload.Dir, resp.ImageURL))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)

	// The stored file is served back from the uploads route.
	w = ts.do(t, http.MethodGet, "/attached_assets/"+resp.ImageURL, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestUploadImageRejects(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "wrong field", req: uploadRequest(t, "file", "bun.png", "image/png", pngBytes)},
		{name: "not an image", req: uploadRequest(t, "image", "notes.txt", "text/plain", []byte("hello"))},
		{name: "disguised text", req: uploadRequest(t, "image", "bun.png", "image/png", []byte("hello"))},
		{name: "svg", req: uploadRequest(t, "image", "logo.svg", "image/svg+xml", []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ts.srv.Engine().ServeHTTP(w, tt.req)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			body := decode[errorBody](t, w)
			require.NotEmpty(t, body.Error.Errors)
			assert.Equal(t, "image", body.Error.Errors[0].Field)
		})
	}
}
