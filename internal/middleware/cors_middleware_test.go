package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSEngine(origins ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORS(origins))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return engine
}

func request(engine http.Handler, method, origin string, preflight bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCORSOrigins(t *testing.T) {
	engine := newCORSEngine("http://localhost:*", "https://app.example")

	cases := []struct {
		origin string
		want   string
	}{
		{"http://localhost:5173", "http://localhost:5173"},
		{"http://localhost:3000", "http://localhost:3000"},
		{"http://localhost:3000/evil", ""},
		{"https://app.example", "https://app.example"},
		{"https://other.example", ""},
	}
	for _, tc := range cases {
		rec := request(engine, http.MethodGet, tc.origin, false)
		assert.Equal(t, http.StatusOK, rec.Code, tc.origin)
		assert.Equal(t, tc.want, rec.Header().Get("Access-Control-Allow-Origin"), tc.origin)
	}
}

func TestCORSWildcard(t *testing.T) {
	rec := request(newCORSEngine("*"), http.MethodGet, "https://anywhere.example", false)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Vary"))
}

func TestCORSPreflight(t *testing.T) {
	engine := newCORSEngine("https://app.example")

	rec := request(engine, http.MethodOptions, "https://app.example", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, allowMethods, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))

	rec = request(engine, http.MethodOptions, "https://app.example", false)
	assert.NotEqual(t, http.StatusNoContent, rec.Code)
}
