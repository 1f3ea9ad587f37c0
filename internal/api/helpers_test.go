package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"waste_tracker/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// setupRouter returns a fully wired engine over a fresh SQLite database
func setupRouter(t *testing.T, rdb *redis.Client) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gdb := testutil.OpenDB(t)
	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:        gdb,
		Redis:     rdb,
		JWTSecret: testutil.Secret,
		TokenTTL:  time.Hour,
		CacheTTL:  time.Minute,
	})
	return r, gdb
}

// doJSON sends body as JSON with an optional bearer token
func doJSON(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals the recorded body into v
func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}
