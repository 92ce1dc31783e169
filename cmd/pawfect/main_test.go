package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	logpkg "github.com/pranavi39/pawfect/internal/logger"
)

const productsCSV = `Pet,Product,Price,Description
Dog,Chew Toy,$9.99,durable chew toy for puppies
Dog,Kibble,$19.99,grain-free dog food
Cat,Catnip,$4.50,catnip toy
`

func writeProducts(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(productsCSV), 0o600))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"pawfect"}, args...))
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	products := writeProducts(t)

	t.Run("prints matching products", func(t *testing.T) {
		out, err := runApp(t, "search", "--products", products, "--category", "Dog", "--query", "toy")
		require.NoError(t, err)
		assert.Contains(t, out, "Chew Toy")
		assert.NotContains(t, out, "Kibble")
		assert.NotContains(t, out, "Catnip")
		assert.Contains(t, out, "1 result(s)")
	})

	t.Run("no match", func(t *testing.T) {
		out, err := runApp(t, "search", "--products", products, "--category", "Dog", "-q", "nonexistentterm12345")
		require.NoError(t, err)
		assert.Contains(t, out, "0 result(s)")
	})

	t.Run("query is required", func(t *testing.T) {
		_, err := runApp(t, "search", "--products", products, "--category", "Dog")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query")
	})

	t.Run("missing products file", func(t *testing.T) {
		_, err := runApp(t, "search", "--products", filepath.Join(t.TempDir(), "none.csv"),
			"--category", "Dog", "--query", "toy")
		require.Error(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "dev"), "got %q", out)
}

func TestJSONRecoverer(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := jsonRecoverer(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("vocabulary mismatch")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/search", http.NoBody))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "internal_error", body["code"])
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestWideEventMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	var sawLogger bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = logpkg.FromContext(r.Context()) != nil
		w.WriteHeader(http.StatusTeapot)
	})
	handler := chiMiddleware.RequestID(wideEventMiddleware(zap.New(core))(inner))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/categories", http.NoBody))

	assert.True(t, sawLogger)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "/categories", fields["path"])
	assert.NotEmpty(t, fields["request_id"])
}
