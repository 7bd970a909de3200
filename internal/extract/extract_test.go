package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestTextFromURL(t *testing.T) {
	e := New(5*time.Second, zap.NewNop())

	t.Run("strips scripts and chrome, collapses whitespace", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "InvestShield-Scanner/1.0", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><head><style>p{color:red}</style></head><body>
				<nav>Home | About</nav>
				<script>alert("tracking")</script>
				<p>Guaranteed   returns
				on every trade.</p>
				<footer>©2026</footer>
			</body></html>`))
		})

		text, err := e.TextFromURL(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "Guaranteed returns on every trade.", text)
		assert.NotContains(t, text, "alert")
		assert.NotContains(t, text, "Home")
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		_, err := e.TextFromURL(context.Background(), srv.URL)
		assert.ErrorContains(t, err, "status 404")
	})

	t.Run("empty page is an error", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><script>void 0</script></body></html>`))
		})

		_, err := e.TextFromURL(context.Background(), srv.URL)
		assert.ErrorContains(t, err, "no extractable text")
	})

	t.Run("unreachable host is an error", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {})
		url := srv.URL
		srv.Close()

		_, err := e.TextFromURL(context.Background(), url)
		assert.Error(t, err)
	})

	t.Run("cancelled context aborts the fetch", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := e.TextFromURL(ctx, srv.URL)
		assert.Error(t, err)
	})
}
