package application

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinshelf/pinshelf-api/pkg/apperror"
)

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSearchByImageProxiesMultipart(t *testing.T) {
	var gotPage string
	var gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPage = r.FormValue("page")
		f, _, err := r.FormFile("image")
		require.NoError(t, err)
		b, _ := io.ReadAll(f)
		gotFile = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"results":[{"title":"lamp"}]}}`))
	}))
	defer srv.Close()

	svc := NewSearchService(srv.URL, discardLogger())
	data, err := svc.ByImage(context.Background(), "q.jpg", strings.NewReader("pixels"), "2")
	require.NoError(t, err)
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "pixels", gotFile)
	assert.JSONEq(t, `{"results":[{"title":"lamp"}]}`, string(data))
}

func TestSearchByImageDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"message":"no match found"}`))
	}))
	defer srv.Close()

	svc := NewSearchService(srv.URL, discardLogger())
	_, err := svc.ByImage(context.Background(), "q.jpg", strings.NewReader("pixels"), "")
	require.ErrorIs(t, err, apperror.ErrDeclined)
	assert.Contains(t, err.Error(), "no match found")
}

func TestSearchByImageUnconfigured(t *testing.T) {
	svc := NewSearchService("", discardLogger())
	_, err := svc.ByImage(context.Background(), "q.jpg", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, apperror.ErrDeclined)
}
