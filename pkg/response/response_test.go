package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinshelf/pinshelf-api/pkg/apperror"
)

func testCtx() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestDefaultMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		success bool
		want    string
	}{
		{"ok", http.StatusOK, true, "Success"},
		{"created", http.StatusCreated, true, "Created"},
		{"bad request", http.StatusBadRequest, false, "Error Occurred"},
		{"unauthorized", http.StatusUnauthorized, false, "Unauthorized"},
		{"not found", http.StatusNotFound, false, "Not Found"},
		{"server error", http.StatusInternalServerError, false, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testCtx()
			if tt.success {
				Success[any](c, tt.status, nil, "", nil)
			} else {
				Error[any](c, tt.status, "", nil)
			}
			body := decode(t, w)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.success, body["success"])
			assert.Equal(t, tt.want, body["message"])
		})
	}
}

func TestSuccessCarriesData(t *testing.T) {
	c, w := testCtx()
	Success(c, http.StatusOK, gin.H{"id": "42"}, "found it", gin.H{"page": 0})
	body := decode(t, w)
	assert.Equal(t, "found it", body["message"])
	assert.Equal(t, "42", body["data"].(map[string]any)["id"])
	assert.Equal(t, float64(0), body["meta"].(map[string]any)["page"])
}

func TestFromErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperror.Validation(map[string]string{"title": "is required"}), http.StatusBadRequest},
		{"declined", apperror.Declined("wrong code"), http.StatusBadRequest},
		{"unauthorized", apperror.Unauthorized(""), http.StatusUnauthorized},
		{"forbidden", apperror.Forbidden("not the owner"), http.StatusForbidden},
		{"not found", apperror.NotFound("item", "x"), http.StatusNotFound},
		{"conflict", apperror.Conflict("user", "a@b.c"), http.StatusConflict},
		{"unclassified", assertAnError(), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testCtx()
			FromError(c, tt.err)
			body := decode(t, w)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, false, body["success"])
		})
	}
}

func assertAnError() error { return errHidden{} }

type errHidden struct{}

func (errHidden) Error() string { return "pool exhausted" }

// Internal failures must never leak their message into the envelope.
func TestFromErrorHidesInternals(t *testing.T) {
	c, w := testCtx()
	FromError(c, errHidden{})
	body := decode(t, w)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.NotContains(t, w.Body.String(), "pool exhausted")
}

func TestFromErrorValidationDetails(t *testing.T) {
	c, w := testCtx()
	FromError(c, apperror.Validation(map[string]string{
		"email":    "must be a valid email",
		"password": "must be at least 6 characters long",
	}))
	body := decode(t, w)
	details, ok := body["error"].(map[string]any)
	require.True(t, ok, "details missing: %v", body)
	assert.Len(t, details, 2)
}
