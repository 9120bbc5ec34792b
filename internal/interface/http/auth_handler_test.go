package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/pinshelf/pinshelf-api/internal/application"
	"github.com/pinshelf/pinshelf-api/internal/domain/entity"
	"github.com/pinshelf/pinshelf-api/internal/domain/repository"
	"github.com/pinshelf/pinshelf-api/pkg/validation"
)

// userRepoStub records lookups and always reports an empty store. The
// validation tests only care whether the service layer was reached at all.
type userRepoStub struct {
	repository.UserRepository
	lookups int
}

func (s *userRepoStub) FindOneBy(context.Context, bson.M, bson.D) (*entity.User, error) {
	s.lookups++
	return nil, repository.ErrNotFound
}

func loginRouter(stub *userRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	h := NewAuthHandler(&application.AuthService{Users: stub, Otps: nil}, nil)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestLoginValidationStopsBeforeService(t *testing.T) {
	stub := &userRepoStub{}
	r := loginRouter(stub)

	w, env := postJSON(t, r, "/auth/login", gin.H{
		"usernameOrEmail": "ab", // below minimum length
		"password":        "s3cret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "invalid payload", env["message"])

	details, ok := env["error"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "usernameOrEmail")

	assert.Equal(t, 0, stub.lookups, "invalid payload never reaches the service, no code is dispatched")
}

func TestLoginValidationCollectsAllErrors(t *testing.T) {
	stub := &userRepoStub{}
	r := loginRouter(stub)

	w, env := postJSON(t, r, "/auth/login", gin.H{
		"usernameOrEmail": "ab",
		"password":        "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	details, ok := env["error"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, details, 2, "every failing field is reported, not just the first")
	assert.Contains(t, details, "usernameOrEmail")
	assert.Contains(t, details, "password")
	assert.Equal(t, 0, stub.lookups)
}

func TestLoginUnknownUserMapsToUnauthorized(t *testing.T) {
	stub := &userRepoStub{}
	r := loginRouter(stub)

	w, env := postJSON(t, r, "/auth/login", gin.H{
		"usernameOrEmail": "nobody",
		"password":        "s3cret1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "invalid credentials", env["message"])
	assert.Equal(t, 1, stub.lookups)
}
