package validation

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Username string `json:"username" binding:"required,urlname"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func bindJSON(t *testing.T, body string, dst any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c.ShouldBindJSON(dst)
}

func TestMain(m *testing.M) {
	Init()
	m.Run()
}

// Every missing required field must produce its own entry, not just the first.
func TestCollectAllErrors(t *testing.T) {
	var p registerPayload
	err := bindJSON(t, `{}`, &p)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Len(t, details, 3)
	assert.Equal(t, "is required", details["username"])
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "is required", details["password"])
}

func TestFieldRules(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{"short password", `{"username":"maker1","email":"a@b.co","password":"12345"}`, "password", "must be at least 6 characters long"},
		{"bad email", `{"username":"maker1","email":"nope","password":"123456"}`, "email", "must be a valid email"},
		{"uppercase username", `{"username":"Maker1","email":"a@b.co","password":"123456"}`, "username", "must be lowercase alphanumeric"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p registerPayload
			err := bindJSON(t, tt.body, &p)
			require.Error(t, err)
			details := ToDetails(err)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}

func TestOTPCodeLength(t *testing.T) {
	type verifyPayload struct {
		Code string `json:"code" binding:"required,otpcode"`
	}
	var p verifyPayload
	err := bindJSON(t, `{"code":"12345"}`, &p)
	require.Error(t, err)
	assert.Equal(t, "must be a 6-digit code", ToDetails(err)["code"])

	require.NoError(t, bindJSON(t, `{"code":"123456"}`, &p))
}

// A numeric JSON value for a string field is a type error, not a coercion.
func TestStrictTypes(t *testing.T) {
	var p registerPayload
	err := bindJSON(t, `{"username":42,"email":"a@b.co","password":"123456"}`, &p)
	require.Error(t, err)
	details := ToDetails(err)
	assert.Contains(t, details["username"], "wrong type")
}

func TestInvalidJSON(t *testing.T) {
	var p registerPayload
	err := bindJSON(t, `{]`, &p)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}
