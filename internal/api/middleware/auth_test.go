package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tubo-go/internal/config"
	"tubo-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
app:
  name: "tubo-go-test"
  mode: "test"
jwt:
  secret: "test-secret-key"
  expire_hours: 24
`

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	dir, err := os.MkdirTemp("", "tubo-middleware-test")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if _, err := config.Load(path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newAuthRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		userID, ok := GetCurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "authenticated": ok})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredMissingToken(t *testing.T) {
	r := newAuthRouter(AuthRequired())

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 非 Bearer 格式同样拒绝
	w = doRequest(r, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	r := newAuthRouter(AuthRequired())

	w := doRequest(r, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredValidToken(t *testing.T) {
	token, err := utils.GenerateToken(7)
	require.NoError(t, err)

	r := newAuthRouter(AuthRequired())

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthOptional(t *testing.T) {
	r := newAuthRouter(AuthOptional())

	// 没有令牌照常放行，只是没有用户身份
	w := doRequest(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	// 烂令牌也放行
	w = doRequest(r, "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	// 合法令牌注入用户 ID
	token, err := utils.GenerateToken(9)
	require.NoError(t, err)
	w = doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":9`)
}

func TestAdminRequired(t *testing.T) {
	roles := map[int64]string{1: "admin", 2: "user"}
	fetcher := func(userID int64) (string, error) {
		role, ok := roles[userID]
		if !ok {
			return "", fmt.Errorf("user not found")
		}
		return role, nil
	}

	r := gin.New()
	r.GET("/admin", AuthRequired(), AdminRequired(fetcher), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	adminToken, err := utils.GenerateToken(1)
	require.NoError(t, err)
	userToken, err := utils.GenerateToken(2)
	require.NoError(t, err)
	ghostToken, err := utils.GenerateToken(3)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+ghostToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
