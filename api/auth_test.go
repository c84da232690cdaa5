package api

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
)

func authRouter(s *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.authMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("requester"))
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	s := &Server{jwtPublicKey: &testKey.PublicKey}
	router := authRouter(s)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testKey, "alice", time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestAuthMiddlewareRejects(t *testing.T) {
	s := &Server{jwtPublicKey: &testKey.PublicKey}
	router := authRouter(s)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(t, err)

	hmacToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "alice",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	assert.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   int64
	}{
		{"no header", "", errorInvalidAuthorizationFormat.Code},
		{"expired", "Bearer " + signToken(t, testKey, "alice", time.Now().Add(-time.Minute)), errorInvalidToken.Code},
		{"foreign key", "Bearer " + signToken(t, otherKey, "alice", time.Now().Add(time.Hour)), errorInvalidToken.Code},
		{"hmac", "Bearer " + hmacToken, errorInvalidToken.Code},
		{"no subject", "Bearer " + signToken(t, testKey, "", time.Now().Add(time.Hour)), errorInvalidToken.Code},
		{"garbage", "Bearer abc.def.ghi", errorInvalidToken.Code},
	}

	for _, c := range cases {
		req := httptest.NewRequest("GET", "/", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, c.name)
		assert.Equal(t, c.code, decodeError(t, w).Code, c.name)
	}
}

func TestVerifyTokenFromQuery(t *testing.T) {
	s := &Server{jwtPublicKey: &testKey.PublicKey}

	req := httptest.NewRequest("GET", "/api/socket?token="+signToken(t, testKey, "alice", time.Now().Add(time.Hour)), nil)
	subject, err := s.verifyToken(req, socketTokenExtractor)
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)

	req = httptest.NewRequest("GET", "/api/socket", nil)
	_, err = s.verifyToken(req, socketTokenExtractor)
	assert.Error(t, err)
}

func TestRecognizeAccountMiddleware(t *testing.T) {
	ts := newTestServer(t)
	defer ts.ctl.Finish()

	ts.accounts.EXPECT().GetAccount("stranger").Return(nil, gorm.ErrRecordNotFound)

	w := ts.do(t, "GET", "/api/accounts/me", "stranger", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errorAccountNotFound.Code, decodeError(t, w).Code)
}
