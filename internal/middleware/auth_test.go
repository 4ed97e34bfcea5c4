package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger_service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string
}

func (suite *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))
	suite.router.GET("/whoami", func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID)
	})
}

func (suite *AuthMiddlewareTestSuite) token(subject string, expiresIn time.Duration, secret string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	suite.Require().NoError(err)
	return signed
}

func (suite *AuthMiddlewareTestSuite) do(authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthMiddlewareTestSuite) TestValidToken() {
	w := suite.do("Bearer " + suite.token("user-42", time.Hour, suite.jwtSecret))
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("user-42", w.Body.String())
}

func (suite *AuthMiddlewareTestSuite) TestMissingHeader() {
	w := suite.do("")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Authorization header required")
}

func (suite *AuthMiddlewareTestSuite) TestMalformedHeader() {
	w := suite.do("Token abc")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestExpiredToken() {
	w := suite.do("Bearer " + suite.token("user-42", -time.Hour, suite.jwtSecret))
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Token has expired")
}

func (suite *AuthMiddlewareTestSuite) TestWrongSecret() {
	w := suite.do("Bearer " + suite.token("user-42", time.Hour, "another-secret-entirely"))
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestMissingSubject() {
	w := suite.do("Bearer " + suite.token("", time.Hour, suite.jwtSecret))
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
