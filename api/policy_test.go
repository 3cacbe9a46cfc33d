package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/okravchuk/airport-service/internal/auth"
	"github.com/stretchr/testify/assert"
)

func TestRequiredCapability(t *testing.T) {
	assert.Equal(t, Public, RequiredCapability("flights", ActionList))
	assert.Equal(t, Authenticated, RequiredCapability("orders", ActionCreate))
	assert.Equal(t, Admin, RequiredCapability("flights", ActionCreate))

	// Pairs missing from the table must never be open.
	assert.Equal(t, Admin, RequiredCapability("unknown", ActionList))
}

func runAuthorize(t *testing.T, claims *auth.Claims, resource string, action Action) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	if claims != nil {
		c.Set(claimsKey, claims)
	}
	Authorize(resource, action)(c)
	return w
}

func TestAuthorize_PublicAllowsAnonymous(t *testing.T) {
	w := runAuthorize(t, nil, "flights", ActionList)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorize_AuthenticatedRejectsAnonymous(t *testing.T) {
	w := runAuthorize(t, nil, "orders", ActionCreate)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize_AdminRejectsRegularUser(t *testing.T) {
	w := runAuthorize(t, &auth.Claims{UserID: 3}, "flights", ActionCreate)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorize_AdminAllowsAdmin(t *testing.T) {
	w := runAuthorize(t, &auth.Claims{UserID: 1, IsAdmin: true}, "flights", ActionCreate)
	assert.Equal(t, http.StatusOK, w.Code)
}
