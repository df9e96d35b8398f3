package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bakeshop/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role models.Role) string {
	t.Helper()
	claims := jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"role":   string(role),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func guardedRouter(guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func request(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthGuardMissingToken(t *testing.T) {
	r := guardedRouter(ManagerAuth(testSecret))
	if w := request(t, r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthGuardRejectsBadSignature(t *testing.T) {
	claims := jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"role":   "owner",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	r := guardedRouter(ManagerAuth(testSecret))
	if w := request(t, r, forged); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestManagerAuthRejectsStaff(t *testing.T) {
	r := guardedRouter(ManagerAuth(testSecret))
	if w := request(t, r, signToken(t, models.RoleStaff)); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestManagerAuthAllowsManagerAndOwner(t *testing.T) {
	r := guardedRouter(ManagerAuth(testSecret))
	for _, role := range []models.Role{models.RoleManager, models.RoleOwner} {
		if w := request(t, r, signToken(t, role)); w.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", role, w.Code)
		}
	}
}

func TestStaffAuthAllowsStaffRejectsCustomer(t *testing.T) {
	r := guardedRouter(StaffAuth(testSecret))
	if w := request(t, r, signToken(t, models.RoleStaff)); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff, got %d", w.Code)
	}
	if w := request(t, r, signToken(t, models.RoleCustomer)); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", w.Code)
	}
}

func TestCustomerAuthAcceptsAnyValidToken(t *testing.T) {
	r := guardedRouter(CustomerAuth(testSecret))
	if w := request(t, r, signToken(t, models.RoleCustomer)); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
