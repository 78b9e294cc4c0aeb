package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"quickbite.backend/internal/interfaces/http/middleware"
	"quickbite.backend/internal/usecases"
	"quickbite.backend/pkg/storage"
)

// fixture wires handlers against in-memory repositories and exposes the
// routes the server registers. Authentication is replaced by test headers
// so route-level behavior can be exercised without tokens.
type fixture struct {
	router    *gin.Engine
	users     *fakeUserRepo
	merchants *fakeMerchantRepo
	riders    *fakeRiderRepo
	settings  *fakeSettingsRepo
	promos    *fakePromotionRepo
	otp       *fakeOTPStore
}

// testClaims copies identity headers into the gin context the way
// AuthMiddleware would after validating a token.
func testClaims() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v := c.GetHeader("X-Test-User"); v != "" {
			id, _ := strconv.ParseInt(v, 10, 64)
			c.Set(middleware.UserIDKey, id)
		}
		if v := c.GetHeader("X-Test-Role"); v != "" {
			c.Set(middleware.UserRoleKey, v)
		}
		c.Next()
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		users:     newFakeUserRepo(),
		merchants: newFakeMerchantRepo(),
		settings:  &fakeSettingsRepo{},
		promos:    newFakePromotionRepo(),
		otp:       newFakeOTPStore(),
	}
	f.riders = newFakeRiderRepo(f.users)

	uow := &fakeUOW{}
	reconcile := usecases.NewReconcileUsecase(f.users)
	merchantUC := usecases.NewMerchantUsecase(uow, f.merchants, f.users, reconcile)
	riderUC := usecases.NewRiderUsecase(uow, f.riders, f.users)
	userUC := usecases.NewUserUsecase(f.users)
	settingsUC := usecases.NewSettingsUsecase(f.settings)
	statsUC := usecases.NewStatsUsecase(f.merchants, f.riders)
	promotionUC := usecases.NewPromotionUsecase(f.promos)
	authUC := usecases.NewAuthUsecase(f.users, f.merchants, f.riders, f.otp, &fakeTokens{}, true)

	uploads := storage.NewStore(t.TempDir(), "http://localhost:8080")

	authHandler := NewAuthHandler(authUC)
	merchantHandler := NewMerchantHandler(merchantUC)
	riderHandler := NewRiderHandler(riderUC)
	userHandler := NewUserHandler(userUC)
	settingsHandler := NewSettingsHandler(settingsUC)
	statsHandler := NewStatsHandler(statsUC)
	portalHandler := NewPortalHandler(merchantUC, uploads)
	promotionHandler := NewPromotionHandler(promotionUC, uploads)

	r := gin.New()
	r.Use(testClaims())

	api := r.Group("/api")
	api.POST("/auth/send-otp", authHandler.SendOTP)
	api.POST("/auth/verify-otp", authHandler.VerifyOTP)

	admin := api.Group("/admin")
	admin.POST("/merchants", merchantHandler.Create)
	admin.GET("/merchants", merchantHandler.List)
	admin.GET("/merchants/:id", merchantHandler.Get)
	admin.PUT("/merchants/:id", merchantHandler.Update)
	admin.PATCH("/merchants/:id/status", merchantHandler.SetStatus)
	admin.PATCH("/merchants/:id/approval", merchantHandler.SetApproval)

	admin.POST("/riders", riderHandler.Create)
	admin.GET("/riders", riderHandler.List)
	admin.GET("/riders/:id", riderHandler.Get)
	admin.PATCH("/riders/:id/profile", riderHandler.UpdateProfile)
	admin.PATCH("/riders/:id/bank", riderHandler.UpdateBank)
	admin.PATCH("/riders/:id/online", riderHandler.SetOnline)
	admin.PATCH("/riders/:id/kyc", riderHandler.SetKYC)
	admin.PATCH("/riders/:id/approval", riderHandler.SetApproval)
	admin.PATCH("/riders/:id/status", riderHandler.SetStatus)
	admin.DELETE("/riders/:id", riderHandler.Delete)

	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.Get)
	admin.PATCH("/users/:id/status", userHandler.SetStatus)
	admin.PATCH("/users/:id/kyc", userHandler.SetKYC)

	admin.POST("/promotions", promotionHandler.Create)
	admin.GET("/promotions", promotionHandler.List)
	admin.GET("/promotions/:id", promotionHandler.Get)
	admin.PATCH("/promotions/:id", promotionHandler.Update)
	admin.DELETE("/promotions/:id", promotionHandler.Delete)

	admin.GET("/settings", settingsHandler.Get)
	admin.PATCH("/settings", settingsHandler.Patch)
	admin.GET("/stats/dashboard", statsHandler.Dashboard)

	portal := api.Group("/merchant")
	portal.GET("/profile", portalHandler.Profile)
	portal.PATCH("/open", portalHandler.SetOpen)
	portal.POST("/profile-image", portalHandler.UploadProfileImage)

	f.router = r
	return f
}

type testRequest struct {
	method string
	path   string
	body   interface{}
	userID int64
	role   string
	raw    []byte
	header http.Header
}

func (f *fixture) do(t *testing.T, req testRequest) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if req.raw != nil {
		buf.Write(req.raw)
	} else if req.body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(req.body))
	}

	r := httptest.NewRequest(req.method, req.path, &buf)
	if req.header != nil {
		r.Header = req.header
	}
	if req.body != nil && req.raw == nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.userID != 0 {
		r.Header.Set("X-Test-User", strconv.FormatInt(req.userID, 10))
	}
	if req.role != "" {
		r.Header.Set("X-Test-Role", req.role)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	var parsed map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func data(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "expected data object, got %v", body)
	return d
}
