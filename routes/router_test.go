package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/aroena-api/config"
	"github.com/Kariqs/aroena-api/initializers"
	"github.com/Kariqs/aroena-api/models"
	"github.com/Kariqs/aroena-api/services"
	"github.com/Kariqs/aroena-api/storage"
	"github.com/Kariqs/aroena-api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App:       config.App{Env: "test", Port: "2009"},
		JWT:       config.JWT{Secret: testutils.TestJWTSecret, TTL: time.Hour},
		CORS:      config.CORS{Origins: []string{"*"}},
		RateLimit: config.RateLimit{LoginPerMinute: 100},
	}
}

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutils.Setup(t)
	return SetupRouter(testConfig())
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func loginAdmin(t *testing.T, r http.Handler) string {
	t.Helper()

	creds := gin.H{"email": "owner@aroena.rw", "password": "secret123"}
	w := doRequest(t, r, http.MethodPost, "/admin/create", creds, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodPost, "/admin/login", creds, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[services.LoginResult](t, w)
	require.NotEmpty(t, result.Token)
	return result.Token
}

func createService(t *testing.T, r http.Handler, token string, price int) models.Service {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/services", gin.H{
		"title":     "Deluxe Room",
		"category":  "Room",
		"price":     price,
		"available": true,
		"features":  []string{"WiFi"},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Service](t, w)
}

func signup(t *testing.T, r http.Handler, phone string) models.User {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/users/login-or-signup", gin.H{"name": "Aline", "phone": phone}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[models.User](t, w)
}

func TestHome(t *testing.T) {
	r := setupServer(t)
	w := doRequest(t, r, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Aroena")
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupServer(t)
	doRequest(t, r, http.MethodGet, "/", nil, "")

	w := doRequest(t, r, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "aroena_http_requests_total")
}

func TestAdminBootstrapAndGuard(t *testing.T) {
	r := setupServer(t)
	token := loginAdmin(t, r)

	// Once an admin exists, creating another needs a token.
	w := doRequest(t, r, http.MethodPost, "/admin/create", gin.H{"email": "second@aroena.rw", "password": "secret123"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/admin/create", gin.H{"email": "second@aroena.rw", "password": "secret123"}, token)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodGet, "/admin", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "message")

	w = doRequest(t, r, http.MethodGet, "/admin", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodGet, "/admin", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	admins := decode[[]models.AdminInfo](t, w)
	assert.Len(t, admins, 2)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestDeleteAdmin(t *testing.T) {
	r := setupServer(t)
	token := loginAdmin(t, r)

	w := doRequest(t, r, http.MethodGet, "/admin", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	owner := decode[[]models.AdminInfo](t, w)[0]

	// The only admin cannot remove itself.
	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/admin/%d", owner.ID), nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	second := gin.H{"email": "second@aroena.rw", "password": "secret123"}
	w = doRequest(t, r, http.MethodPost, "/admin/create", second, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = doRequest(t, r, http.MethodPost, "/admin/login", second, "")
	require.Equal(t, http.StatusOK, w.Code)
	secondToken := decode[services.LoginResult](t, w).Token

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/admin/%d", owner.ID), nil, secondToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The deleted admin's token stops working at once.
	w = doRequest(t, r, http.MethodGet, "/admin", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doRequest(t, r, http.MethodGet, "/admin", nil, secondToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminLoginFailures(t *testing.T) {
	r := setupServer(t)
	loginAdmin(t, r)

	wrong := doRequest(t, r, http.MethodPost, "/admin/login", gin.H{"email": "owner@aroena.rw", "password": "nope123"}, "")
	unknown := doRequest(t, r, http.MethodPost, "/admin/login", gin.H{"email": "ghost@aroena.rw", "password": "secret123"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	w := doRequest(t, r, http.MethodPost, "/admin/login", gin.H{"email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminCookieAndLogout(t *testing.T) {
	r := setupServer(t)
	creds := gin.H{"email": "owner@aroena.rw", "password": "secret123"}
	require.Equal(t, http.StatusCreated, doRequest(t, r, http.MethodPost, "/admin/create", creds, "").Code)

	w := doRequest(t, r, http.MethodPost, "/admin/login", creds, "")
	require.Equal(t, http.StatusOK, w.Code)

	var adminCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin" {
			adminCookie = c
		}
	}
	require.NotNil(t, adminCookie)
	assert.True(t, adminCookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(adminCookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodPost, "/admin/logout", nil, adminCookie.Value)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodGet, "/admin/dashboard", nil, adminCookie.Value)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServiceEndpoints(t *testing.T) {
	r := setupServer(t)
	token := loginAdmin(t, r)

	w := doRequest(t, r, http.MethodPost, "/services", gin.H{"title": "Room", "category": "Room", "price": 100}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/services", gin.H{"title": "Room", "category": "Spa", "price": 100}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	service := createService(t, r, token, 45000)
	assert.True(t, service.Price.Equal(decimal.NewFromInt(45000)))

	w = doRequest(t, r, http.MethodGet, "/services", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Service](t, w), 1)
	assert.Contains(t, w.Body.String(), `"price":45000`)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/services/%d", service.ID), gin.H{"available": false}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Service](t, w)
	assert.False(t, updated.Available)
	assert.Equal(t, "Deluxe Room", updated.Title)

	w = doRequest(t, r, http.MethodGet, "/services/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/services/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/services/%d", service.ID), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateServiceMultipartWithImage(t *testing.T) {
	r := setupServer(t)
	token := loginAdmin(t, r)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Garden Suite"))
	require.NoError(t, mw.WriteField("category", "Room"))
	require.NoError(t, mw.WriteField("price", "80000.50"))
	require.NoError(t, mw.WriteField("rating", "4.8"))
	require.NoError(t, mw.WriteField("available", "true"))
	require.NoError(t, mw.WriteField("features", `["WiFi","Balcony"]`))
	part, err := mw.CreateFormFile("image", "suite.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/services", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	service := decode[models.Service](t, w)
	assert.Equal(t, "Garden Suite", service.Title)
	assert.True(t, service.Price.Equal(decimal.RequireFromString("80000.5")))
	assert.Equal(t, []string{"WiFi", "Balcony"}, []string(service.Features))
	require.True(t, strings.HasPrefix(service.Image, "http://localhost:2009/uploads/"), service.Image)

	// The stored file is served back under /uploads.
	w = doRequest(t, r, http.MethodGet, strings.TrimPrefix(service.Image, "http://localhost:2009"), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg-bytes", w.Body.String())
}

func TestCreateServiceMultipartRejectsBadFeatures(t *testing.T) {
	r := setupServer(t)
	token := loginAdmin(t, r)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Garden Suite"))
	require.NoError(t, mw.WriteField("category", "Room"))
	require.NoError(t, mw.WriteField("price", "100"))
	require.NoError(t, mw.WriteField("features", "WiFi, Balcony"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/services", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// multipartServiceRequest builds a dashboard form with an image attached.
func multipartServiceRequest(t *testing.T, method, path, token string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("image", "suite.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func storedImages(t *testing.T) []os.DirEntry {
	t.Helper()
	store, ok := initializers.Images.(*storage.LocalStore)
	require.True(t, ok)
	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	return entries
}

func TestServiceImageNotStoredForInvalidForm(t *testing.T) {
	r := setupServer(t)
	token := loginAdmin(t, r)

	forms := map[string]map[string]string{
		"unknown category": {"title": "Massage", "category": "Spa", "price": "100"},
		"missing price":    {"title": "Massage", "category": "Room"},
		"negative price":   {"title": "Massage", "category": "Room", "price": "-1"},
	}
	for name, fields := range forms {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, multipartServiceRequest(t, http.MethodPost, "/services", token, fields))
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Empty(t, storedImages(t))
		})
	}
}

func TestServiceImageRemovedWhenUpdateFails(t *testing.T) {
	r := setupServer(t)
	token := loginAdmin(t, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartServiceRequest(t, http.MethodPut, "/services/999", token, map[string]string{"title": "Ghost Suite"}))
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	assert.Empty(t, storedImages(t))

	service := createService(t, r, token, 10000)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartServiceRequest(t, http.MethodPut, fmt.Sprintf("/services/%d", service.ID), token, map[string]string{"title": "Garden Suite"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, storedImages(t), 1)
}

func TestOrderLifecycle(t *testing.T) {
	r := setupServer(t)
	token := loginAdmin(t, r)
	service := createService(t, r, token, 10000)
	user := signup(t, r, "0788123456")

	w := doRequest(t, r, http.MethodPost, "/orders", gin.H{"serviceId": service.ID, "userId": user.ID, "quantity": 3}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode[models.Order](t, w)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(30000)))
	assert.Contains(t, w.Body.String(), `"total":30000`)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/orders/%d", order.ID), gin.H{"quantity": 2}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[models.Order](t, w).Total.Equal(decimal.NewFromInt(20000)))

	// Approving needs an admin.
	statusPath := fmt.Sprintf("/orders/%d/status", order.ID)
	w = doRequest(t, r, http.MethodPut, statusPath, gin.H{"status": "APPROVED"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPut, statusPath, gin.H{"status": "APPROVED"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.OrderApproved, decode[models.Order](t, w).Status)

	w = doRequest(t, r, http.MethodPut, statusPath, gin.H{"status": "SHIPPED"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/orders/%d", order.ID), gin.H{"quantity": 5}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Payment is open to the guest.
	w = doRequest(t, r, http.MethodPut, statusPath, gin.H{"status": "PAID"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.OrderPaid, decode[models.Order](t, w).Status)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/orders/user/%d", user.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Order](t, w), 1)

	w = doRequest(t, r, http.MethodGet, "/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doRequest(t, r, http.MethodGet, "/orders", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Order](t, w), 1)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/services/%d", service.ID), nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "existing orders")

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderValidation(t *testing.T) {
	r := setupServer(t)
	token := loginAdmin(t, r)
	service := createService(t, r, token, 10000)
	user := signup(t, r, "0788000111")

	w := doRequest(t, r, http.MethodPost, "/orders", gin.H{"serviceId": service.ID, "userId": user.ID, "quantity": 0}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, "/orders", gin.H{"serviceId": 999, "userId": user.ID, "quantity": 1}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodPost, "/orders", gin.H{"serviceId": service.ID, "userId": 999, "quantity": 1}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	r := setupServer(t)
	token := loginAdmin(t, r)

	first := signup(t, r, "0788555666")
	second := signup(t, r, "0788555666")
	assert.Equal(t, first.ID, second.ID)

	w := doRequest(t, r, http.MethodPost, "/users/login-or-signup", gin.H{"name": "No Phone"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodGet, "/users", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.User](t, w), 1)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/users/%d", first.ID), gin.H{"status": "bogus"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/users/%d", first.ID), gin.H{"status": "inactive"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.UserStatusInactive, decode[models.User](t, w).Status)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/users/%d", first.ID), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/users/%d", first.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboard(t *testing.T) {
	r := setupServer(t)
	token := loginAdmin(t, r)
	service := createService(t, r, token, 10000)
	user := signup(t, r, "0788777888")

	w := doRequest(t, r, http.MethodPost, "/orders", gin.H{"serviceId": service.ID, "userId": user.ID, "quantity": 2}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodGet, "/admin/dashboard", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodGet, "/admin/dashboard", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stats := decode[services.DashboardStats](t, w)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 1, stats.TotalServices)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, 1, stats.OrderStats.Pending)
	require.Len(t, stats.RevenueTrend, 7)
	assert.True(t, stats.RevenueTrend[6].Revenue.Equal(decimal.NewFromInt(20000)))
	require.Len(t, stats.PopularServices, 1)
	assert.Equal(t, 1, stats.PopularServices[0].OrderCount)
}

func TestLoginRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutils.Setup(t)
	cfg := testConfig()
	cfg.RateLimit.LoginPerMinute = 2
	r := SetupRouter(cfg)

	creds := gin.H{"email": "ghost@aroena.rw", "password": "secret123"}
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, r, http.MethodPost, "/admin/login", creds, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, r, http.MethodPost, "/admin/login", creds, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(t, r, http.MethodPost, "/admin/login", creds, "").Code)
}

func TestLoginRateLimitIgnoresForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutils.Setup(t)
	cfg := testConfig()
	cfg.RateLimit.LoginPerMinute = 2
	r := SetupRouter(cfg)

	payload, err := json.Marshal(gin.H{"email": "ghost@aroena.rw", "password": "secret123"})
	require.NoError(t, err)

	codes := make([]int, 0, 6)
	for i := 1; i <= 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{401, 401, 429, 429, 429, 429}, codes)
}

func TestApplyTrustedProxies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	clientIP := func(proxies []string) string {
		r := gin.New()
		applyTrustedProxies(r, proxies)
		r.GET("/ip", func(ctx *gin.Context) {
			ctx.String(http.StatusOK, ctx.ClientIP())
		})

		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113.10, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return strings.TrimSpace(w.Body.String())
	}

	assert.Equal(t, "10.0.0.1", clientIP(nil))
	assert.Equal(t, "10.0.0.1", clientIP([]string{" "}))
	assert.Equal(t, "203.0.113.10", clientIP([]string{"127.0.0.1", "10.0.0.0/8"}))
	assert.Equal(t, "10.0.0.1", clientIP([]string{"not-a-cidr"}))
}

func TestCORSPreflight(t *testing.T) {
	r := setupServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/services", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
