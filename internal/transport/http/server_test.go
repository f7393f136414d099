package http

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/njprem/TravelWisata_BackEnd/internal/catalog"
	"github.com/njprem/TravelWisata_BackEnd/internal/localstore"
	"github.com/njprem/TravelWisata_BackEnd/internal/repository/memory"
	"github.com/njprem/TravelWisata_BackEnd/internal/repository/ports"
	"github.com/njprem/TravelWisata_BackEnd/internal/service"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

type testServer struct {
	e    *echo.Echo
	logs *test.Hook
}

type uploadRecorder struct {
	objects []string
}

func (u *uploadRecorder) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	u.objects = append(u.objects, objectName)
	return "https://cdn.example.com/" + bucket + "/" + objectName, nil
}

func newTestServer(t *testing.T, storage ports.ObjectStorage) *testServer {
	t.Helper()
	logger, hook := test.NewNullLogger()
	cat := catalog.MustDefault()
	ids := util.NewTimestampIDs(nil)

	stores := service.NewStores(localstore.New(memory.NewKeyValueStore(), logger), service.StoreOptions{
		Catalog:     cat,
		Logger:      logger,
		IDs:         ids,
		AdminEmails: []string{"admin@travelwisata.id"},
	})
	clients := service.NewClientService(util.NewJWTManager("test-secret", time.Hour))

	e := NewRouter([]string{"*"}, logger)
	RegisterClients(e, clients)
	RegisterAuth(e, clients, stores)
	RegisterDestinations(e, service.NewDestinationService(cat), service.NewWeatherService(0, 3))
	RegisterWishlist(e, clients, stores)
	RegisterReviews(e, clients, stores)
	RegisterPreferences(e, clients, stores)
	RegisterAdmin(e, clients, stores, service.NewAdminEditors(cat, ids), service.NewImageService(storage, nil, service.ImageServiceConfig{Bucket: "dest"}))
	RegisterSwagger(e)
	return &testServer{e: e, logs: hook}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) newClient(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/clients", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("issue client: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ClientResponse
	decode(t, rec, &resp)
	return resp.Token
}

func (s *testServer) login(t *testing.T, token, name, email, password string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", token, RegisterRequest{Name: name, Email: email, Password: password})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", token, LoginRequest{Email: email, Password: password})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.newClient(t)

	rec := s.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"session":null`) {
		t.Fatalf("expected null session, got %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodPost, "/api/v1/auth/register", token, RegisterRequest{Name: "Dina", Email: "dina@x.com", Password: "pw1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	rec = s.do(t, http.MethodPost, "/api/v1/auth/register", token, RegisterRequest{Name: "Dina", Email: "dina@x.com", Password: "pw1"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", token, LoginRequest{Email: "dina@x.com", Password: "pw1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(strings.ToLower(rec.Body.String()), "password") {
		t.Fatalf("session response leaks credentials: %s", rec.Body.String())
	}

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", token, LoginRequest{Email: "dina@x.com", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	var session SessionResponse
	decode(t, rec, &session)
	if session.Session == nil || session.Session.Name != "Dina" || session.IsAdmin {
		t.Fatalf("unexpected session %+v", session)
	}

	rec = s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = s.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	if !strings.Contains(rec.Body.String(), `"session":null`) {
		t.Fatalf("expected null session after logout, got %s", rec.Body.String())
	}
}

func TestClientTokenRequired(t *testing.T) {
	s := newTestServer(t, nil)

	if rec := s.do(t, http.MethodGet, "/api/v1/wishlist", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/api/v1/wishlist", "garbage", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/api/v1/destinations", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected public catalog, got %d", rec.Code)
	}
}

func TestDestinationRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/destinations?category=Gunung&query=bromo", "", nil)
	var list struct {
		Destinations []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"destinations"`
	}
	decode(t, rec, &list)
	if len(list.Destinations) != 1 || list.Destinations[0].ID != 2 {
		t.Fatalf("unexpected list %+v", list)
	}

	for _, all := range []string{"all", "Semua", "semua"} {
		rec = s.do(t, http.MethodGet, "/api/v1/destinations?category="+all, "", nil)
		decode(t, rec, &list)
		if len(list.Destinations) != 6 {
			t.Fatalf("category=%s: expected all 6 destinations, got %d", all, len(list.Destinations))
		}
	}

	rec = s.do(t, http.MethodGet, "/api/v1/destinations/4", "", nil)
	var detail DestinationDetailResponse
	decode(t, rec, &detail)
	if detail.Destination.Name != "Candi Borobudur" || !strings.Contains(detail.MapsEmbedURL, "!2d110.2038!3d-7.6079") {
		t.Fatalf("unexpected detail %+v", detail)
	}

	if rec := s.do(t, http.MethodGet, "/api/v1/destinations/99", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/api/v1/destinations/abc", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non numeric id, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/destinations/1/weather", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"location":"Bali, Indonesia"`) {
		t.Fatalf("unexpected weather %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/v1/categories", "", nil)
	if !strings.Contains(rec.Body.String(), "Kuliner") {
		t.Fatalf("expected categories, got %s", rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/v1/geocode?query=Malang", "", nil)
	if !strings.Contains(rec.Body.String(), `"found":true`) {
		t.Fatalf("expected geocode hit, got %s", rec.Body.String())
	}
	if rec := s.do(t, http.MethodGet, "/api/v1/geocode", "", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without query, got %d", rec.Code)
	}
}

func TestWishlistRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.newClient(t)

	if rec := s.do(t, http.MethodPost, "/api/v1/wishlist", token, WishlistRequest{DestinationID: "3"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}

	s.login(t, token, "Dina", "dina@x.com", "pw1")
	for i := 0; i < 2; i++ {
		if rec := s.do(t, http.MethodPost, "/api/v1/wishlist", token, WishlistRequest{DestinationID: "3"}); rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}
	if rec := s.do(t, http.MethodPost, "/api/v1/wishlist", token, WishlistRequest{DestinationID: "77"}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown destination, got %d", rec.Code)
	}

	rec := s.do(t, http.MethodGet, "/api/v1/wishlist", token, nil)
	var wl WishlistResponse
	decode(t, rec, &wl)
	if len(wl.Wishlist) != 1 || wl.Wishlist[0] != "3" || len(wl.Destinations) != 1 || wl.Destinations[0].Name != "Danau Toba" {
		t.Fatalf("unexpected wishlist %+v", wl)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/wishlist/3", token, nil)
	if !strings.Contains(rec.Body.String(), `"in_wishlist":true`) {
		t.Fatalf("expected membership, got %s", rec.Body.String())
	}

	other := s.newClient(t)
	rec = s.do(t, http.MethodGet, "/api/v1/wishlist", other, nil)
	decode(t, rec, &wl)
	if len(wl.Wishlist) != 0 {
		t.Fatalf("expected other client to have an empty wishlist, got %v", wl.Wishlist)
	}

	if rec := s.do(t, http.MethodDelete, "/api/v1/wishlist/3", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodDelete, "/api/v1/wishlist/3", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected idempotent remove, got %d", rec.Code)
	}
}

func TestReviewRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.newClient(t)

	if rec := s.do(t, http.MethodPost, "/api/v1/destinations/5/reviews", token, ReviewRequest{Rating: 5, Comment: "indah"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}

	s.login(t, token, "Dina", "dina@x.com", "pw1")
	if rec := s.do(t, http.MethodPost, "/api/v1/destinations/5/reviews", token, ReviewRequest{Rating: 5, Comment: "   "}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty comment, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPost, "/api/v1/destinations/5/reviews", token, ReviewRequest{Rating: 5, Comment: "indah"}); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := s.do(t, http.MethodPost, "/api/v1/destinations/55/reviews", token, ReviewRequest{Rating: 5, Comment: "indah"}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec := s.do(t, http.MethodGet, "/api/v1/destinations/5/reviews", token, nil)
	var list ReviewListResponse
	decode(t, rec, &list)
	if len(list.Reviews) != 1 || list.Reviews[0].UserName != "Dina" || list.Summary.TotalReviews != 1 {
		t.Fatalf("unexpected reviews %+v", list)
	}
}

func TestPreferenceRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	if rec := s.do(t, http.MethodGet, "/api/v1/preferences/locale", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without client token, got %d", rec.Code)
	}

	token := s.newClient(t)
	var resp LocaleResponse
	rec := s.do(t, http.MethodGet, "/api/v1/preferences/locale", token, nil)
	decode(t, rec, &resp)
	if rec.Code != http.StatusOK || resp.Locale != "id" {
		t.Fatalf("expected default locale id, got %d %+v", rec.Code, resp)
	}

	rec = s.do(t, http.MethodPut, "/api/v1/preferences/locale", token, LocaleRequest{Locale: "en"})
	decode(t, rec, &resp)
	if rec.Code != http.StatusOK || resp.Locale != "en" {
		t.Fatalf("expected en to be saved, got %d %+v", rec.Code, resp)
	}
	if rec := s.do(t, http.MethodPut, "/api/v1/preferences/locale", token, LocaleRequest{Locale: "fr"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported locale, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/preferences/locale", token, nil)
	decode(t, rec, &resp)
	if resp.Locale != "en" {
		t.Fatalf("expected saved locale en, got %+v", resp)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/preferences/locale", s.newClient(t), nil)
	decode(t, rec, &resp)
	if resp.Locale != "id" {
		t.Fatalf("expected a new client to start with id, got %+v", resp)
	}
}

func TestAdminRoutes(t *testing.T) {
	storage := &uploadRecorder{}
	s := newTestServer(t, storage)

	visitor := s.newClient(t)
	s.login(t, visitor, "Dina", "dina@x.com", "pw1")
	if rec := s.do(t, http.MethodGet, "/api/v1/admin/stats", visitor, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non admin, got %d", rec.Code)
	}

	admin := s.newClient(t)
	if rec := s.do(t, http.MethodGet, "/api/v1/admin/stats", admin, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}
	s.login(t, admin, "Admin", "admin@travelwisata.id", "secret")

	form := map[string]any{
		"basic": map[string]any{
			"name": "Pantai Pink", "location": "Lombok, NTB", "category": "Pantai", "price": "Rp 100.000",
		},
		"images":     map[string]any{"gallery": []string{"https://img/a.jpg"}},
		"facilities": []string{"Parkir"},
		"location":   map[string]any{"address": "Lombok Timur", "coordinates": map[string]any{"lat": -8.85, "lng": 116.55}},
	}
	rec := s.do(t, http.MethodPost, "/api/v1/admin/destinations", admin, form)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Destination struct {
			ID int64 `json:"id"`
		} `json:"destination"`
	}
	decode(t, rec, &created)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/stats", admin, nil)
	if !strings.Contains(rec.Body.String(), `"total_destinations":7`) {
		t.Fatalf("expected 7 destinations, got %s", rec.Body.String())
	}
	if rec := s.do(t, http.MethodGet, "/api/v1/destinations/"+itoa(created.Destination.ID), "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("admin edits must not reach the public catalog, got %d", rec.Code)
	}

	delete(form["basic"].(map[string]any), "name")
	if rec := s.do(t, http.MethodPut, "/api/v1/admin/destinations/1", admin, form); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodDelete, "/api/v1/admin/destinations/"+itoa(created.Destination.ID), admin, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodDelete, "/api/v1/admin/destinations/"+itoa(created.Destination.ID), admin, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = s.uploadPNG(t, admin)
	if rec.Code != http.StatusCreated || len(storage.objects) != 1 {
		t.Fatalf("expected upload, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestAdminUploadDisabled(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.newClient(t)
	s.login(t, admin, "Admin", "admin@travelwisata.id", "secret")

	if rec := s.uploadPNG(t, admin); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func (s *testServer) uploadPNG(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "kuta.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write(img.Bytes())
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/images", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestRequestLogRedactsPasswords(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.newClient(t)
	s.do(t, http.MethodPost, "/api/v1/auth/register", token, RegisterRequest{Name: "Dina", Email: "dina@x.com", Password: "super-secret"})

	found := false
	for _, entry := range s.logs.AllEntries() {
		if entry.Data["uri"] != "/api/v1/auth/register" {
			continue
		}
		found = true
		line, _ := json.Marshal(entry.Data["request_body"])
		if strings.Contains(string(line), "super-secret") {
			t.Fatalf("password leaked into request log: %s", line)
		}
		if entry.Data["client_id"] == "anonymous" {
			t.Fatal("expected client id in request log")
		}
		if id, _ := entry.Data["request_id"].(string); id == "" {
			t.Fatal("expected request id in request log")
		}
	}
	if !found {
		t.Fatal("expected a request log entry for register")
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatalf("unexpected health response %d %v", rec.Code, rec.Header())
	}
}

func TestSwaggerDocumentServed(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"TravelWisata API"`) {
		t.Fatalf("unexpected swagger response %d %s", rec.Code, rec.Body.String())
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
