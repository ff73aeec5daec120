package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/phrases"
	"github.com/abocci/phrasepush/services"
	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Subscription{}, &models.Notification{}))

	config := models.Config{
		AdminEmail:     "admin@example.com",
		AdminKey:       "secret",
		VapidPublicKey: "test-vapid-public-key",
		MaxBodySize:    8192,
	}
	bus := EventBus.New()
	dispatcher := services.NewDispatcher(db, &config, phrases.NewSelector(), nil, &bus)
	return New(&config, db, dispatcher)
}

func do(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	for name, value := range headers {
		request.Header.Set(name, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestVapidPublicKey(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, http.MethodGet, "/vapidPublicKey", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "test-vapid-public-key", recorder.Body.String())
}

func TestAdminRoutesRequireKey(t *testing.T) {
	router := newTestRouter(t)

	for _, route := range []struct {
		method string
		target string
	}{
		{http.MethodPost, "/admin/broadcast"},
		{http.MethodPost, "/admin/send-now"},
		{http.MethodGet, "/admin/subs"},
	} {
		recorder := do(t, router, route.method, route.target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "%s without key", route.target)

		recorder = do(t, router, route.method, route.target, "", map[string]string{"X-Admin-Key": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "%s with wrong key", route.target)
	}
}

func TestAdminBroadcastWithKey(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, http.MethodPost, "/admin/broadcast", "", map[string]string{"X-Admin-Key": "secret"})
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["ok"])
	assert.EqualValues(t, 0, body["sent"])
	assert.EqualValues(t, 0, body["failed"])
}

func TestSubscribeThenExists(t *testing.T) {
	router := newTestRouter(t)

	endpoint := "https://push.example/routes"
	recorder := do(t, router, http.MethodGet, "/subscribe/exists?endpoint="+endpoint, "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, false, decodeBody(t, recorder)["exists"])

	payload := `{"endpoint":"` + endpoint + `","keys":{"p256dh":"k","auth":"a"},"language":"spanish","difficulty":"medium"}`
	recorder = do(t, router, http.MethodPost, "/subscribe", payload, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, decodeBody(t, recorder)["ok"])

	recorder = do(t, router, http.MethodGet, "/subscribe/exists?endpoint="+endpoint, "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, decodeBody(t, recorder)["exists"])

	recorder = do(t, router, http.MethodDelete, "/subscribe", `{"endpoint":"`+endpoint+`"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = do(t, router, http.MethodGet, "/subscribe/exists?endpoint="+endpoint, "", nil)
	assert.Equal(t, false, decodeBody(t, recorder)["exists"])
}

func TestSubscribeRejectsMissingEndpoint(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, http.MethodPost, "/subscribe", `{"keys":{"p256dh":"k"}}`, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdatePreferenceValidation(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"endpoint":"https://push.example/prefs","keys":{"p256dh":"k","auth":"a"}}`
	recorder := do(t, router, http.MethodPost, "/subscribe", payload, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = do(t, router, http.MethodPatch, "/subscribe/language",
		`{"endpoint":"https://push.example/prefs","language":"klingon"}`, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(t, router, http.MethodPatch, "/subscribe/language",
		`{"endpoint":"https://push.example/prefs","language":"french"}`, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = do(t, router, http.MethodPatch, "/subscribe/difficulty",
		`{"endpoint":"https://push.example/absent","difficulty":"medium"}`, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestIOSSubscribeFlow(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, http.MethodPost, "/subscribe/ios", `{"token":"device-1","language":"japanese"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = do(t, router, http.MethodGet, "/subscribe/ios/exists?token=device-1", "", nil)
	assert.Equal(t, true, decodeBody(t, recorder)["exists"])

	recorder = do(t, router, http.MethodDelete, "/subscribe/ios", `{"token":"device-1"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = do(t, router, http.MethodGet, "/subscribe/ios/exists?token=device-1", "", nil)
	assert.Equal(t, false, decodeBody(t, recorder)["exists"])
}

func TestLastNotificationEmpty(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, http.MethodGet, "/last-notification?endpoint=https://push.example/none", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, false, decodeBody(t, recorder)["hasNotification"])
}

func TestAdminSendNowNotFound(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, http.MethodPost, "/admin/send-now",
		`{"endpoint":"https://push.example/ghost"}`, map[string]string{"X-Admin-Key": "secret"})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
