package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lance116/period-tracker/internal/chat"
	"github.com/lance116/period-tracker/internal/db"
)

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "perica-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repos := db.NewRepositories(database)
	handler := NewHandler(repos, "test-secret-key", time.UTC, false, chat.NewClient("", ""))

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

func jsonRequest(t *testing.T, method string, target string, payload any, authCookie string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	request := httptest.NewRequest(method, target, &body)
	request.Header.Set("Content-Type", "application/json")
	if authCookie != "" {
		request.Header.Set("Cookie", authCookieName+"="+authCookie)
	}
	return request
}

func decodeJSONBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func responseAuthCookie(t *testing.T, response *http.Response) string {
	t.Helper()
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Value
		}
	}
	t.Fatalf("expected %s cookie in response", authCookieName)
	return ""
}

func registerTestAccount(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    email,
		"password": "supersecret",
	}, ""), -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201 on register, got %d", response.StatusCode)
	}
	return responseAuthCookie(t, response)
}

func TestRegisterLoginFlow(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestAccount(t, app, "flow@example.com")

	// The fresh cookie authenticates /me.
	meResponse, err := app.Test(jsonRequest(t, http.MethodGet, "/api/auth/me", nil, cookie), -1)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	if meResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 on /me, got %d", meResponse.StatusCode)
	}
	var me struct {
		Email string `json:"email"`
	}
	decodeJSONBody(t, meResponse, &me)
	if me.Email != "flow@example.com" {
		t.Fatalf("unexpected /me email %q", me.Email)
	}

	// Re-registering the same address conflicts, case-insensitively.
	duplicate, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "Flow@Example.com",
		"password": "supersecret",
	}, ""), -1)
	if err != nil {
		t.Fatalf("duplicate register request failed: %v", err)
	}
	if duplicate.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409 on duplicate register, got %d", duplicate.StatusCode)
	}

	wrongPassword, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "flow@example.com",
		"password": "notthepassword",
	}, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if wrongPassword.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 on bad password, got %d", wrongPassword.StatusCode)
	}

	login, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "FLOW@example.com",
		"password": "supersecret",
	}, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if login.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 on login, got %d", login.StatusCode)
	}
	responseAuthCookie(t, login)
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []fiber.Map{
		{"email": "short@example.com", "password": "tiny"},
		{"email": "not-an-email", "password": "supersecret"},
		{"email": "", "password": "supersecret"},
	}
	for _, payload := range cases {
		response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", payload, ""), -1)
		if err != nil {
			t.Fatalf("register request failed: %v", err)
		}
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %v, got %d", payload, response.StatusCode)
		}
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	for _, target := range []string{"/api/cycles", "/api/profile", "/api/insights", "/api/calendar", "/api/chat/history"} {
		response, err := app.Test(jsonRequest(t, http.MethodGet, target, nil, ""), -1)
		if err != nil {
			t.Fatalf("request %s failed: %v", target, err)
		}
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected status 401 for %s without a cookie, got %d", target, response.StatusCode)
		}
	}

	forged, err := app.Test(jsonRequest(t, http.MethodGet, "/api/cycles", nil, "not-a-real-token"), -1)
	if err != nil {
		t.Fatalf("forged request failed: %v", err)
	}
	if forged.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for a forged token, got %d", forged.StatusCode)
	}
}

func TestCycleEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestAccount(t, app, "cycles@example.com")

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	created, err := app.Test(jsonRequest(t, http.MethodPost, "/api/cycles", fiber.Map{
		"start_date":      yesterday,
		"period_duration": 4,
	}, cookie), -1)
	if err != nil {
		t.Fatalf("create cycle request failed: %v", err)
	}
	if created.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201 on create, got %d", created.StatusCode)
	}
	var createdView struct {
		ID             uint   `json:"id"`
		StartDate      string `json:"start_date"`
		PeriodDuration *int   `json:"period_duration"`
	}
	decodeJSONBody(t, created, &createdView)
	if createdView.ID == 0 || createdView.StartDate != yesterday {
		t.Fatalf("unexpected created cycle: %+v", createdView)
	}
	if createdView.PeriodDuration == nil || *createdView.PeriodDuration != 4 {
		t.Fatalf("expected period duration 4 kept, got %v", createdView.PeriodDuration)
	}

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	future, err := app.Test(jsonRequest(t, http.MethodPost, "/api/cycles", fiber.Map{
		"start_date": tomorrow,
	}, cookie), -1)
	if err != nil {
		t.Fatalf("future cycle request failed: %v", err)
	}
	if future.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a future start date, got %d", future.StatusCode)
	}

	list, err := app.Test(jsonRequest(t, http.MethodGet, "/api/cycles", nil, cookie), -1)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	var cycles []struct {
		ID uint `json:"id"`
	}
	decodeJSONBody(t, list, &cycles)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle listed, got %d", len(cycles))
	}

	missing, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/cycles/9999", nil, cookie), -1)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 for an unknown cycle, got %d", missing.StatusCode)
	}

	removed, err := app.Test(jsonRequest(t, http.MethodDelete, fmt.Sprintf("/api/cycles/%d", createdView.ID), nil, cookie), -1)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	if removed.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 on delete, got %d", removed.StatusCode)
	}
}

func TestInsightsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestAccount(t, app, "insights@example.com")

	// Two 28 day gaps ending today: average 28, zero variability, day 1.
	today := time.Now().UTC()
	for _, offset := range []int{-56, -28, 0} {
		response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/cycles", fiber.Map{
			"start_date": today.AddDate(0, 0, offset).Format("2006-01-02"),
		}, cookie), -1)
		if err != nil {
			t.Fatalf("seed cycle request failed: %v", err)
		}
		if response.StatusCode != http.StatusCreated {
			t.Fatalf("expected status 201 seeding cycles, got %d", response.StatusCode)
		}
	}

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/insights", nil, cookie), -1)
	if err != nil {
		t.Fatalf("insights request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	var insights struct {
		AverageCycleLength int     `json:"average_cycle_length"`
		CycleVariability   float64 `json:"cycle_variability"`
		CurrentCycle       *struct {
			CurrentDay int    `json:"current_day"`
			Phase      string `json:"phase"`
		} `json:"current_cycle"`
		NextPeriod *struct {
			DaysUntil  int     `json:"days_until"`
			Confidence float64 `json:"confidence"`
		} `json:"next_period"`
	}
	decodeJSONBody(t, response, &insights)

	if insights.AverageCycleLength != 28 {
		t.Fatalf("expected average 28, got %d", insights.AverageCycleLength)
	}
	if insights.CycleVariability != 0 {
		t.Fatalf("expected zero variability, got %f", insights.CycleVariability)
	}
	if insights.CurrentCycle == nil || insights.CurrentCycle.CurrentDay != 1 {
		t.Fatalf("expected current day 1, got %+v", insights.CurrentCycle)
	}
	if insights.CurrentCycle.Phase != "menstrual" {
		t.Fatalf("expected menstrual phase on day 1, got %q", insights.CurrentCycle.Phase)
	}
	if insights.NextPeriod == nil || insights.NextPeriod.DaysUntil != 28 {
		t.Fatalf("expected next period in 28 days, got %+v", insights.NextPeriod)
	}
	if insights.NextPeriod.Confidence != 0.95 {
		t.Fatalf("expected confidence 0.95, got %f", insights.NextPeriod.Confidence)
	}
}

func TestInsightsEndpointEmptyHistory(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestAccount(t, app, "empty@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/insights", nil, cookie), -1)
	if err != nil {
		t.Fatalf("insights request failed: %v", err)
	}

	var insights struct {
		AverageCycleLength int `json:"average_cycle_length"`
		CurrentCycle       any `json:"current_cycle"`
		NextPeriod         any `json:"next_period"`
	}
	decodeJSONBody(t, response, &insights)
	if insights.AverageCycleLength != 28 {
		t.Fatalf("expected default average 28, got %d", insights.AverageCycleLength)
	}
	if insights.CurrentCycle != nil || insights.NextPeriod != nil {
		t.Fatalf("expected null cycle and prediction without history, got %+v", insights)
	}
}

func TestHealthLogEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestAccount(t, app, "logs@example.com")

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	upsert, err := app.Test(jsonRequest(t, http.MethodPut, "/api/logs/"+yesterday, fiber.Map{
		"flow":       "medium",
		"mood":       "fine",
		"pain_level": 3,
	}, cookie), -1)
	if err != nil {
		t.Fatalf("upsert request failed: %v", err)
	}
	if upsert.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 on upsert, got %d", upsert.StatusCode)
	}

	// A second write to the same day updates in place.
	again, err := app.Test(jsonRequest(t, http.MethodPut, "/api/logs/"+yesterday, fiber.Map{
		"flow": "heavy",
	}, cookie), -1)
	if err != nil {
		t.Fatalf("second upsert request failed: %v", err)
	}
	if again.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 on repeat upsert, got %d", again.StatusCode)
	}

	list, err := app.Test(jsonRequest(t, http.MethodGet, "/api/logs", nil, cookie), -1)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	var logs []struct {
		Flow string `json:"flow"`
	}
	decodeJSONBody(t, list, &logs)
	if len(logs) != 1 {
		t.Fatalf("expected a single log row per day, got %d", len(logs))
	}
	if logs[0].Flow != "heavy" {
		t.Fatalf("expected the second write to win, got %q", logs[0].Flow)
	}

	invalidFlow, err := app.Test(jsonRequest(t, http.MethodPut, "/api/logs/"+yesterday, fiber.Map{
		"flow": "torrential",
	}, cookie), -1)
	if err != nil {
		t.Fatalf("invalid flow request failed: %v", err)
	}
	if invalidFlow.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for an unknown flow, got %d", invalidFlow.StatusCode)
	}

	deleted, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/logs/"+yesterday, nil, cookie), -1)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	if deleted.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 on delete, got %d", deleted.StatusCode)
	}
	missing, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/logs/"+yesterday, nil, cookie), -1)
	if err != nil {
		t.Fatalf("repeat delete request failed: %v", err)
	}
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 deleting a removed log, got %d", missing.StatusCode)
	}
}

func TestProfileEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestAccount(t, app, "profile@example.com")

	update, err := app.Test(jsonRequest(t, http.MethodPut, "/api/profile", fiber.Map{
		"average_cycle_length": 30,
		"is_regular":           true,
	}, cookie), -1)
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if update.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 on update, got %d", update.StatusCode)
	}

	get, err := app.Test(jsonRequest(t, http.MethodGet, "/api/profile", nil, cookie), -1)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	var profile struct {
		AverageCycleLength *int `json:"average_cycle_length"`
		IsRegular          bool `json:"is_regular"`
	}
	decodeJSONBody(t, get, &profile)
	if profile.AverageCycleLength == nil || *profile.AverageCycleLength != 30 {
		t.Fatalf("expected cycle length 30, got %v", profile.AverageCycleLength)
	}
	if !profile.IsRegular {
		t.Fatal("expected is_regular persisted")
	}

	outOfRange, err := app.Test(jsonRequest(t, http.MethodPut, "/api/profile", fiber.Map{
		"average_cycle_length": 90,
	}, cookie), -1)
	if err != nil {
		t.Fatalf("out of range request failed: %v", err)
	}
	if outOfRange.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for an out of range hint, got %d", outOfRange.StatusCode)
	}
}

func TestCalendarEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestAccount(t, app, "calendar@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/calendar?month=2024-03", nil, cookie), -1)
	if err != nil {
		t.Fatalf("calendar request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	var payload struct {
		Month string `json:"month"`
		Days  []struct {
			DateString string `json:"date_string"`
			InMonth    bool   `json:"in_month"`
		} `json:"days"`
	}
	decodeJSONBody(t, response, &payload)
	if payload.Month != "2024-03" {
		t.Fatalf("expected month echoed back, got %q", payload.Month)
	}
	if len(payload.Days) != 42 {
		t.Fatalf("expected a 42 day grid for March 2024, got %d", len(payload.Days))
	}

	badMonth, err := app.Test(jsonRequest(t, http.MethodGet, "/api/calendar?month=March", nil, cookie), -1)
	if err != nil {
		t.Fatalf("bad month request failed: %v", err)
	}
	if badMonth.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a malformed month, got %d", badMonth.StatusCode)
	}
}

func TestChatUnavailableWithoutKey(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestAccount(t, app, "chat@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/chat", fiber.Map{
		"message": "hello",
	}, cookie), -1)
	if err != nil {
		t.Fatalf("chat request failed: %v", err)
	}
	if response.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 without an api key, got %d", response.StatusCode)
	}

	history, err := app.Test(jsonRequest(t, http.MethodGet, "/api/chat/history", nil, cookie), -1)
	if err != nil {
		t.Fatalf("history request failed: %v", err)
	}
	if history.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 on empty history, got %d", history.StatusCode)
	}
	var messages []any
	decodeJSONBody(t, history, &messages)
	if len(messages) != 0 {
		t.Fatalf("expected no history for a fresh account, got %d entries", len(messages))
	}
}

func TestHealthz(t *testing.T) {
	app, _ := newTestApp(t)

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/healthz", nil, ""), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}
