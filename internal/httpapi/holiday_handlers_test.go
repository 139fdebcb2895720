package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"staffhub.org/internal/holidays"
	"staffhub.org/internal/obs"
)

func TestHolidayListIsPublic(t *testing.T) {
	api := newTestAPI(t)
	resp := api.get("/v1/holidays", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	list := decode[[]holidays.Holiday](t, resp)
	if list == nil {
		t.Fatal("expected empty array, got null")
	}
}

func TestHolidayCreateRequiresAuth(t *testing.T) {
	api := newTestAPI(t)
	resp := api.post("/v1/holidays", map[string]any{"title": "New Year", "date": "2026-01-01"}, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestHolidayLifecycle(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(adminEmail, adminPassword)
	authz := map[string]string{"Authorization": "Bearer " + token}

	resp := api.post("/v1/holidays", map[string]any{
		"title":     "New Year",
		"date":      "2026-01-01",
		"message":   "office closed",
		"image_url": "",
	}, authz)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	created := decode[holidays.Holiday](t, resp)
	if created.ID == "" || created.CreatedBy != adminID {
		t.Fatalf("unexpected holiday: %+v", created)
	}

	resp = api.do(http.MethodPut, "/v1/holidays/"+created.ID, map[string]any{
		"title":     "New Year Party",
		"date":      "2026-01-01",
		"message":   "office closed",
		"image_url": "",
	}, authz)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	updated := decode[holidays.Holiday](t, resp)
	if updated.Title != "New Year Party" {
		t.Fatalf("title = %q", updated.Title)
	}

	resp = api.get("/v1/holidays", nil)
	list := decode[[]holidays.Holiday](t, resp)
	if len(list) != 1 {
		t.Fatalf("expected one holiday, got %d", len(list))
	}

	resp = api.do(http.MethodDelete, "/v1/holidays/"+created.ID, nil, authz)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = api.do(http.MethodDelete, "/v1/holidays/"+created.ID, nil, authz)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", resp.StatusCode)
	}
}

func TestHolidayCreateAuditCarriesAccount(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(adminEmail, adminPassword)

	logger := obs.Logger()
	origWriter := logger.Writer()
	logger.SetFlags(0)
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(origWriter)

	resp := api.post("/v1/holidays", map[string]any{
		"title": "Audit Day",
		"date":  "2026-06-01",
	}, map[string]string{"Authorization": "Bearer " + token})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var audited map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		if entry["event"] == "holiday.create" {
			audited = entry
			break
		}
	}
	if audited == nil {
		t.Fatal("expected a holiday.create audit entry")
	}
	if audited["account_id"] != adminID {
		t.Fatalf("account_id = %v, want %q", audited["account_id"], adminID)
	}
}

func TestHolidayCreateValidation(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(adminEmail, adminPassword)
	authz := map[string]string{"Authorization": "Bearer " + token}

	resp := api.post("/v1/holidays", map[string]any{"title": "", "date": "2026-01-01"}, authz)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHolidayImageUpload(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(adminEmail, adminPassword)

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}
	resp := api.upload("/v1/holidays/images", "party.png", png, token)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	body := decode[map[string]any](t, resp)
	url, _ := body["url"].(string)
	if !strings.HasPrefix(url, "/images/") {
		t.Fatalf("unexpected url: %q", url)
	}

	// The returned URL must actually be served by the same API.
	got := api.get(url, nil)
	defer got.Body.Close()
	if got.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d", url, got.StatusCode)
	}
	served, err := io.ReadAll(got.Body)
	if err != nil {
		t.Fatalf("read served image: %v", err)
	}
	if !bytes.Equal(served, png) {
		t.Fatalf("served image differs from upload")
	}
}

func TestHolidayImageUploadRejectsNonImage(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(adminEmail, adminPassword)

	resp := api.upload("/v1/holidays/images", "notes.txt", []byte("plain text"), token)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("expected error message")
	}
}

func (c *apiClient) upload(path, filename string, content []byte, token string) *http.Response {
	c.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		c.t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		c.t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		c.t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	return resp
}
