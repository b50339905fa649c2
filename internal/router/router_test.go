package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"care-companion/internal/adapters/auth/jwtauth"
	"care-companion/internal/router"
)

// 2025-03-01 08:05 UTC: la dosis de las 08:00 queda Taken.
var fixedNow = time.Date(2025, 3, 1, 8, 5, 0, 0, time.UTC)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	tokens, err := jwtauth.NewManager(jwtauth.Config{
		Secret: []byte("test-secret-0123456789"),
		Issuer: "care-companion-test",
		TTL:    time.Hour,
	})
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Tokens:     tokens,
		BcryptCost: bcrypt.MinCost,
		Now:        func() time.Time { return fixedNow },
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_CaregiverAndElderly(t *testing.T) {
	ts := newServer(t)

	// 1) Caregiver se registra y recibe token
	famToken := signup(t, ts.URL, "Ana", "ana@example.com", "555-0100")

	// 2) Crea persona cuidada con una medicación
	elderID := createElder(t, ts.URL, famToken, "rosa@example.com")

	// 3) La ve en su familia
	{
		st, body := doReq(t, ts.URL, "GET", "/api/family-members", famToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 family-members, got %d body=%s", st, string(body))
		}
		var fam []struct {
			ID         string `json:"id"`
			Relation   string `json:"relation"`
			HealthData struct {
				Age int `json:"age"`
			} `json:"healthData"`
		}
		_ = json.Unmarshal(body, &fam)
		if len(fam) != 1 || fam[0].ID != elderID || fam[0].Relation != "Parent" || fam[0].HealthData.Age != 80 {
			t.Fatalf("unexpected family list: %s", string(body))
		}
	}

	// 4) GET por id
	{
		st, body := doReq(t, ts.URL, "GET", "/api/elderly/"+elderID, famToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get elderly, got %d body=%s", st, string(body))
		}
	}

	// 5) PUT parcial: solo la edad
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/elderly/"+elderID, famToken, map[string]any{
			"healthData": map[string]any{"age": 81},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update elderly, got %d body=%s", st, string(body))
		}
		var resp struct {
			Message string `json:"message"`
			Elderly struct {
				Name       string `json:"name"`
				HealthData struct {
					Age         int              `json:"age"`
					Medications []map[string]any `json:"medications"`
				} `json:"healthData"`
			} `json:"elderly"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Elderly.HealthData.Age != 81 || resp.Elderly.Name != "Rosa" || len(resp.Elderly.HealthData.Medications) != 1 {
			t.Fatalf("merge lost fields: %s", string(body))
		}
	}

	// 6) La lista (cacheada) refleja el cambio
	{
		st, body := doReq(t, ts.URL, "GET", "/api/family-members", famToken, nil)
		if st != http.StatusOK || !bytes.Contains(body, []byte(`"age":81`)) {
			t.Fatalf("expected updated family list, got %d body=%s", st, string(body))
		}
	}

	// 7) Elderly hace login con las credenciales que le creó la familia
	elderToken := login(t, ts.URL, "rosa@example.com", "secret", "elderly")

	// 8) Ve su medicación
	{
		st, body := doReq(t, ts.URL, "GET", "/api/medications", elderToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 medications, got %d body=%s", st, string(body))
		}
		var meds []struct {
			Name     string `json:"name"`
			Duration string `json:"duration"`
		}
		_ = json.Unmarshal(body, &meds)
		if len(meds) != 1 || meds[0].Name != "Aspirin" || meds[0].Duration != "7 days" {
			t.Fatalf("unexpected medications: %s", string(body))
		}
	}

	// 9) Agenda propia a las 08:05 => Taken
	{
		st, body := doReq(t, ts.URL, "GET", "/api/agenda", elderToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 agenda, got %d body=%s", st, string(body))
		}
		items := agendaItems(t, body)
		if len(items) != 1 || items[0].Status != "Taken" || items[0].Variant != "ok" || items[0].Title != "Aspirin - Morning" {
			t.Fatalf("unexpected agenda: %s", string(body))
		}
	}

	// 10) El caregiver ve la misma agenda, pero a las 07:50 => DueSoon
	{
		path := "/api/elderly/" + elderID + "/agenda?at=2025-03-01T07:50:00Z"
		st, body := doReq(t, ts.URL, "GET", path, famToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 linked agenda, got %d body=%s", st, string(body))
		}
		items := agendaItems(t, body)
		if len(items) != 1 || items[0].Status != "DueSoon" {
			t.Fatalf("unexpected linked agenda: %s", string(body))
		}
	}

	// 11) Roles: el elderly no puede crear personas, el caregiver no tiene /medications
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/create-elderly", elderToken, map[string]any{})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 create-elderly as elderly, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/medications", famToken, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 medications as family, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/family-members", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
	}
}

func TestHTTP_UnlinkedPersonIsNotFound(t *testing.T) {
	ts := newServer(t)

	tokenA := signup(t, ts.URL, "Ana", "ana@example.com", "555-0100")
	tokenB := signup(t, ts.URL, "Beto", "beto@example.com", "555-0200")
	elderID := createElder(t, ts.URL, tokenA, "rosa@example.com")

	for _, path := range []string{"/api/elderly/" + elderID, "/api/elderly/" + elderID + "/agenda"} {
		st, body := doReq(t, ts.URL, "GET", path, tokenB, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d body=%s", path, st, string(body))
		}
	}

	st, _ := doReq(t, ts.URL, "PUT", "/api/elderly/"+elderID, tokenB, map[string]any{"name": "X"})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 update by unlinked caregiver, got %d", st)
	}
}

func TestHTTP_DuplicatesAndCredentials(t *testing.T) {
	ts := newServer(t)

	token := signup(t, ts.URL, "Ana", "ana@example.com", "555-0100")

	// email repetido (case-insensitive)
	st, body := doReq(t, ts.URL, "POST", "/api/signup", "", map[string]any{
		"name": "Otra", "email": "ANA@example.com", "password": "x", "mobileNumber": "555-0999",
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate signup, got %d body=%s", st, string(body))
	}
	var errBody struct {
		Kind string `json:"kind"`
	}
	_ = json.Unmarshal(body, &errBody)
	if errBody.Kind != "DuplicateIdentity" {
		t.Fatalf("expected DuplicateIdentity kind, got %s", string(body))
	}

	// persona con el email del caregiver: conflicto y sin link huérfano
	st, _ = doReq(t, ts.URL, "POST", "/api/create-elderly", token, elderPayload("ana@example.com"))
	if st != http.StatusConflict {
		t.Fatalf("expected 409 create elderly with taken email, got %d", st)
	}
	st, body = doReq(t, ts.URL, "GET", "/api/family-members", token, nil)
	if st != http.StatusOK || string(bytes.TrimSpace(body)) != "[]" {
		t.Fatalf("expected empty family after failed create, got %d body=%s", st, string(body))
	}

	// password incorrecto / usuario inexistente
	st, _ = doReq(t, ts.URL, "POST", "/api/login", "", map[string]any{"email": "ana@example.com", "password": "wrong"})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 bad password, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "POST", "/api/login", "", map[string]any{"email": "nobody@example.com", "password": "x"})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown user, got %d", st)
	}
}

func TestHTTP_CreateElderly_RejectsBadSchedule(t *testing.T) {
	ts := newServer(t)
	token := signup(t, ts.URL, "Ana", "ana@example.com", "555-0100")

	payload := elderPayload("rosa@example.com")
	payload["healthData"].(map[string]any)["medications"] = []map[string]any{{
		"name": "Aspirin", "dosage": "100mg", "frequency": "Once a day",
		"schedule": []map[string]any{{"timeOfDay": "Morning", "time": "8am"}},
	}}

	st, body := doReq(t, ts.URL, "POST", "/api/create-elderly", token, payload)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 malformed schedule, got %d body=%s", st, string(body))
	}
	if !bytes.Contains(body, []byte("MalformedSchedule")) {
		t.Fatalf("expected MalformedSchedule kind, body=%s", string(body))
	}
}

// -------------------------
// helpers
// -------------------------

type agendaItem struct {
	Status  string `json:"status"`
	Variant string `json:"variant"`
	Title   string `json:"title"`
}

func agendaItems(t *testing.T, body []byte) []agendaItem {
	t.Helper()
	var resp struct {
		Items []agendaItem `json:"items"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode agenda: %v body=%s", err, string(body))
	}
	return resp.Items
}

func elderPayload(email string) map[string]any {
	return map[string]any{
		"name":     "Rosa",
		"email":    email,
		"password": "secret",
		"healthData": map[string]any{
			"age":    80,
			"gender": "Female",
			"medications": []map[string]any{{
				"name":      "Aspirin",
				"dosage":    "100mg",
				"frequency": "Once a day",
				"schedule":  []map[string]any{{"timeOfDay": "Morning", "time": "08:00"}},
			}},
			"allergies":        []string{"Penicillin"},
			"emergencyContact": map[string]any{"name": "Ana", "phone": "555-0100"},
		},
	}
}

func signup(t *testing.T, baseURL, name, email, phone string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/signup", "", map[string]any{
		"name":         name,
		"email":        email,
		"password":     "secret",
		"mobileNumber": phone,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 signup, got %d body=%s", st, string(body))
	}

	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Token == "" {
		t.Fatalf("signup: missing token body=%s", string(body))
	}
	return resp.Token
}

func login(t *testing.T, baseURL, email, password, wantRole string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}

	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Token == "" || resp.Role != wantRole {
		t.Fatalf("login: unexpected body=%s", string(body))
	}
	return resp.Token
}

func createElder(t *testing.T, baseURL, token, email string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/create-elderly", token, elderPayload(email))
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create elderly, got %d body=%s", st, string(body))
	}

	var resp struct {
		Elderly struct {
			ID string `json:"id"`
		} `json:"elderly"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Elderly.ID == "" {
		t.Fatalf("create elderly: missing id body=%s", string(body))
	}
	return resp.Elderly.ID
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
