//go:build integration

package cases

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baechuer/explore-with-me/services/main-service/test/integration/infra"
	"github.com/baechuer/explore-with-me/services/main-service/test/integration/infra/wait"
)

const wireLayout = "2006-01-02 15:04:05"

type Env struct {
	BaseURL   string
	DBURL     string
	JWTSecret string
	JWTIssuer string

	AdminToken string
}

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("missing env %s", k)
	}
	return v
}

// setup expects a running main-service pointed at DATABASE_URL.
func setup(t *testing.T) Env {
	t.Helper()

	e := Env{
		BaseURL:   mustEnv(t, "EWM_BASE_URL"),
		DBURL:     mustEnv(t, "DATABASE_URL"),
		JWTSecret: mustEnv(t, "ADMIN_JWT_SECRET"),
		JWTIssuer: os.Getenv("ADMIN_JWT_ISSUER"),
	}

	if err := wait.HTTP200(e.BaseURL+"/healthz", 10*time.Second); err != nil {
		t.Fatalf("main-service not ready: %v", err)
	}

	db, err := infra.OpenDB(e.DBURL)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, infra.PingDB(db))
	require.NoError(t, infra.Reset(db))

	e.AdminToken, err = infra.MakeToken(e.JWTSecret, e.JWTIssuer, "ops", "admin", 15*time.Minute)
	require.NoError(t, err)
	return e
}

type Envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Meta    map[string]string `json:"meta"`
	} `json:"error,omitempty"`
}

func doJSON(t *testing.T, method, url, token string, body any) (int, Envelope) {
	t.Helper()

	var b []byte
	if body != nil {
		var err error
		b, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env
}

type idResp struct {
	ID     int64  `json:"id"`
	State  string `json:"state"`
	Status string `json:"status"`
}

func decodeID(t *testing.T, env Envelope) idResp {
	t.Helper()
	var out idResp
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func createUser(t *testing.T, e Env, name string) int64 {
	t.Helper()
	code, env := doJSON(t, http.MethodPost, e.BaseURL+"/admin/users", e.AdminToken, map[string]any{
		"name": name, "email": name + "@example.com",
	})
	require.Equal(t, http.StatusCreated, code, "%+v", env.Error)
	return decodeID(t, env).ID
}

func createCategory(t *testing.T, e Env, name string) int64 {
	t.Helper()
	code, env := doJSON(t, http.MethodPost, e.BaseURL+"/admin/categories", e.AdminToken, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, code, "%+v", env.Error)
	return decodeID(t, env).ID
}

func createEvent(t *testing.T, e Env, userID, catID int64, title string, limit int) int64 {
	t.Helper()
	code, env := doJSON(t, http.MethodPost, fmt.Sprintf("%s/users/%d/events", e.BaseURL, userID), "", map[string]any{
		"annotation":        "Annotation long enough for " + title,
		"description":       "Description long enough for " + title,
		"title":             title,
		"category":          catID,
		"eventDate":         time.Now().UTC().Add(24 * time.Hour).Format(wireLayout),
		"location":          map[string]any{"lat": -33.87, "lon": 151.21},
		"participantLimit":  limit,
		"requestModeration": true,
	})
	require.Equal(t, http.StatusCreated, code, "%+v", env.Error)
	return decodeID(t, env).ID
}

func publish(t *testing.T, e Env, eventID int64) {
	t.Helper()
	code, env := doJSON(t, http.MethodPatch, fmt.Sprintf("%s/admin/events/%d", e.BaseURL, eventID), e.AdminToken,
		map[string]any{"stateAction": "PUBLISH_EVENT"})
	require.Equal(t, http.StatusOK, code, "%+v", env.Error)
}
