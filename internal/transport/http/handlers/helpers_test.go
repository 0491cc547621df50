package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thorryuk/Sekai---Backend/internal/application/auth"
	"github.com/thorryuk/Sekai---Backend/internal/application/records"
	"github.com/thorryuk/Sekai---Backend/internal/infrastructure/supabase"
	"github.com/thorryuk/Sekai---Backend/internal/security"
	"github.com/thorryuk/Sekai---Backend/internal/tablestore"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/handlers"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/middleware"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/router"
)

// fakeTableAPI is an in-memory stand-in for the hosted table store.
// It speaks just enough PostgREST: eq filters, return=representation,
// array responses, {"message": ...} errors.
type fakeTableAPI struct {
	mu     sync.Mutex
	tables map[string][]map[string]any
	nextID int

	// failAll makes every call answer 500 with a store message.
	failAll bool
}

func newFakeTableAPI() *fakeTableAPI {
	return &fakeTableAPI{
		tables: map[string][]map[string]any{},
		nextID: 1,
	}
}

func (f *fakeTableAPI) seed(table string, row map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[table] = append(f.tables[table], row)
}

func (f *fakeTableAPI) match(row map[string]any, filters map[string]string) bool {
	for col, want := range filters {
		if fmt.Sprintf("%v", row[col]) != want {
			return false
		}
	}
	return true
}

func (f *fakeTableAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failAll {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"connection to database failed"}`))
		return
	}

	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	filters := map[string]string{}
	for col, vals := range r.URL.Query() {
		if len(vals) > 0 && strings.HasPrefix(vals[0], "eq.") {
			filters[col] = strings.TrimPrefix(vals[0], "eq.")
		}
	}

	writeRows := func(status int, rows []map[string]any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(rows)
	}

	switch r.Method {
	case http.MethodGet:
		out := []map[string]any{}
		for _, row := range f.tables[table] {
			if f.match(row, filters) {
				out = append(out, row)
			}
		}
		writeRows(http.StatusOK, out)

	case http.MethodPost:
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"invalid body"}`))
			return
		}
		payload["id"] = f.nextID
		f.nextID++
		f.tables[table] = append(f.tables[table], payload)
		writeRows(http.StatusCreated, []map[string]any{payload})

	case http.MethodPatch:
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		out := []map[string]any{}
		for _, row := range f.tables[table] {
			if f.match(row, filters) {
				for k, v := range payload {
					row[k] = v
				}
				out = append(out, row)
			}
		}
		writeRows(http.StatusOK, out)

	case http.MethodDelete:
		out := []map[string]any{}
		kept := []map[string]any{}
		for _, row := range f.tables[table] {
			if f.match(row, filters) {
				out = append(out, row)
			} else {
				kept = append(kept, row)
			}
		}
		f.tables[table] = kept
		writeRows(http.StatusOK, out)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// testEnv wires the full router against the fake table API.
type testEnv struct {
	router   http.Handler
	upstream *fakeTableAPI
	signer   *security.JWTSigner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	upstream := newFakeTableAPI()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	hash, err := bcrypt.GenerateFromPassword([]byte("coba2128"), bcrypt.MinCost)
	require.NoError(t, err)
	upstream.seed("users", map[string]any{
		"id":       1,
		"username": "test",
		"password": string(hash),
		"role":     "admin",
	})

	store := tablestore.NewClient(srv.URL, "test-key", time.Second)
	signer := security.NewJWTSigner("test-secret", "sekai-backend")

	authSvc := auth.NewService(
		supabase.NewUserRepo(store),
		security.NewBcryptHasher(),
		signer,
		auth.Config{AccessTTL: time.Minute, RefreshTTL: time.Hour},
	)
	recordsSvc := records.NewService(store)

	h, err := router.New(router.Deps{
		Auth:      handlers.NewAuthHandler(authSvc),
		Stores:    handlers.NewRecordsHandler(recordsSvc, records.Stores),
		Scans:     handlers.NewRecordsHandler(recordsSvc, records.Scans),
		AccessMW:  middleware.Gate(signer, auth.TokenAccess),
		RefreshMW: middleware.Gate(signer, auth.TokenRefresh),
	})
	require.NoError(t, err)

	return &testEnv{router: h, upstream: upstream, signer: signer}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// login runs the login flow and returns both tokens.
func (e *testEnv) login(t *testing.T) (access, refresh string) {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "test",
		"password": "coba2128",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	require.NotEmpty(t, body.RefreshToken)
	return body.AccessToken, body.RefreshToken
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), rr.Body.String())
}
