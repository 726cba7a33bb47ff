package cmd

import (
	"billed/internal/newbill"
	"billed/internal/session"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// billsAPI — минимальный API notes de frais для CLI.
type billsAPI struct {
	mu       sync.Mutex
	requests []string
	uploaded string
	patched  map[string]any
}

func (a *billsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = append(a.requests, r.Method+" "+r.URL.Path)

	if r.Header.Get("Authorization") != "Bearer tok" {
		http.Error(w, "Отсутствует access token", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/bills":
		f, fh, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(f)
		f.Close()
		a.uploaded = fh.Filename + ":" + string(data) + ":" + r.FormValue("email")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"fileUrl":"http://api/api/bills/k1/file","key":"k1"}}`))
	case r.Method == http.MethodPatch && r.URL.Path == "/api/bills/k1":
		_ = json.NewDecoder(r.Body).Decode(&a.patched)
		_, _ = w.Write([]byte(`{"data":{"id":"k1"}}`))
	case r.Method == http.MethodGet && r.URL.Path == "/api/bills":
		_, _ = w.Write([]byte(`{"data":[{"id":"k1","type":"Transports","name":"Taxi","amount":25,"date":"2024-03-01","status":"pending"}]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func setupCLI(t *testing.T) (*billsAPI, string, string) {
	t.Helper()
	api := &billsAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	sessPath := filepath.Join(dir, "session.json")
	require.NoError(t, session.Save(sessPath, newbill.Session{Email: "a@a", Type: "Employee", Token: "tok"}))
	return api, srv.URL, sessPath
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestSubmit_UploadsUpdatesAndListsBills(t *testing.T) {
	api, url, sessPath := setupCLI(t)
	receipt := filepath.Join(t.TempDir(), "ticket.jpg")
	require.NoError(t, os.WriteFile(receipt, []byte("jpeg-bytes"), 0o644))

	out, _, err := runCLI(t, "submit",
		"--api", url, "--session", sessPath,
		"--file", receipt,
		"--type", "Transports", "--name", "Taxi", "--amount", "25",
		"--date", "2024-03-01", "--vat", "5", "--pct=0", "--commentary", "aéroport",
	)
	require.NoError(t, err)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, []string{"POST /api/bills", "PATCH /api/bills/k1", "GET /api/bills"}, api.requests)
	assert.Equal(t, "ticket.jpg:jpeg-bytes:a@a", api.uploaded)
	require.NotNil(t, api.patched)
	assert.Equal(t, float64(25), api.patched["amount"])
	assert.Equal(t, float64(20), api.patched["pct"])
	assert.Equal(t, "ticket.jpg", api.patched["fileName"])

	assert.Contains(t, out, "Mes notes de frais")
	assert.Contains(t, out, "Taxi")
}

func TestSubmit_BadFormatStopsBeforeUpload(t *testing.T) {
	api, url, sessPath := setupCLI(t)

	out, errOut, err := runCLI(t, "submit",
		"--api", url, "--session", sessPath,
		"--file", filepath.Join(t.TempDir(), "facture.pdf"),
		"--name", "Taxi", "--amount", "25", "--date", "2024-03-01",
	)

	require.ErrorIs(t, err, newbill.ErrInvalidExtension)
	assert.Contains(t, errOut, newbill.BadFormatMessage)
	assert.NotContains(t, out, "Mes notes de frais")

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Empty(t, api.requests)
}

func TestSubmit_RequiresSession(t *testing.T) {
	api, url, _ := setupCLI(t)

	_, _, err := runCLI(t, "submit",
		"--api", url, "--session", filepath.Join(t.TempDir(), "none.json"),
		"--file", "ticket.jpg", "--amount", "25", "--date", "2024-03-01",
	)

	assert.ErrorIs(t, err, session.ErrNoSession)
	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Empty(t, api.requests)
}
