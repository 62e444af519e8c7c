package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/patrickprogramme/ytscribe/internal/app"
	"github.com/patrickprogramme/ytscribe/internal/jobs"
)

// fakeRunner simule le pipeline : rejoue les étapes puis rend un résultat
// ou une erreur fixés.
type fakeRunner struct {
	steps  []string
	result *app.Result
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, input string, opts app.Options, report app.Progress) (*app.Result, error) {
	for _, s := range f.steps {
		report(s)
	}
	return f.result, f.err
}

func newTestServer(t *testing.T, runner Runner) (*Server, *jobs.Store) {
	t.Helper()
	store, err := jobs.Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("jobs.Open : %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, runner, nil), store
}

// waitStatus interroge le store jusqu'à ce que le job quitte les états
// transitoires (le traitement est asynchrone).
func waitStatus(t *testing.T, store *jobs.Store, id string) *jobs.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		j, err := store.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("Get : %v", err)
		}
		if j.Status == jobs.StatusCompleted || j.Status == jobs.StatusError {
			return j
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("le job n'a jamais atteint un état final")
	return nil
}

func TestExtract_CompletesJob(t *testing.T) {
	runner := &fakeRunner{
		steps:  []string{"Extracting video ID...", "Converting to markdown..."},
		result: &app.Result{Markdown: "# Doc", Summary: "# Doc - Summary"},
	}
	srv, store := newTestServer(t, runner)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/extract", "application/json",
		strings.NewReader(`{"url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ","generate_summary":true}`))
	if err != nil {
		t.Fatalf("POST : %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("statut = %d", resp.StatusCode)
	}
	var accepted struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
		t.Fatalf("décodage : %v", err)
	}
	if accepted.JobID == "" {
		t.Fatal("job_id vide")
	}

	j := waitStatus(t, store, accepted.JobID)
	if j.Status != jobs.StatusCompleted || j.Result != "# Doc" || j.Summary != "# Doc - Summary" {
		t.Errorf("job final : %+v", j)
	}

	// l'API reflète le store
	st, err := http.Get(ts.URL + "/api/status/" + accepted.JobID)
	if err != nil {
		t.Fatalf("GET status : %v", err)
	}
	defer st.Body.Close()
	var got statusResponse
	if err := json.NewDecoder(st.Body).Decode(&got); err != nil {
		t.Fatalf("décodage status : %v", err)
	}
	if got.Status != "completed" || got.Result != "# Doc" {
		t.Errorf("réponse status : %+v", got)
	}
}

func TestExtract_FailedJob(t *testing.T) {
	runner := &fakeRunner{err: errors.New("no caption track available")}
	srv, store := newTestServer(t, runner)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/extract", "application/json",
		strings.NewReader(`{"url":"dQw4w9WgXcQ"}`))
	if err != nil {
		t.Fatalf("POST : %v", err)
	}
	defer resp.Body.Close()
	var accepted struct {
		JobID string `json:"job_id"`
	}
	json.NewDecoder(resp.Body).Decode(&accepted)

	j := waitStatus(t, store, accepted.JobID)
	if j.Status != jobs.StatusError || j.Error != "no caption track available" {
		t.Errorf("job final : %+v", j)
	}
}

func TestExtract_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	tests := []struct {
		name string
		body string
	}{
		{"JSON invalide", `{`},
		{"url absente", `{"generate_summary":true}`},
		{"indice de langue inconnu", `{"url":"x","summary_lang":"fr"}`},
	}
	for _, tt := range tests {
		resp, err := http.Post(ts.URL+"/api/extract", "application/json", strings.NewReader(tt.body))
		if err != nil {
			t.Fatalf("%s : POST : %v", tt.name, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s : statut = %d, attendu 400", tt.name, resp.StatusCode)
		}
	}
}

func TestStatus_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/status/inconnu")
	if err != nil {
		t.Fatalf("GET : %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("statut = %d, attendu 404", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET : %v", err)
	}
	defer resp.Body.Close()
	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("décodage : %v", err)
	}
	if got["status"] != "healthy" {
		t.Errorf("health = %+v", got)
	}
}
