package projects

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/crucial707/timetrack/cmd/cli/auth"
	"github.com/crucial707/timetrack/cmd/cli/root"
	"github.com/crucial707/timetrack/internal/models"
)

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "tokens.json")
	t.Setenv("HOME", dir)
	t.Setenv("TIMETRACK_API_URL", srv.URL)
	t.Setenv("TIMETRACK_TOKEN_FILE", tokenFile)
	if err := auth.SaveTokens(tokenFile, auth.Tokens{Access: "A", Refresh: "R"}); err != nil {
		t.Fatal(err)
	}

	rootCmd := root.New()
	InitProjects(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListProjects_TableOutput(t *testing.T) {
	projects := []models.Project{
		{ID: 1, Title: "Website", IsActive: true, UpdatedAt: time.Now()},
		{ID: 2, Title: "Mobile", UpdatedAt: time.Now()},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/project" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer A" {
			t.Errorf("missing bearer token")
		}
		_ = json.NewEncoder(w).Encode(projects)
	}))
	defer srv.Close()

	out, err := run(t, srv, "projects", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Website") || !strings.Contains(out, "Mobile") {
		t.Fatalf("expected titles in output, got: %s", out)
	}
}

func TestListProjects_JSONOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Project{{ID: 1, Title: "Website"}})
	}))
	defer srv.Close()

	out, err := run(t, srv, "projects", "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []models.Project
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0].Title != "Website" {
		t.Errorf("unexpected projects: %+v", got)
	}
}

func TestUpdateProject_SendsOnlyChangedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PATCH" || r.URL.Path != "/api/project/4" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var in map[string]interface{}
		json.NewDecoder(r.Body).Decode(&in)
		if len(in) != 1 || in["is_active"] != false {
			t.Errorf("unexpected payload: %v", in)
		}
		_ = json.NewEncoder(w).Encode(models.Project{ID: 4, Title: "Old"})
	}))
	defer srv.Close()

	out, err := run(t, srv, "projects", "update", "4", "--active=false")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(out, "Updated project 4") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestGetProject_RejectsNonNumericID(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := run(t, srv, "projects", "get", "abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
