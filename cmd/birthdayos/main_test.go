package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testConfig writes a config that keeps all state under a temp dir.
func testConfig(t *testing.T, driver string) string {
	t.Helper()
	dir := t.TempDir()
	cfg := "grid:\n  size: 4\n  candles: 2\n  seed: 7\n" +
		"storage:\n  driver: " + driver + "\n  path: " + filepath.Join(dir, "data") + "\n" +
		"log_level: error\n"
	path := filepath.Join(dir, "birthdayos.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "birthdayos dev") {
		t.Errorf("expected version output, got: %s", out)
	}
}

func TestRootCmdHelp(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, sub := range []string{"play", "serve", "charms", "bonus", "redeem", "progress", "status", "reset"} {
		if !strings.Contains(buf.String(), sub) {
			t.Errorf("help does not list %q", sub)
		}
	}
}

func TestCollectionPersistsAcrossRuns(t *testing.T) {
	for _, driver := range []string{"file", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(t, driver)

			out, err := run(t, cfg, "charms", "add", "digi-pet")
			if err != nil || !strings.Contains(out, "Unlocked digi-pet") {
				t.Fatalf("add: %v %s", err, out)
			}
			out, _ = run(t, cfg, "charms", "add", "digi-pet")
			if !strings.Contains(out, "already in the collection") {
				t.Fatalf("duplicate add: %s", out)
			}
			if _, err := run(t, cfg, "bonus", "award", "10", "inspect-digi-pet"); err != nil {
				t.Fatalf("award: %v", err)
			}
			out, _ = run(t, cfg, "bonus", "award", "10", "inspect-digi-pet")
			if !strings.Contains(out, "already awarded") {
				t.Fatalf("repeat award: %s", out)
			}

			out, err = run(t, cfg, "charms", "list")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if !strings.Contains(out, "digi-pet") || !strings.Contains(out, "Total points: 185") {
				t.Fatalf("list output: %s", out)
			}

			out, _ = run(t, cfg, "status")
			if !strings.Contains(out, "[x] photo-snapped") || !strings.Contains(out, "[x] charm-collected") {
				t.Fatalf("status output: %s", out)
			}
		})
	}
}

func TestBonusRejectsNonFiniteAmount(t *testing.T) {
	cfg := testConfig(t, "file")
	for _, amount := range []string{"NaN", "Inf", "+Inf"} {
		if _, err := run(t, cfg, "bonus", "award", amount, "cake"); err == nil {
			t.Fatalf("amount %s accepted", amount)
		}
	}
	out, err := run(t, cfg, "bonus", "award", "3", "cake")
	if err != nil || !strings.Contains(out, "Awarded 3 points") {
		t.Fatalf("award after rejections: %v %s", err, out)
	}
}

func TestAddCustomCharm(t *testing.T) {
	cfg := testConfig(t, "file")
	good := `{"id":"kite","name":"Kite","icon":"K","power":"Lift","points":12,"iconBgColor":"rgb(10, 20, 30)"}`
	if out, err := run(t, cfg, "charms", "add", "--json", good); err != nil {
		t.Fatalf("add: %v %s", err, out)
	}
	bad := `{"id":"kite2","name":"Kite","icon":"K","power":"Lift","points":12,"iconColor":"expression(alert(1))"}`
	if _, err := run(t, cfg, "charms", "add", "--json", bad); err == nil {
		t.Fatalf("unsafe color accepted")
	}
	if _, err := run(t, cfg, "charms", "add"); err == nil {
		t.Fatalf("add without id or --json succeeded")
	}
	if _, err := run(t, cfg, "charms", "add", "nope"); err == nil {
		t.Fatalf("unknown catalog id accepted")
	}
}

func TestRemoveClearAndReset(t *testing.T) {
	cfg := testConfig(t, "file")
	run(t, cfg, "charms", "add", "mixtape")
	run(t, cfg, "charms", "add", "camcorder")
	run(t, cfg, "bonus", "award", "5", "cake")

	if _, err := run(t, cfg, "charms", "remove", "mixtape"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := run(t, cfg, "charms", "remove", "mixtape"); err == nil {
		t.Fatalf("second remove succeeded")
	}
	run(t, cfg, "charms", "clear")
	out, _ := run(t, cfg, "status")
	if !strings.Contains(out, "Charms:       0") || !strings.Contains(out, "Bonus points: 5") {
		t.Fatalf("status after clear: %s", out)
	}

	if _, err := run(t, cfg, "reset"); err == nil {
		t.Fatalf("reset without --yes succeeded")
	}
	if _, err := run(t, cfg, "reset", "--yes"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	out, _ = run(t, cfg, "status")
	if !strings.Contains(out, "Bonus points: 0") || !strings.Contains(out, "Progress: 0%") {
		t.Fatalf("status after reset: %s", out)
	}
}

func TestRedeemAndProgress(t *testing.T) {
	cfg := testConfig(t, "memory")
	// memory storage does not survive between runs; each run starts clean.
	out, err := run(t, cfg, "redeem")
	if err != nil || !strings.Contains(out, "redeemed") {
		t.Fatalf("redeem: %v %s", err, out)
	}

	cfg = testConfig(t, "file")
	run(t, cfg, "redeem")
	out, _ = run(t, cfg, "status")
	if !strings.Contains(out, "Redeemed:     true") {
		t.Fatalf("status: %s", out)
	}
	run(t, cfg, "redeem", "--undo")
	out, _ = run(t, cfg, "status")
	if !strings.Contains(out, "Redeemed:     false") {
		t.Fatalf("status after undo: %s", out)
	}

	if _, err := run(t, cfg, "progress", "complete", "call-answered"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := run(t, cfg, "progress", "complete", "moon-landing"); err == nil {
		t.Fatalf("unknown milestone accepted")
	}
	out, _ = run(t, cfg, "progress", "show")
	if !strings.Contains(out, "[x] call-answered") || !strings.Contains(out, "Progress: 16%") {
		t.Fatalf("progress: %s", out)
	}
	run(t, cfg, "progress", "reset")
	out, _ = run(t, cfg, "progress", "show")
	if !strings.Contains(out, "Progress: 0%") {
		t.Fatalf("progress after reset: %s", out)
	}
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("storage:\n  driver: floppy\n"), 0o644)
	if _, err := run(t, path, "status"); err == nil {
		t.Fatalf("bad driver accepted")
	}
}

func TestPlayNeedsTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	defer func() { isTerminal = orig }()

	cfg := testConfig(t, "memory")
	if _, err := run(t, cfg, "play"); !errors.Is(err, errNotTerminal) {
		t.Fatalf("err = %v, want errNotTerminal", err)
	}
}

func TestRouterServesPageAndAPI(t *testing.T) {
	cfg := testConfig(t, "memory")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", cfg})
	cmd.SetErr(new(bytes.Buffer))
	opts := &rootOptions{configPath: cfg}
	a, err := openApp(cmd, opts, false)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	srv := httptest.NewServer(newRouter(a))
	defer srv.Close()

	for path, want := range map[string]string{
		"/":                 "BirthdayOS",
		"/static/style.css": ".grid",
		"/api/catalog":      "digi-pet",
	} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		body := new(bytes.Buffer)
		body.ReadFrom(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || !strings.Contains(body.String(), want) {
			t.Fatalf("GET %s: %d %s", path, resp.StatusCode, body.String())
		}
	}

	resp, err := http.Post(srv.URL+"/api/games", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("new game: %d", resp.StatusCode)
	}
}
