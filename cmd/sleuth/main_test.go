package main

import (
	"bytes"
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sleuth/internal/provenance"
	"sleuth/internal/testsupport"
)

type cliEnv struct {
	configPath string
	originals  string
	queries    string
}

// setupCLIEnv creates two originals and a folder of queries: an exact copy of
// a.png, a crop of it, and an unrelated image.
func setupCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("SLEUTH_ORIGINALS_DIR", "")
	t.Setenv("SLEUTH_LOG_LEVEL", "")

	env := cliEnv{
		configPath: filepath.Join(base, "sleuth.toml"),
		originals:  filepath.Join(base, "originals"),
		queries:    filepath.Join(base, "queries"),
	}
	a := testsupport.Textured(200, 150, 31)
	testsupport.WritePNG(t, filepath.Join(env.originals, "a.png"), a)
	testsupport.WritePNG(t, filepath.Join(env.originals, "b.png"), testsupport.Textured(180, 120, 32))

	testsupport.WritePNG(t, filepath.Join(env.queries, "easy", "copy_of_a.png"), a)
	testsupport.WritePNG(t, filepath.Join(env.queries, "hard", "crop_of_a.PNG"), testsupport.Crop(a, image.Rect(20, 10, 180, 130)))
	testsupport.WritePNG(t, filepath.Join(env.queries, "random", "unrelated.png"), testsupport.Textured(160, 160, 99))
	return env
}

func runCLI(t *testing.T, env cliEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd, cliCtx := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--config", env.configPath, "--originals", env.originals}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	if closeErr := cliCtx.Close(); err == nil {
		err = closeErr
	}
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestRegisterListsOriginals(t *testing.T) {
	env := setupCLIEnv(t)
	out, stderr, err := runCLI(t, env, "register")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	requireContains(t, out, "a.png")
	requireContains(t, out, "b.png")
	requireContains(t, out, "200x150")
	requireContains(t, out, "Total originals: 2")
	requireContains(t, stderr, "registered original")
}

func TestLogFileReceivesRecords(t *testing.T) {
	env := setupCLIEnv(t)
	logPath := filepath.Join(t.TempDir(), "logs", "sleuth.log")
	if err := os.WriteFile(env.configPath, []byte("[logging]\nfile = \""+logPath+"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := runCLI(t, env, "register"); err != nil {
		t.Fatalf("register: %v", err)
	}
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	requireContains(t, string(content), `"msg":"registration complete"`)
}

func TestMatchTextReport(t *testing.T) {
	env := setupCLIEnv(t)
	query := filepath.Join(env.queries, "easy", "copy_of_a.png")
	out, _, err := runCLI(t, env, "match", "--all", query)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "Processing: copy_of_a.png")
	requireContains(t, out, "Rule 1 (Metadata): FIRED")
	requireContains(t, out, "-> MATCH to a.png")
	requireContains(t, out, "Keypoint")
}

func TestMatchJSONOutput(t *testing.T) {
	env := setupCLIEnv(t)
	query := filepath.Join(env.queries, "easy", "copy_of_a.png")
	out, _, err := runCLI(t, env, "match", "--format", "json", query)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	var outcome provenance.Outcome
	if err := json.Unmarshal([]byte(out), &outcome); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if !outcome.Decision.Accepted || outcome.Decision.BestMatchID != "a.png" {
		t.Fatalf("decision = %+v", outcome.Decision)
	}
	if len(outcome.Candidates) != 2 || outcome.RunID == "" {
		t.Fatalf("outcome = %+v", outcome)
	}
}

func TestMatchYAMLAndThresholdFlags(t *testing.T) {
	env := setupCLIEnv(t)
	query := filepath.Join(env.queries, "easy", "copy_of_a.png")
	out, _, err := runCLI(t, env, "--threshold-mode", "absolute", "--threshold", "141", "match", "-f", "yaml", query)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "accepted: false")
	requireContains(t, out, "required: 141")
}

func TestThresholdModeRequiresThreshold(t *testing.T) {
	env := setupCLIEnv(t)
	query := filepath.Join(env.queries, "easy", "copy_of_a.png")
	_, _, err := runCLI(t, env, "--threshold-mode", "absolute", "match", "-f", "yaml", query)
	if err == nil || !strings.Contains(err.Error(), "--threshold") {
		t.Fatalf("expected an error asking for --threshold, got %v", err)
	}

	out, _, err := runCLI(t, env, "--threshold-mode", "fraction", "match", "-f", "yaml", query)
	if err != nil {
		t.Fatalf("unchanged mode without --threshold: %v", err)
	}
	requireContains(t, out, "required: 84")
}

func TestMatchRejectsUnrelatedImage(t *testing.T) {
	env := setupCLIEnv(t)
	query := filepath.Join(env.queries, "random", "unrelated.png")
	out, _, err := runCLI(t, env, "match", "--format", "json", query)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	var outcome provenance.Outcome
	if err := json.Unmarshal([]byte(out), &outcome); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	d := outcome.Decision
	if d.Accepted || d.BestMatchID != "" {
		t.Fatalf("unrelated image accepted: %+v", d)
	}
	for _, c := range outcome.Candidates {
		if c.TotalScore >= d.Required {
			t.Fatalf("%s scored %d, required %d", c.TargetID, c.TotalScore, d.Required)
		}
	}
}

func TestMatchRejectsUnknownFormat(t *testing.T) {
	env := setupCLIEnv(t)
	if _, _, err := runCLI(t, env, "match", "--format", "xml", "x.png"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestBatchSectionsAndSummary(t *testing.T) {
	env := setupCLIEnv(t)
	out, _, err := runCLI(t, env, "batch", env.queries)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	easy := strings.Index(out, "== EASY")
	hard := strings.Index(out, "== HARD")
	random := strings.Index(out, "== RANDOM")
	if easy < 0 || hard < easy || random < hard {
		t.Fatalf("sections out of order:\n%s", out)
	}
	requireContains(t, out, "crop_of_a.PNG")
	requireContains(t, out, "Queries: 3  Matched: 2  Rejected: 1")
	requireContains(t, out, "== Summary ==")
}

func TestBatchListDoesNotInvestigate(t *testing.T) {
	env := setupCLIEnv(t)
	out, stderr, err := runCLI(t, env, "batch", "--list", env.queries)
	if err != nil {
		t.Fatalf("batch --list: %v", err)
	}
	requireContains(t, out, "== HARD")
	requireContains(t, out, "crop_of_a.PNG")
	requireContains(t, out, "3 query images in 3 sections")
	if strings.Contains(out, "Summary") || strings.Contains(stderr, "investigation complete") {
		t.Fatalf("list mode ran investigations:\n%s\n%s", out, stderr)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLIEnv(t)
	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists")
	}

	out, _, err = runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "threshold_mode")
	requireContains(t, out, env.originals)
}

func TestInvalidThresholdFlag(t *testing.T) {
	env := setupCLIEnv(t)
	if _, _, err := runCLI(t, env, "--threshold", "2", "register"); err == nil {
		t.Fatal("expected validation error for fraction threshold 2")
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLIEnv(t)
	out, _, err := runCLI(t, env, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Originals directory:")
	requireContains(t, out, "2 candidate files")

	env.originals = filepath.Join(t.TempDir(), "missing")
	out, _, err = runCLI(t, env, "check")
	if err == nil {
		t.Fatal("expected failure for missing originals")
	}
	requireContains(t, out, "does not exist")
}
