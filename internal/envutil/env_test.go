package envutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteThenLoadDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	values := map[string]string{
		"DAYFLOW_TEST_API": "http://api.internal:5000/api",
		"DAYFLOW_TEST_SET": "from-file",
	}
	if err := WriteDotEnv(path, values, false); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("DAYFLOW_TEST_SET", "from-env")
	t.Setenv("DAYFLOW_TEST_API", "")
	os.Unsetenv("DAYFLOW_TEST_API")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("DAYFLOW_TEST_API"); got != values["DAYFLOW_TEST_API"] {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("DAYFLOW_TEST_SET"); got != "from-env" {
		t.Fatalf("expected existing env to win, got %q", got)
	}
}

func TestWriteRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := WriteDotEnv(path, map[string]string{"A": "1"}, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := WriteDotEnv(path, map[string]string{"A": "2"}, false)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
	if err := WriteDotEnv(path, map[string]string{"A": "2"}, true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
	got, err := ReadDotEnv(path)
	if err != nil || got["A"] != "2" {
		t.Fatalf("expected A=2, got %v %v", got, err)
	}
}

func TestLoadMissingFileIsNoop(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
