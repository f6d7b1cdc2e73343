package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension scripts need a POSIX shell")
	}
	tempDir := t.TempDir()

	script := "#!/bin/sh\n" +
		"echo \"" + EnvConfig + "=$" + EnvConfig + "\"\n" +
		"echo \"" + EnvVerbose + "=$" + EnvVerbose + "\"\n" +
		"echo \"args=$*\"\n" +
		"exit 3\n"
	if err := os.WriteFile(filepath.Join(tempDir, "wlt-hello"), []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write wlt-hello: %v", err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	oldConfig, oldVerbose, oldStdout := *configFile, *Verbose, stdout
	defer func() { *configFile, *Verbose, stdout = oldConfig, oldVerbose, oldStdout }()
	*configFile = filepath.Join(tempDir, "custom.yaml")
	*Verbose = true
	var buf bytes.Buffer
	stdout = &buf

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found {
		t.Fatalf("RunExtension() did not find wlt-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension() exit code = %d, want 3", code)
	}
	for _, want := range []string{
		EnvConfig + "=" + *configFile,
		EnvVerbose + "=true",
		"args=a b",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("extension output does not contain %q:\n%s", want, buf.String())
		}
	}
}

func TestExtensionMechanism_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("nope", nil); found || code != 0 {
		t.Errorf("RunExtension(nope) = %v, %d, want false, 0", found, code)
	}
}
