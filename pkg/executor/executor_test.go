package executor

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func TestExecuteWithInput(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	out, err := New().ExecuteWithInput(context.Background(), strings.NewReader("budget report"), "cat")
	if err != nil {
		t.Fatalf("ExecuteWithInput() error = %v", err)
	}
	if out != "budget report" {
		t.Errorf("ExecuteWithInput() = %q", out)
	}
}

func TestExecuteFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	_, err := New().Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail on non-zero exit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should carry stderr, got %v", err)
	}
}
