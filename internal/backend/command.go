package backend

import (
	"context"
	"os/exec"
	"strings"

	"github.com/nguyentantai21042004/live-summary/pkg/executor"
)

type command struct {
	exec       executor.Executor
	binaryPath string
	args       []string
	maxWords   int
}

// NewCommand runs a local summarization binary. The transcript is written to
// its stdin and the summary is read from its stdout.
func NewCommand(ex executor.Executor, binaryPath string, args []string, maxWords int) Backend {
	return &command{
		exec:       ex,
		binaryPath: binaryPath,
		args:       args,
		maxWords:   maxWords,
	}
}

func (c *command) Name() string { return "command" }

func (c *command) Available() bool {
	if c.binaryPath == "" {
		return false
	}
	_, err := exec.LookPath(c.binaryPath)
	return err == nil
}

func (c *command) MaxInputWords() int { return c.maxWords }

func (c *command) Summarize(ctx context.Context, text string) (string, error) {
	if c.binaryPath == "" {
		return "", wrap(c.Name(), ErrUnavailable)
	}

	out, err := c.exec.ExecuteWithInput(ctx, strings.NewReader(text), c.binaryPath, c.args...)
	if err != nil {
		return "", wrap(c.Name(), err)
	}
	summary := strings.TrimSpace(out)
	if summary == "" {
		return "", wrap(c.Name(), ErrEmptyOutput)
	}
	return summary, nil
}
