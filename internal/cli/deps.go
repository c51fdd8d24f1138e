package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/xolan/daylog/internal/config"
	"github.com/xolan/daylog/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services
	Services *service.Services
	Config   config.Config

	// ReadPassword prompts for a secret without echoing it
	ReadPassword func(prompt string) (string, error)
	// Sleep waits out redirect delays
	Sleep func(d time.Duration)

	lines *bufio.Reader
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services, cfg config.Config) *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Services: services,
		Config:   cfg,
		Sleep:    time.Sleep,
	}
}

// ReadLine prints prompt and reads one line from Stdin.
func (d *Deps) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		_, _ = fmt.Fprint(d.Stdout, prompt)
	}
	if d.lines == nil {
		d.lines = bufio.NewReader(d.Stdin)
	}
	line, err := d.lines.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Secret reads a password through ReadPassword, or from Stdin when no
// terminal reader is set.
func (d *Deps) Secret(prompt string) (string, error) {
	if d.ReadPassword != nil {
		return d.ReadPassword(prompt)
	}
	return d.ReadLine(prompt)
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (d *Deps) Confirm(prompt string) bool {
	answer, err := d.ReadLine(prompt)
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// Wait sleeps for d unless it is zero.
func (d *Deps) Wait(delay time.Duration) {
	if delay > 0 && d.Sleep != nil {
		d.Sleep(delay)
	}
}
