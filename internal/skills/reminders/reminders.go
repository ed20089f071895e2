// Package reminders implements skills.Reminders on Apple Reminders by running
// JavaScript for Automation scripts through osascript.
package reminders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hyperifyio/skillbridge/internal/skills"
)

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Backend talks to Reminders.app.
type Backend struct {
	Run Runner
	// Osascript is the interpreter path. Empty means "osascript" on PATH.
	Osascript string
}

const listScript = `function run(argv) {
  const app = Application("Reminders");
  const list = app.lists.byName(argv[0]);
  const items = list.reminders();
  return JSON.stringify(items.map(function (r) {
    const due = r.dueDate();
    return {
      id: r.id(),
      title: r.name(),
      notes: r.body() || "",
      due_date: due ? due.toISOString() : "",
      completed: r.completed()
    };
  }));
}`

const addScript = `function run(argv) {
  const app = Application("Reminders");
  const list = app.lists.byName(argv[0]);
  const props = { name: argv[1] };
  if (argv[2]) { props.body = argv[2]; }
  if (argv[3]) {
    const due = new Date(argv[3]);
    if (isNaN(due.getTime())) { throw new Error("invalid due date: " + argv[3]); }
    props.dueDate = due;
  }
  const r = app.Reminder(props);
  list.reminders.push(r);
  return JSON.stringify({ id: r.id(), title: r.name(), notes: r.body() || "", due_date: "", completed: false });
}`

type scriptReminder struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	DueDate   string `json:"due_date"`
	Completed bool   `json:"completed"`
}

// List returns every reminder in the named list.
func (b *Backend) List(ctx context.Context, list string) ([]skills.Reminder, error) {
	out, err := b.script(ctx, listScript, list)
	if err != nil {
		return nil, err
	}
	var raw []scriptReminder
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}
	res := make([]skills.Reminder, 0, len(raw))
	for _, r := range raw {
		res = append(res, r.toReminder())
	}
	return res, nil
}

// Add creates a reminder. The due date is parsed by JavaScript's Date.
func (b *Backend) Add(ctx context.Context, in skills.NewReminder) (skills.Reminder, error) {
	out, err := b.script(ctx, addScript, in.List, in.Title, in.Notes, in.DueDate)
	if err != nil {
		return skills.Reminder{}, err
	}
	var raw scriptReminder
	if err := json.Unmarshal(out, &raw); err != nil {
		return skills.Reminder{}, fmt.Errorf("decode reminder: %w", err)
	}
	return raw.toReminder(), nil
}

func (r scriptReminder) toReminder() skills.Reminder {
	out := skills.Reminder{ID: r.ID, Title: r.Title, Notes: r.Notes, Completed: r.Completed}
	if r.DueDate != "" {
		if t, err := time.Parse(time.RFC3339, r.DueDate); err == nil {
			out.DueDate = &t
		}
	}
	return out
}

func (b *Backend) script(ctx context.Context, src string, args ...string) ([]byte, error) {
	bin := b.Osascript
	if bin == "" {
		bin = "osascript"
	}
	argv := append([]string{"-l", "JavaScript", "-e", src}, args...)
	run := b.Run
	if run == nil {
		run = ExecRunner
	}
	out, err := run(ctx, bin, argv...)
	if err != nil {
		return nil, fmt.Errorf("osascript: %w", err)
	}
	return bytes.TrimSpace(out), nil
}

// ExecRunner runs the command with os/exec and folds stderr into the error.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, err
	}
	return out, nil
}
