// Package skills defines the narrow contracts the bridge needs from the mail,
// calendar and reminders backends, and the read-only records they return.
package skills

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured is returned by backends that lack credentials or a
// supported platform.
var ErrNotConfigured = errors.New("skill backend not configured")

// Address is a mailbox with an optional display name.
type Address struct {
	Name  string
	Email string
}

// String renders the address for display, e.g. "Joi Ito <joi@example.com>".
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	if a.Email == "" {
		return a.Name
	}
	return a.Name + " <" + a.Email + ">"
}

// Message is a mail message. BodyText is only populated by Mail.Get.
type Message struct {
	ID       string
	ThreadID string
	Subject  string
	Sender   *Address
	To       []Address
	Date     *time.Time
	Snippet  string
	BodyText string
}

// Event is a calendar event. For all-day events Start and End are midnight in
// the calendar's zone.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	HTMLLink    string
	Start       *time.Time
	End         *time.Time
	AllDay      bool
}

// Reminder is a to-do item in a named list.
type Reminder struct {
	ID        string
	Title     string
	Notes     string
	DueDate   *time.Time
	Completed bool
}

// TimeWindow scopes a calendar listing. Nil bounds leave that side open.
type TimeWindow struct {
	Min        *time.Time
	Max        *time.Time
	MaxResults int
}

// NewEvent carries free-form date strings; the backend decides how to parse them.
type NewEvent struct {
	Summary     string
	Start       string
	End         string // optional
	Description string // optional
}

// NewReminder carries an optional free-form due date.
type NewReminder struct {
	Title   string
	List    string
	Notes   string // optional
	DueDate string // optional
}

type Mail interface {
	Search(ctx context.Context, query string, maxResults int) ([]Message, error)
	Get(ctx context.Context, id string) (Message, error)
}

type Calendar interface {
	List(ctx context.Context, window TimeWindow) ([]Event, error)
	Create(ctx context.Context, in NewEvent) (Event, error)
	QuickAdd(ctx context.Context, text string) (Event, error)
}

type Reminders interface {
	List(ctx context.Context, list string) ([]Reminder, error)
	Add(ctx context.Context, in NewReminder) (Reminder, error)
}
