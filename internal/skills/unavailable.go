package skills

import (
	"context"
	"fmt"
)

// Unavailable stands in for a backend that could not be set up. Every call
// fails with ErrNotConfigured and the recorded reason.
type Unavailable struct {
	Reason string
}

func (u Unavailable) err() error {
	if u.Reason == "" {
		return ErrNotConfigured
	}
	return fmt.Errorf("%w: %s", ErrNotConfigured, u.Reason)
}

func (u Unavailable) Search(context.Context, string, int) ([]Message, error) { return nil, u.err() }
func (u Unavailable) Get(context.Context, string) (Message, error)           { return Message{}, u.err() }
func (u Unavailable) List(context.Context, TimeWindow) ([]Event, error)       { return nil, u.err() }
func (u Unavailable) Create(context.Context, NewEvent) (Event, error)         { return Event{}, u.err() }
func (u Unavailable) QuickAdd(context.Context, string) (Event, error)         { return Event{}, u.err() }

// UnavailableReminders is the reminders counterpart of Unavailable. It is a
// separate type because Reminders.List has a different signature.
type UnavailableReminders struct {
	Reason string
}

func (u UnavailableReminders) List(context.Context, string) ([]Reminder, error) {
	return nil, Unavailable(u).err()
}

func (u UnavailableReminders) Add(context.Context, NewReminder) (Reminder, error) {
	return Reminder{}, Unavailable(u).err()
}
