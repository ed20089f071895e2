package bridge

import (
	"context"

	"github.com/hyperifyio/skillbridge/internal/skills"
)

type reminderItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Notes     *string `json:"notes"`
	DueDate   *string `json:"due_date"`
	Completed bool    `json:"completed"`
}

type remindersListResult struct {
	Reminders []reminderItem `json:"reminders"`
	Count     int            `json:"count"`
	List      string         `json:"list"`
}

type reminderAdded struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (s *Service) remindersList(ctx context.Context, args []string) (any, error) {
	list := argOr(args, 0, s.defaultList())
	items, err := s.Reminders.List(ctx, list)
	if err != nil {
		return nil, err
	}
	out := remindersListResult{Reminders: make([]reminderItem, 0, len(items)), List: list}
	for _, r := range items {
		out.Reminders = append(out.Reminders, reminderItem{
			ID:        r.ID,
			Title:     r.Title,
			Notes:     nullable(r.Notes),
			DueDate:   isoTime(r.DueDate),
			Completed: r.Completed,
		})
	}
	out.Count = len(out.Reminders)
	return out, nil
}

func (s *Service) remindersAdd(ctx context.Context, args []string) (any, error) {
	r, err := s.Reminders.Add(ctx, skills.NewReminder{
		Title:   args[0],
		List:    argOr(args, 1, s.defaultList()),
		Notes:   argOr(args, 2, ""),
		DueDate: argOr(args, 3, ""),
	})
	if err != nil {
		return nil, err
	}
	return reminderAdded{ID: r.ID, Title: r.Title}, nil
}
