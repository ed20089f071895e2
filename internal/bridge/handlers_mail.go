package bridge

import (
	"context"
)

type messageSummary struct {
	ID      string  `json:"id"`
	Subject string  `json:"subject"`
	Sender  *string `json:"sender"`
	Date    *string `json:"date"`
	Snippet *string `json:"snippet"`
}

type mailSearchResult struct {
	Messages []messageSummary `json:"messages"`
	Count    int              `json:"count"`
}

type messageDetail struct {
	ID      string   `json:"id"`
	Subject string   `json:"subject"`
	Sender  *string  `json:"sender"`
	To      []string `json:"to"`
	Date    *string  `json:"date"`
	Body    *string  `json:"body"`
}

func (s *Service) mailSearch(ctx context.Context, args []string) (any, error) {
	query := argOr(args, 0, "")
	max, err := intArg(args, 1, defaultMailResults, "max_results")
	if err != nil {
		return nil, err
	}
	msgs, err := s.Mail.Search(ctx, query, max)
	if err != nil {
		return nil, err
	}
	if len(msgs) > max {
		msgs = msgs[:max]
	}
	out := mailSearchResult{Messages: make([]messageSummary, 0, len(msgs))}
	for _, m := range msgs {
		out.Messages = append(out.Messages, messageSummary{
			ID:      m.ID,
			Subject: m.Subject,
			Sender:  displayAddress(m.Sender),
			Date:    isoTime(m.Date),
			Snippet: nullable(truncate(m.Snippet, snippetChars)),
		})
	}
	out.Count = len(out.Messages)
	return out, nil
}

func (s *Service) mailRead(ctx context.Context, args []string) (any, error) {
	m, err := s.Mail.Get(ctx, args[0])
	if err != nil {
		return nil, err
	}
	return messageDetail{
		ID:      m.ID,
		Subject: m.Subject,
		Sender:  displayAddress(m.Sender),
		To:      displayAddresses(m.To),
		Date:    isoTime(m.Date),
		Body:    nullable(truncate(m.BodyText, bodyChars)),
	}, nil
}
