// Package gmail implements skills.Mail on the Gmail REST API.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/hyperifyio/skillbridge/internal/extract"
	"github.com/hyperifyio/skillbridge/internal/skills"
)

// Scope is the OAuth scope required by this backend.
const Scope = gmailapi.GmailReadonlyScope

// Backend reads messages from a single mailbox.
type Backend struct {
	svc  *gmailapi.Service
	user string
}

// New creates a backend for the authenticated user ("me").
func New(ctx context.Context, opts ...option.ClientOption) (*Backend, error) {
	svc, err := gmailapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail service: %w", err)
	}
	return &Backend{svc: svc, user: "me"}, nil
}

// Search lists messages matching a Gmail query and loads their headers.
func (b *Backend) Search(ctx context.Context, query string, maxResults int) ([]skills.Message, error) {
	if maxResults <= 0 {
		return []skills.Message{}, nil
	}
	list, err := b.svc.Users.Messages.List(b.user).Q(query).MaxResults(int64(maxResults)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	out := make([]skills.Message, 0, len(list.Messages))
	for _, ref := range list.Messages {
		if len(out) >= maxResults {
			break
		}
		m, err := b.svc.Users.Messages.Get(b.user, ref.Id).
			Format("metadata").
			MetadataHeaders("Subject", "From", "To", "Date").
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("get message %s: %w", ref.Id, err)
		}
		out = append(out, toMessage(m))
	}
	return out, nil
}

// Get loads one message including its plain-text body.
func (b *Backend) Get(ctx context.Context, id string) (skills.Message, error) {
	m, err := b.svc.Users.Messages.Get(b.user, id).Format("full").Context(ctx).Do()
	if err != nil {
		return skills.Message{}, fmt.Errorf("get message %s: %w", id, err)
	}
	msg := toMessage(m)
	body, err := bodyText(m.Payload)
	if err != nil {
		return skills.Message{}, err
	}
	msg.BodyText = body
	return msg, nil
}

func toMessage(m *gmailapi.Message) skills.Message {
	msg := skills.Message{ID: m.Id, ThreadID: m.ThreadId, Snippet: m.Snippet}
	if m.Payload == nil {
		return msg
	}
	var dateHeader string
	for _, h := range m.Payload.Headers {
		switch strings.ToLower(h.Name) {
		case "subject":
			msg.Subject = h.Value
		case "from":
			if a := parseAddress(h.Value); a != nil {
				msg.Sender = a
			}
		case "to":
			msg.To = parseAddressList(h.Value)
		case "date":
			dateHeader = h.Value
		}
	}
	if m.InternalDate > 0 {
		t := time.UnixMilli(m.InternalDate).UTC()
		msg.Date = &t
	} else if t, err := mail.ParseDate(dateHeader); err == nil {
		msg.Date = &t
	}
	return msg
}

func parseAddress(v string) *skills.Address {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	a, err := mail.ParseAddress(v)
	if err != nil {
		return &skills.Address{Email: v}
	}
	return &skills.Address{Name: a.Name, Email: a.Address}
}

func parseAddressList(v string) []skills.Address {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	list, err := mail.ParseAddressList(v)
	if err != nil {
		return []skills.Address{{Email: v}}
	}
	out := make([]skills.Address, 0, len(list))
	for _, a := range list {
		out = append(out, skills.Address{Name: a.Name, Email: a.Address})
	}
	return out
}

// bodyText returns the first text/plain part, falling back to the first
// text/html part converted to text.
func bodyText(p *gmailapi.MessagePart) (string, error) {
	if p == nil {
		return "", nil
	}
	if plain := findPart(p, "text/plain"); plain != nil {
		return decodeData(plain.Body.Data)
	}
	if html := findPart(p, "text/html"); html != nil {
		doc, err := decodeData(html.Body.Data)
		if err != nil {
			return "", err
		}
		return extract.Text(doc, 0).Text, nil
	}
	return "", nil
}

func findPart(p *gmailapi.MessagePart, mimeType string) *gmailapi.MessagePart {
	if strings.EqualFold(p.MimeType, mimeType) && p.Body != nil && p.Body.Data != "" {
		return p
	}
	for _, child := range p.Parts {
		if found := findPart(child, mimeType); found != nil {
			return found
		}
	}
	return nil
}

func decodeData(data string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	return string(b), nil
}
