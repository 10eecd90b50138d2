package service

import (
	"context"

	"leadhopper/internal/adapters/mailchimp"
	"leadhopper/internal/services/push/domain"
)

// ChimpWriter writes members through the marketing API client.
// It implements both domain.MemberWriter and domain.DirectoryPort
type ChimpWriter struct {
	c *mailchimp.Client
}

// NewChimpWriter wraps an API client
func NewChimpWriter(c *mailchimp.Client) *ChimpWriter {
	return &ChimpWriter{c: c}
}

// UpsertMember implements domain.MemberWriter
func (w *ChimpWriter) UpsertMember(ctx context.Context, listID string, m domain.MemberInput) error {
	up := mailchimp.MemberUpsert{
		EmailAddress: m.Email,
		StatusIfNew:  mailchimp.StatusSubscribed,
	}
	if m.FirstName != "" || m.LastName != "" {
		up.MergeFields = map[string]string{}
		if m.FirstName != "" {
			up.MergeFields[mailchimp.MergeFirstName] = m.FirstName
		}
		if m.LastName != "" {
			up.MergeFields[mailchimp.MergeLastName] = m.LastName
		}
	}
	_, err := w.c.UpsertMember(ctx, listID, up)
	return err
}

// TagMember implements domain.MemberWriter
func (w *ChimpWriter) TagMember(ctx context.Context, listID, email string, tags []string) error {
	ts := make([]mailchimp.TagStatus, len(tags))
	for i, t := range tags {
		ts[i] = mailchimp.TagStatus{Name: t, Status: mailchimp.TagActive}
	}
	return w.c.UpdateMemberTags(ctx, listID, email, ts)
}

// Ping implements domain.DirectoryPort
func (w *ChimpWriter) Ping(ctx context.Context) error {
	return w.c.Ping(ctx)
}

// Audiences implements domain.DirectoryPort
func (w *ChimpWriter) Audiences(ctx context.Context) ([]domain.Audience, error) {
	lists, err := w.c.AllLists(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Audience, len(lists))
	for i, l := range lists {
		out[i] = domain.Audience{ID: l.ID, Name: l.Name, Members: l.Stats.MemberCount}
	}
	return out, nil
}
