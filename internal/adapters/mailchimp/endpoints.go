package mailchimp

import (
	"context"
	"fmt"
	"net/http"
)

// Ping checks API reachability and that the key authenticates
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.Do(ctx, http.MethodGet, "/ping", nil)
	if err != nil {
		return err
	}
	var out pingResponse
	if err := c.decode(resp, &out); err != nil {
		return err
	}
	c.log.Debug().Str("health", out.HealthStatus).Msg("mailchimp ping")
	return nil
}

// Lists fetches one page of audiences
func (c *Client) Lists(ctx context.Context, count, offset int) ([]List, int, error) {
	path := fmt.Sprintf("/lists?count=%d&offset=%d", count, offset)
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, 0, err
	}
	var out listsResponse
	if err := c.decode(resp, &out); err != nil {
		return nil, 0, err
	}
	return out.Lists, out.TotalItems, nil
}

// AllLists pages through every audience on the account
func (c *Client) AllLists(ctx context.Context) ([]List, error) {
	const pageSize = 100

	var all []List
	for offset := 0; ; offset += pageSize {
		page, total, err := c.Lists(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

// UpsertMember creates or updates a list member keyed by subscriber hash.
// Existing members keep their status; new ones get StatusIfNew
func (c *Client) UpsertMember(ctx context.Context, listID string, m MemberUpsert) (Member, error) {
	path := fmt.Sprintf("/lists/%s/members/%s", listID, SubscriberHash(m.EmailAddress))
	resp, err := c.Do(ctx, http.MethodPut, path, m)
	if err != nil {
		return Member{}, err
	}
	var out Member
	if err := c.decode(resp, &out); err != nil {
		return Member{}, err
	}
	return out, nil
}

// UpdateMemberTags applies tag assignments to a member.
// The API treats absent tags as untouched, so this only adds or removes
// the named tags
func (c *Client) UpdateMemberTags(ctx context.Context, listID, email string, tags []TagStatus) error {
	path := fmt.Sprintf("/lists/%s/members/%s/tags", listID, SubscriberHash(email))
	resp, err := c.Do(ctx, http.MethodPost, path, tagUpdate{Tags: tags})
	if err != nil {
		return err
	}
	return c.decode(resp, nil)
}
