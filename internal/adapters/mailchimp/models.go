package mailchimp

import "fmt"

// APIError is a Marketing API problem+json response
type APIError struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

// Error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("mailchimp: %d %s: %s", e.Status, e.Title, e.Detail)
	}
	return fmt.Sprintf("mailchimp: %d %s", e.Status, e.Title)
}

// HTTPStatus interface
func (e *APIError) HTTPStatus() int { return e.Status }

// List is an audience summary
type List struct {
	ID    string    `json:"id"`
	WebID int       `json:"web_id"`
	Name  string    `json:"name"`
	Stats ListStats `json:"stats"`
}

// ListStats carries the audience counters we surface
type ListStats struct {
	MemberCount int `json:"member_count"`
}

type listsResponse struct {
	Lists      []List `json:"lists"`
	TotalItems int    `json:"total_items"`
}

// Member is a list member as the API returns it
type Member struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"`
}

// MemberUpsert is the PUT body for creating or updating a member.
// StatusIfNew only applies when the member does not exist yet, so
// upserting never flips an existing subscription state
type MemberUpsert struct {
	EmailAddress string            `json:"email_address"`
	StatusIfNew  string            `json:"status_if_new"`
	MergeFields  map[string]string `json:"merge_fields,omitempty"`
}

// StatusSubscribed is the member state new imports land in
const StatusSubscribed = "subscribed"

// Merge field names of the standard Mailchimp audience template
const (
	MergeFirstName = "FNAME"
	MergeLastName  = "LNAME"
)

// TagStatus is one tag assignment in a tag update
type TagStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Tag states accepted by the tags endpoint
const (
	TagActive   = "active"
	TagInactive = "inactive"
)

type tagUpdate struct {
	Tags []TagStatus `json:"tags"`
}

type pingResponse struct {
	HealthStatus string `json:"health_status"`
}
