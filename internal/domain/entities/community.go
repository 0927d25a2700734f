package entities

// Community is a discussion group. Membership is tracked separately via the
// user-communities collection, not embedded here.
type Community struct {
	ID           ID       `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	IsPrivate    bool     `json:"isPrivate"`
	Tags         []string `json:"tags"`
	MemberCount  int      `json:"memberCount"`
	LastActivity string   `json:"lastActivity,omitempty"`
	Moderators   []string `json:"moderators,omitempty"`
}

// CommunityPost is the normalized client shape of a post. The server sends
// likes as a count; Likes here is a placeholder slice of that length so
// consumers can keep using len(post.Likes).
type CommunityPost struct {
	ID          ID               `json:"id"`
	CommunityID ID               `json:"communityId"`
	AuthorName  string           `json:"authorName"`
	AuthorType  string           `json:"authorType"`
	Content     string           `json:"content"`
	Attachments []PostAttachment `json:"attachments"`
	Likes       []string         `json:"likes"`
	Comments    []PostComment    `json:"comments"`
	CreatedAt   string           `json:"createdAt"`
	IsLiked     bool             `json:"is_liked"`
}

// PostAttachment is a file attached to a community post
type PostAttachment struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// PostComment is a single comment on a community post
type PostComment struct {
	ID         ID     `json:"id"`
	AuthorName string `json:"authorName"`
	AuthorType string `json:"authorType"`
	Content    string `json:"content"`
	CreatedAt  string `json:"createdAt"`
}
