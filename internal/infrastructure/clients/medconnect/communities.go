package medconnect

import (
	"context"
	"fmt"
	"net/url"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
)

// RawPost is a community post exactly as the server sends it: snake_case
// author fields, likes as a count. The data layer normalizes it into
// entities.CommunityPost.
type RawPost struct {
	ID          entities.ID     `json:"id"`
	AuthorName  string          `json:"author_name"`
	AuthorType  string          `json:"author_type"`
	Content     string          `json:"content"`
	Attachments []RawAttachment `json:"attachments"`
	Likes       int             `json:"likes"`
	Comments    []RawComment    `json:"comments"`
	CreatedAt   string          `json:"created_at"`
	IsLiked     bool            `json:"is_liked"`
}

// RawAttachment is the wire shape of a post attachment
type RawAttachment struct {
	ID   entities.ID `json:"id"`
	Name string      `json:"name"`
	Type string      `json:"type"`
	URL  string      `json:"url"`
}

// RawComment is the wire shape of a post comment
type RawComment struct {
	ID         entities.ID `json:"id"`
	AuthorName string      `json:"author_name"`
	AuthorType string      `json:"author_type"`
	Content    string      `json:"content"`
	CreatedAt  string      `json:"created_at"`
}

// ListCommunities returns every community on the platform
func (c *HTTPClient) ListCommunities(ctx context.Context) ([]entities.Community, error) {
	var out struct {
		envelope
		Communities []entities.Community `json:"communities"`
	}
	if err := c.getJSON(ctx, "/api/communities/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch communities")
	}
	return out.Communities, nil
}

// ListUserCommunities returns the communities the session user belongs to
func (c *HTTPClient) ListUserCommunities(ctx context.Context) ([]entities.Community, error) {
	var out struct {
		envelope
		Communities []entities.Community `json:"communities"`
	}
	if err := c.getJSON(ctx, "/api/user/communities/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch user communities")
	}
	return out.Communities, nil
}

// CreateCommunity creates a new community
func (c *HTTPClient) CreateCommunity(ctx context.Context, community map[string]any) error {
	var out envelope
	if err := c.postJSON(ctx, "/api/communities/create/", community, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to create community")
	}
	return nil
}

// JoinCommunity adds the session user to a community
func (c *HTTPClient) JoinCommunity(ctx context.Context, communityID string) error {
	var out envelope
	if err := c.postJSON(ctx, fmt.Sprintf("/api/communities/%s/join/", url.PathEscape(communityID)), struct{}{}, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to join community")
	}
	return nil
}

// LeaveCommunity removes the session user from a community
func (c *HTTPClient) LeaveCommunity(ctx context.Context, communityID string) error {
	var out envelope
	if err := c.deleteJSON(ctx, fmt.Sprintf("/api/communities/%s/leave/", url.PathEscape(communityID)), &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to leave community")
	}
	return nil
}

// ListCommunityPosts returns a community's posts in wire form
func (c *HTTPClient) ListCommunityPosts(ctx context.Context, communityID string) ([]RawPost, error) {
	var out struct {
		envelope
		Posts []RawPost `json:"posts"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/communities/%s/posts/", url.PathEscape(communityID)), nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch community posts")
	}
	return out.Posts, nil
}

// CreatePost publishes a post. Text-only posts go as JSON; posts with
// attachments go as multipart form data, matching what the backend expects.
func (c *HTTPClient) CreatePost(ctx context.Context, communityID, content string, attachments []Attachment) error {
	path := fmt.Sprintf("/api/communities/%s/posts/create/", url.PathEscape(communityID))
	var out envelope

	if len(attachments) > 0 {
		fields := map[string]string{"content": content}
		if err := c.postMultipart(ctx, path, fields, attachments, &out); err != nil {
			return err
		}
	} else {
		if err := c.postJSON(ctx, path, map[string]string{"content": content}, &out); err != nil {
			return err
		}
	}
	if !out.Success {
		return out.failure("failed to create post")
	}
	return nil
}

// UpdatePost replaces a post's content
func (c *HTTPClient) UpdatePost(ctx context.Context, postID, content string) error {
	var out envelope
	if err := c.putJSON(ctx, fmt.Sprintf("/api/posts/%s/update/", url.PathEscape(postID)), map[string]string{"content": content}, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to update post")
	}
	return nil
}

// DeletePost removes a post
func (c *HTTPClient) DeletePost(ctx context.Context, postID string) error {
	var out envelope
	if err := c.deleteJSON(ctx, fmt.Sprintf("/api/posts/%s/delete/", url.PathEscape(postID)), &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to delete post")
	}
	return nil
}

// LikePost records the session user's like
func (c *HTTPClient) LikePost(ctx context.Context, postID string) error {
	var out envelope
	if err := c.postJSON(ctx, fmt.Sprintf("/api/posts/%s/like/", url.PathEscape(postID)), struct{}{}, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to like post")
	}
	return nil
}

// UnlikePost withdraws the session user's like
func (c *HTTPClient) UnlikePost(ctx context.Context, postID string) error {
	var out envelope
	if err := c.deleteJSON(ctx, fmt.Sprintf("/api/posts/%s/unlike/", url.PathEscape(postID)), &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to unlike post")
	}
	return nil
}

// AddComment appends a comment to a post
func (c *HTTPClient) AddComment(ctx context.Context, postID, content string) error {
	var out envelope
	if err := c.postJSON(ctx, fmt.Sprintf("/api/posts/%s/comments/", url.PathEscape(postID)), map[string]string{"content": content}, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to add comment")
	}
	return nil
}
