package services

import (
	"context"
	"fmt"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
	"github.com/medconnect/medconnect-client/internal/infrastructure/clients/medconnect"
)

// NewCommunity is the input for creating a community
type NewCommunity struct {
	Name        string
	Description string
	Category    string
	IsPrivate   bool
	Tags        []string
}

// FetchCommunities refreshes the communities collection. Listings are
// public, no session required.
func (s *DataService) FetchCommunities(ctx context.Context) []entities.Community {
	communities, err := s.api.ListCommunities(ctx)
	if err != nil {
		s.opLogger(ctx, "fetch_communities").Error().Err(err).Msg("fetch failed")
		return s.Communities()
	}

	s.mu.Lock()
	s.communities = communities
	s.mu.Unlock()
	return s.Communities()
}

// FetchUserCommunities refreshes the communities the session user belongs to
func (s *DataService) FetchUserCommunities(ctx context.Context) []entities.Community {
	if s.requireUser(ctx, "fetch_user_communities") == nil {
		return s.UserCommunities()
	}

	communities, err := s.api.ListUserCommunities(ctx)
	if err != nil {
		s.opLogger(ctx, "fetch_user_communities").Error().Err(err).Msg("fetch failed")
		return s.UserCommunities()
	}

	s.mu.Lock()
	s.userCommunities = communities
	s.mu.Unlock()
	return s.UserCommunities()
}

// CreateCommunity creates a community and refreshes both community
// collections; the creator is an automatic member.
func (s *DataService) CreateCommunity(ctx context.Context, community NewCommunity) bool {
	if s.requireUser(ctx, "create_community") == nil {
		return false
	}

	payload := map[string]any{
		"name":        community.Name,
		"description": community.Description,
		"category":    community.Category,
		"is_private":  community.IsPrivate,
		"tags":        community.Tags,
	}
	if err := s.api.CreateCommunity(ctx, payload); err != nil {
		s.opLogger(ctx, "create_community").Error().Err(err).Msg("create failed")
		return false
	}

	s.FetchCommunities(ctx)
	s.FetchUserCommunities(ctx)
	return true
}

// JoinCommunity adds the session user to a community and refreshes both
// community collections so the member count and membership update together.
func (s *DataService) JoinCommunity(ctx context.Context, communityID string) bool {
	if s.requireUser(ctx, "join_community") == nil {
		return false
	}

	if err := s.api.JoinCommunity(ctx, communityID); err != nil {
		s.opLogger(ctx, "join_community").Error().Err(err).Str("community_id", communityID).Msg("join failed")
		return false
	}

	s.FetchCommunities(ctx)
	s.FetchUserCommunities(ctx)
	return true
}

// LeaveCommunity removes the session user from a community
func (s *DataService) LeaveCommunity(ctx context.Context, communityID string) bool {
	if s.requireUser(ctx, "leave_community") == nil {
		return false
	}

	if err := s.api.LeaveCommunity(ctx, communityID); err != nil {
		s.opLogger(ctx, "leave_community").Error().Err(err).Str("community_id", communityID).Msg("leave failed")
		return false
	}

	s.FetchCommunities(ctx)
	s.FetchUserCommunities(ctx)
	return true
}

// IsMemberOf reports whether the session user belongs to a community, judged
// against the last fetched user-communities collection.
func (s *DataService) IsMemberOf(communityID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, community := range s.userCommunities {
		if community.ID == entities.ID(communityID) {
			return true
		}
	}
	return false
}

// FetchCommunityPosts loads a community's posts, normalized into the client
// shape, and makes them the current posts collection.
func (s *DataService) FetchCommunityPosts(ctx context.Context, communityID string) []entities.CommunityPost {
	raw, err := s.api.ListCommunityPosts(ctx, communityID)
	if err != nil {
		s.opLogger(ctx, "fetch_community_posts").Error().Err(err).Str("community_id", communityID).Msg("fetch failed")
		return s.CommunityPosts()
	}

	posts := normalizePosts(communityID, raw)
	s.mu.Lock()
	s.communityPosts = posts
	s.mu.Unlock()
	return s.CommunityPosts()
}

// CreatePost publishes a post (optionally with attachments) and refreshes
// the community's posts.
func (s *DataService) CreatePost(ctx context.Context, communityID, content string, attachments []medconnect.Attachment) bool {
	if s.requireUser(ctx, "create_post") == nil {
		return false
	}

	if err := s.api.CreatePost(ctx, communityID, content, attachments); err != nil {
		s.opLogger(ctx, "create_post").Error().Err(err).Str("community_id", communityID).Msg("create failed")
		return false
	}

	s.FetchCommunityPosts(ctx, communityID)
	return true
}

// UpdatePost replaces a post's content and refreshes the community's posts
func (s *DataService) UpdatePost(ctx context.Context, communityID, postID, content string) bool {
	if s.requireUser(ctx, "update_post") == nil {
		return false
	}

	if err := s.api.UpdatePost(ctx, postID, content); err != nil {
		s.opLogger(ctx, "update_post").Error().Err(err).Str("post_id", postID).Msg("update failed")
		return false
	}

	s.FetchCommunityPosts(ctx, communityID)
	return true
}

// DeletePost removes a post and refreshes the community's posts
func (s *DataService) DeletePost(ctx context.Context, communityID, postID string) bool {
	if s.requireUser(ctx, "delete_post") == nil {
		return false
	}

	if err := s.api.DeletePost(ctx, postID); err != nil {
		s.opLogger(ctx, "delete_post").Error().Err(err).Str("post_id", postID).Msg("delete failed")
		return false
	}

	s.FetchCommunityPosts(ctx, communityID)
	return true
}

// LikePost records the session user's like and refreshes the community's
// posts so the like count and is_liked flag come back from the server.
func (s *DataService) LikePost(ctx context.Context, communityID, postID string) bool {
	if s.requireUser(ctx, "like_post") == nil {
		return false
	}

	if err := s.api.LikePost(ctx, postID); err != nil {
		s.opLogger(ctx, "like_post").Error().Err(err).Str("post_id", postID).Msg("like failed")
		return false
	}

	s.FetchCommunityPosts(ctx, communityID)
	return true
}

// UnlikePost withdraws the session user's like
func (s *DataService) UnlikePost(ctx context.Context, communityID, postID string) bool {
	if s.requireUser(ctx, "unlike_post") == nil {
		return false
	}

	if err := s.api.UnlikePost(ctx, postID); err != nil {
		s.opLogger(ctx, "unlike_post").Error().Err(err).Str("post_id", postID).Msg("unlike failed")
		return false
	}

	s.FetchCommunityPosts(ctx, communityID)
	return true
}

// AddComment appends a comment to a post and refreshes the community's posts
func (s *DataService) AddComment(ctx context.Context, communityID, postID, content string) bool {
	if s.requireUser(ctx, "add_comment") == nil {
		return false
	}

	if err := s.api.AddComment(ctx, postID, content); err != nil {
		s.opLogger(ctx, "add_comment").Error().Err(err).Str("post_id", postID).Msg("comment failed")
		return false
	}

	s.FetchCommunityPosts(ctx, communityID)
	return true
}

// normalizePosts converts wire posts into the client shape: the community id
// is stamped on, and the server's like count becomes a placeholder slice of
// that length so consumers keep using len(post.Likes).
func normalizePosts(communityID string, raw []medconnect.RawPost) []entities.CommunityPost {
	posts := make([]entities.CommunityPost, 0, len(raw))
	for _, rp := range raw {
		likes := make([]string, rp.Likes)
		for i := range likes {
			likes[i] = fmt.Sprintf("like-%d", i)
		}

		attachments := make([]entities.PostAttachment, 0, len(rp.Attachments))
		for _, ra := range rp.Attachments {
			attachments = append(attachments, entities.PostAttachment{
				ID:   ra.ID,
				Name: ra.Name,
				Type: ra.Type,
				URL:  ra.URL,
			})
		}

		comments := make([]entities.PostComment, 0, len(rp.Comments))
		for _, rc := range rp.Comments {
			comments = append(comments, entities.PostComment{
				ID:         rc.ID,
				AuthorName: rc.AuthorName,
				AuthorType: rc.AuthorType,
				Content:    rc.Content,
				CreatedAt:  rc.CreatedAt,
			})
		}

		posts = append(posts, entities.CommunityPost{
			ID:          rp.ID,
			CommunityID: entities.ID(communityID),
			AuthorName:  rp.AuthorName,
			AuthorType:  rp.AuthorType,
			Content:     rp.Content,
			Attachments: attachments,
			Likes:       likes,
			Comments:    comments,
			CreatedAt:   rp.CreatedAt,
			IsLiked:     rp.IsLiked,
		})
	}
	return posts
}
