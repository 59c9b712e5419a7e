package models

// ForumPostStatus marks the publication state of a post.
type ForumPostStatus string

const (
	PostPublished ForumPostStatus = "PUBLISHED"
	PostDraft     ForumPostStatus = "DRAFT"
	PostArchived  ForumPostStatus = "ARCHIVED"
)

// ForumPost is a discussion thread opener.
type ForumPost struct {
	PostID      string          `json:"postId"`
	Author      *User           `json:"author,omitempty"`
	Title       string          `json:"title,omitempty"`
	Content     string          `json:"content,omitempty"`
	Status      ForumPostStatus `json:"status,omitempty"`
	CreatedDate string          `json:"createdDate,omitempty"`
}

// ForumReply is an answer within a thread.
type ForumReply struct {
	ReplyID     string     `json:"replyId"`
	Post        *ForumPost `json:"post,omitempty"`
	Author      *User      `json:"author,omitempty"`
	Content     string     `json:"content,omitempty"`
	CreatedDate string     `json:"createdDate,omitempty"`
}

// CreateForumPostRequest opens a new thread.
type CreateForumPostRequest struct {
	AuthorID string `json:"authorId" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

// CreateForumReplyRequest answers an existing thread.
type CreateForumReplyRequest struct {
	PostID   string `json:"postId" validate:"required"`
	AuthorID string `json:"authorId" validate:"required"`
	Content  string `json:"content" validate:"required"`
}
