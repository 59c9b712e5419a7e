package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
)

type forumAPI interface {
	GetForumPosts(ctx context.Context, token string) ([]models.ForumPost, error)
	GetForumPostByID(ctx context.Context, postID, token string) (models.ForumPost, error)
	CreateForumPost(ctx context.Context, req models.CreateForumPostRequest, token string) (models.ForumPost, error)
	CreateForumReply(ctx context.Context, req models.CreateForumReplyRequest, token string) (models.ForumReply, error)
}

// Forum drives the discussion board page.
type Forum struct {
	api    forumAPI
	ident  identitySource
	logger *zap.Logger

	state Loadable[[]models.ForumPost]
}

// ForumParams groups constructor dependencies.
type ForumParams struct {
	API      forumAPI
	Identity identitySource
	Logger   *zap.Logger
}

// NewForum builds the view.
func NewForum(params ForumParams) *Forum {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Forum{
		api:    params.API,
		ident:  params.Identity,
		logger: logger,
	}
}

// Load fetches every thread.
func (v *Forum) Load(ctx context.Context) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			v.state.Clear(gateErr)
		}
		return
	}
	gen := v.state.Begin()
	posts, err := v.api.GetForumPosts(ctx, snapshot.Token)
	if err != nil {
		v.logger.Warn("unable to load forum posts", zap.Error(err))
		v.state.Fail(gen, err)
		return
	}
	v.state.Resolve(gen, posts)
}

// Post opens a thread and upserts it at the head of the list.
func (v *Forum) Post(ctx context.Context, req models.CreateForumPostRequest) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	created, err := v.api.CreateForumPost(ctx, req, snapshot.Token)
	if err != nil {
		return err
	}
	v.state.Set(UpsertHead(v.state.Data(), created, postID))
	return nil
}

// Reply answers an existing thread. Replies live server-side under the
// post, so only the reply call itself is issued.
func (v *Forum) Reply(ctx context.Context, req models.CreateForumReplyRequest) (models.ForumReply, error) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return models.ForumReply{}, gateErr
		}
		return models.ForumReply{}, nil
	}
	return v.api.CreateForumReply(ctx, req, snapshot.Token)
}

// Thread fetches one post by id and upserts it into the list; a missing
// id is surfaced as an error for this detail-style lookup.
func (v *Forum) Thread(ctx context.Context, id string) (models.ForumPost, error) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return models.ForumPost{}, gateErr
		}
		return models.ForumPost{}, nil
	}
	post, err := v.api.GetForumPostByID(ctx, id, snapshot.Token)
	if err != nil {
		return models.ForumPost{}, err
	}
	v.state.Set(UpsertHead(v.state.Data(), post, postID))
	return post, nil
}

// State exposes the thread list with its phase and error.
func (v *Forum) State() (Phase, []models.ForumPost, error) {
	phase, data, err := v.state.State()
	if err != nil {
		return phase, data, err
	}
	return phase, data, nil
}

// Published derives the threads visible to everyone.
func (v *Forum) Published() []models.ForumPost {
	var published []models.ForumPost
	for _, p := range v.state.Data() {
		if p.Status == models.PostPublished || p.Status == "" {
			published = append(published, p)
		}
	}
	return published
}

func postID(p models.ForumPost) string { return p.PostID }
