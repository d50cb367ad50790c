package service

import (
	"testing"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentService(env *testEnv) *CommentService {
	return NewCommentService(env.users, env.videos, env.comments)
}

func TestCreateComment(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana", Nickname: "Ana"})
	video := env.store.addVideo(model.Video{Title: "clip"})

	svc := newCommentService(env)

	info, err := svc.Create(user.ID, video.ID, &dto.CommentCreateRequest{Content: "buen video"})
	require.NoError(t, err)
	assert.Equal(t, "buen video", info.Content)
	assert.Equal(t, "ana", info.Username)
	assert.Equal(t, video.ID, info.VideoID)
}

func TestCreateCommentVideoNotFound(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana"})

	svc := newCommentService(env)

	_, err := svc.Create(user.ID, 999, &dto.CommentCreateRequest{Content: "hola"})
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestDeleteCommentPermissions(t *testing.T) {
	env := newTestEnv()
	author := env.store.addUser(model.User{Username: "ana"})
	stranger := env.store.addUser(model.User{Username: "bob"})
	moderator := env.store.addUser(model.User{Username: "mod", IsModerator: true})
	admin := env.store.addUser(model.User{Username: "root", UserRole: model.RoleAdmin})
	video := env.store.addVideo(model.Video{Title: "clip"})

	svc := newCommentService(env)

	c1 := env.store.addComment(model.Comment{VideoID: video.ID, UserID: author.ID, Content: "uno"})
	c2 := env.store.addComment(model.Comment{VideoID: video.ID, UserID: author.ID, Content: "dos"})
	c3 := env.store.addComment(model.Comment{VideoID: video.ID, UserID: author.ID, Content: "tres"})

	// 路人不能删
	assert.ErrorIs(t, svc.Delete(stranger.ID, c1.ID), ErrCommentNoPermission)

	// 作者本人、版主、管理员都可以删
	require.NoError(t, svc.Delete(author.ID, c1.ID))
	require.NoError(t, svc.Delete(moderator.ID, c2.ID))
	require.NoError(t, svc.Delete(admin.ID, c3.ID))
	assert.Empty(t, env.store.comments)
}

func TestDeleteCommentNotFound(t *testing.T) {
	env := newTestEnv()
	env.store.addUser(model.User{Username: "ana"})

	svc := newCommentService(env)

	assert.ErrorIs(t, svc.Delete(1, 999), ErrCommentNotFound)
}

func TestListCommentsByVideo(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana"})
	video := env.store.addVideo(model.Video{Title: "clip"})
	other := env.store.addVideo(model.Video{Title: "otro"})

	env.store.addComment(model.Comment{VideoID: video.ID, UserID: user.ID, Content: "uno"})
	env.store.addComment(model.Comment{VideoID: video.ID, UserID: user.ID, Content: "dos"})
	env.store.addComment(model.Comment{VideoID: other.ID, UserID: user.ID, Content: "ajeno"})

	svc := newCommentService(env)

	infos, err := svc.ListByVideo(video.ID)
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	_, err = svc.ListByVideo(999)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}
