package service

import (
	"testing"
	"time"

	"tubo-go/internal/model"
	"tubo-go/internal/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVideoService(env *testEnv) *VideoService {
	return NewVideoService(
		env.users, env.channels, env.videos, env.comments,
		env.follows, env.engagements, env.uow, env.publisher,
	)
}

func TestGetDetailAnonymousViewer(t *testing.T) {
	env := newTestEnv()
	owner := env.store.addUser(model.User{Username: "bob"})
	channel := env.store.addChannel(model.Channel{Name: "Canal", OwnerID: owner.ID})
	video := env.store.addVideo(model.Video{Title: "clip", ChannelID: channel.ID, UploaderID: owner.ID})

	svc := newVideoService(env)

	detail, err := svc.GetDetail(video.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "clip", detail.Video.Title)
	assert.Equal(t, "", detail.MyReaction)
	assert.False(t, detail.IsFollowing)
	// 匿名访客不插广告
	assert.False(t, detail.ShowAd)
}

func TestGetDetailShowAdByPlan(t *testing.T) {
	env := newTestEnv()
	owner := env.store.addUser(model.User{Username: "bob"})
	channel := env.store.addChannel(model.Channel{Name: "Canal", OwnerID: owner.ID})
	video := env.store.addVideo(model.Video{Title: "clip", ChannelID: channel.ID, UploaderID: owner.ID})

	free := env.store.addUser(model.User{Username: "gratis"})
	vip := env.store.addUser(model.User{Username: "vip", Plan: plan.VIP})
	expired := time.Now().Add(-time.Hour)
	lapsed := env.store.addUser(model.User{Username: "vencido", Plan: plan.Basic, PlanExpiry: &expired})

	svc := newVideoService(env)

	detail, err := svc.GetDetail(video.ID, &free.ID)
	require.NoError(t, err)
	assert.True(t, detail.ShowAd)

	detail, err = svc.GetDetail(video.ID, &vip.ID)
	require.NoError(t, err)
	assert.False(t, detail.ShowAd)

	// Basic 到期后重新看到广告
	detail, err = svc.GetDetail(video.ID, &lapsed.ID)
	require.NoError(t, err)
	assert.True(t, detail.ShowAd)
}

func TestGetDetailViewerState(t *testing.T) {
	env := newTestEnv()
	owner := env.store.addUser(model.User{Username: "bob"})
	viewer := env.store.addUser(model.User{Username: "ana", Plan: plan.Pro})
	channel := env.store.addChannel(model.Channel{Name: "Canal", OwnerID: owner.ID})
	video := env.store.addVideo(model.Video{Title: "clip", ChannelID: channel.ID, UploaderID: owner.ID})

	env.store.addFollow(model.Follow{UserID: viewer.ID, ChannelID: channel.ID})
	eng := model.Engagement{UserID: viewer.ID, VideoID: video.ID, Kind: model.ReactionLike}
	require.NoError(t, env.engagements.Create(&eng))
	env.store.addComment(model.Comment{VideoID: video.ID, UserID: viewer.ID, Content: "hola"})

	svc := newVideoService(env)

	detail, err := svc.GetDetail(video.ID, &viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Likes)
	assert.Equal(t, int64(0), detail.Dislikes)
	assert.Equal(t, model.ReactionLike, detail.MyReaction)
	assert.True(t, detail.IsFollowing)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "hola", detail.Comments[0].Content)
	assert.Equal(t, "ana", detail.Comments[0].Username)
}

func TestGetDetailNotFound(t *testing.T) {
	env := newTestEnv()
	svc := newVideoService(env)

	_, err := svc.GetDetail(999, nil)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestDeleteVideoPermissions(t *testing.T) {
	env := newTestEnv()
	uploader := env.store.addUser(model.User{Username: "bob"})
	stranger := env.store.addUser(model.User{Username: "ana"})
	admin := env.store.addUser(model.User{Username: "root", UserRole: model.RoleAdmin})
	channel := env.store.addChannel(model.Channel{Name: "Canal", OwnerID: uploader.ID})

	svc := newVideoService(env)

	v1 := env.store.addVideo(model.Video{Title: "uno", ChannelID: channel.ID, UploaderID: uploader.ID})
	v2 := env.store.addVideo(model.Video{Title: "dos", ChannelID: channel.ID, UploaderID: uploader.ID})

	// 路人不能删
	assert.ErrorIs(t, svc.Delete(stranger.ID, v1.ID), ErrVideoNoPermission)

	// 上传者本人可以删
	require.NoError(t, svc.Delete(uploader.ID, v1.ID))
	assert.NotContains(t, env.store.videos, v1.ID)

	// 管理员可以删任何视频
	require.NoError(t, svc.Delete(admin.ID, v2.ID))
	assert.NotContains(t, env.store.videos, v2.ID)
}

func TestDeleteVideoCascadesCommentsAndEngagements(t *testing.T) {
	env := newTestEnv()
	uploader := env.store.addUser(model.User{Username: "bob"})
	viewer := env.store.addUser(model.User{Username: "ana"})
	channel := env.store.addChannel(model.Channel{Name: "Canal", OwnerID: uploader.ID})
	video := env.store.addVideo(model.Video{Title: "clip", ChannelID: channel.ID, UploaderID: uploader.ID})

	env.store.addComment(model.Comment{VideoID: video.ID, UserID: viewer.ID, Content: "hola"})
	eng := model.Engagement{UserID: viewer.ID, VideoID: video.ID, Kind: model.ReactionDislike}
	require.NoError(t, env.engagements.Create(&eng))

	svc := newVideoService(env)

	require.NoError(t, svc.Delete(uploader.ID, video.ID))
	assert.Empty(t, env.store.comments)
	assert.Empty(t, env.store.engagements)
}

func TestFeedPagination(t *testing.T) {
	env := newTestEnv()
	owner := env.store.addUser(model.User{Username: "bob"})
	channel := env.store.addChannel(model.Channel{Name: "Canal", OwnerID: owner.ID})
	for i := 0; i < 5; i++ {
		env.store.addVideo(model.Video{Title: "clip", ChannelID: channel.ID, UploaderID: owner.ID})
	}

	svc := newVideoService(env)

	feed, err := svc.Feed(1, 2)
	require.NoError(t, err)
	assert.Len(t, feed.Videos, 2)
	assert.Equal(t, int64(5), feed.Total)
	assert.Equal(t, int64(3), feed.TotalPages)

	feed, err = svc.Feed(3, 2)
	require.NoError(t, err)
	assert.Len(t, feed.Videos, 1)
}
