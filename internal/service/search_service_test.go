package service

import (
	"testing"

	"tubo-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchEmptyQuery(t *testing.T) {
	env := newTestEnv()
	svc := NewSearchService(env.videos, env.channels)

	result, err := svc.Search("   ")
	require.NoError(t, err)
	assert.Empty(t, result.Videos)
	assert.Empty(t, result.Channels)
}

// ES 客户端未初始化时走数据库模糊查询兜底
func TestSearchFallsBackToDB(t *testing.T) {
	env := newTestEnv()
	owner := env.store.addUser(model.User{Username: "bob"})
	channel := env.store.addChannel(model.Channel{Name: "Cocina con Bob", Description: "recetas", OwnerID: owner.ID})
	env.store.addVideo(model.Video{Title: "Paella casera", ChannelID: channel.ID, UploaderID: owner.ID})
	env.store.addVideo(model.Video{Title: "Tortilla", Description: "receta de paella", ChannelID: channel.ID, UploaderID: owner.ID})
	env.store.addVideo(model.Video{Title: "Sin relacion", ChannelID: channel.ID, UploaderID: owner.ID})

	svc := NewSearchService(env.videos, env.channels)

	result, err := svc.Search("paella")
	require.NoError(t, err)
	assert.Equal(t, "paella", result.Query)
	assert.Len(t, result.Videos, 2)
	assert.Empty(t, result.Channels)

	result, err = svc.Search("cocina")
	require.NoError(t, err)
	require.Len(t, result.Channels, 1)
	assert.Equal(t, "Cocina con Bob", result.Channels[0].Name)
}

func TestOrderVideosPreservesRank(t *testing.T) {
	videos := []model.Video{{ID: 1, Title: "uno"}, {ID: 2, Title: "dos"}, {ID: 3, Title: "tres"}}

	ordered := orderVideos([]int64{3, 1, 2}, videos)
	require.Len(t, ordered, 3)
	assert.Equal(t, int64(3), ordered[0].ID)
	assert.Equal(t, int64(1), ordered[1].ID)
	assert.Equal(t, int64(2), ordered[2].ID)

	// 回表没查到的 ID 直接跳过
	ordered = orderVideos([]int64{9, 2}, videos)
	require.Len(t, ordered, 1)
	assert.Equal(t, int64(2), ordered[0].ID)
}
