package service

import (
	"testing"

	infraKafka "tubo-go/internal/infra/kafka"
	"tubo-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIncrementsCounter(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana"})
	owner := env.store.addUser(model.User{Username: "bob"})
	channel := env.store.addChannel(model.Channel{Name: "Canal de Bob", OwnerID: owner.ID})

	svc := NewFollowService(env.channels, env.uow, env.publisher)

	result, err := svc.Follow(user.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, result.IsFollowing)
	assert.Equal(t, int64(1), result.FollowerCount)
	assert.Equal(t, "1", result.FollowerLabel)

	// 粉丝数变更要同步到搜索索引
	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, infraKafka.ActionUpsert, env.publisher.events[0].Action)
	assert.Equal(t, infraKafka.EntityChannel, env.publisher.events[0].Entity)
	assert.Equal(t, int64(1), env.publisher.events[0].Channel.FollowerCount)
}

func TestFollowTwiceRejected(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana"})
	channel := env.store.addChannel(model.Channel{Name: "Canal"})

	svc := NewFollowService(env.channels, env.uow, env.publisher)

	_, err := svc.Follow(user.ID, channel.ID)
	require.NoError(t, err)

	_, err = svc.Follow(user.ID, channel.ID)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)

	// 计数保持 1，不会重复累加
	got, err := env.channels.GetByID(channel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.FollowerCount)
}

func TestUnfollowDecrementsCounter(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana"})
	channel := env.store.addChannel(model.Channel{Name: "Canal"})

	svc := NewFollowService(env.channels, env.uow, env.publisher)

	_, err := svc.Follow(user.ID, channel.ID)
	require.NoError(t, err)

	result, err := svc.Unfollow(user.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, result.IsFollowing)
	assert.Equal(t, int64(0), result.FollowerCount)
}

func TestUnfollowWithoutFollowRejected(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana"})
	channel := env.store.addChannel(model.Channel{Name: "Canal", FollowerCount: 5})

	svc := NewFollowService(env.channels, env.uow, env.publisher)

	_, err := svc.Unfollow(user.ID, channel.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)

	// 没删到关注行，计数也不能动
	got, err := env.channels.GetByID(channel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.FollowerCount)
}

func TestFollowChannelNotFound(t *testing.T) {
	env := newTestEnv()
	svc := NewFollowService(env.channels, env.uow, env.publisher)

	_, err := svc.Follow(1, 999)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestFollowUnfollowRoundTrip(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana"})
	channel := env.store.addChannel(model.Channel{Name: "Canal"})

	svc := NewFollowService(env.channels, env.uow, env.publisher)

	for i := 0; i < 3; i++ {
		result, err := svc.Follow(user.ID, channel.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.FollowerCount)

		result, err = svc.Unfollow(user.ID, channel.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.FollowerCount)
	}
}
