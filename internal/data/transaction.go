// Package data 提供跨仓储的事务边界。
// 需要多表一致性的写操作（表态切换、关注计数、级联删除）都通过 UnitOfWork 执行。
package data

import (
	"tubo-go/internal/repository"

	"gorm.io/gorm"
)

// TransactionalRepositories 同一事务内可用的全部仓储
type TransactionalRepositories struct {
	Users       repository.UserRepository
	Channels    repository.ChannelRepository
	Videos      repository.VideoRepository
	Comments    repository.CommentRepository
	Follows     repository.FollowRepository
	Engagements repository.EngagementRepository
}

// UnitOfWork 在单个数据库事务内执行回调，回调返回错误则整体回滚
type UnitOfWork interface {
	Execute(fn func(repos *TransactionalRepositories) error) error
}

type gormUnitOfWork struct {
	db          *gorm.DB
	users       repository.UserRepository
	channels    repository.ChannelRepository
	videos      repository.VideoRepository
	comments    repository.CommentRepository
	follows     repository.FollowRepository
	engagements repository.EngagementRepository
}

func NewUnitOfWork(
	db *gorm.DB,
	users repository.UserRepository,
	channels repository.ChannelRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	follows repository.FollowRepository,
	engagements repository.EngagementRepository,
) UnitOfWork {
	return &gormUnitOfWork{
		db:          db,
		users:       users,
		channels:    channels,
		videos:      videos,
		comments:    comments,
		follows:     follows,
		engagements: engagements,
	}
}

// Execute 开启事务并把绑定了事务句柄的仓储集合交给回调
func (u *gormUnitOfWork) Execute(fn func(repos *TransactionalRepositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		repos := &TransactionalRepositories{
			Users:       u.users.WithTx(tx),
			Channels:    u.channels.WithTx(tx),
			Videos:      u.videos.WithTx(tx),
			Comments:    u.comments.WithTx(tx),
			Follows:     u.follows.WithTx(tx),
			Engagements: u.engagements.WithTx(tx),
		}
		return fn(repos)
	})
}
