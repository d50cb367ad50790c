package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"tubo-go/internal/data"
	infraKafka "tubo-go/internal/infra/kafka"
	"tubo-go/internal/infra/payment"
	"tubo-go/internal/model"
	"tubo-go/internal/repository"

	"gorm.io/gorm"
)

// memStore 内存数据集，六个假仓储共享同一份数据
type memStore struct {
	users       map[int64]*model.User
	channels    map[int64]*model.Channel
	videos      map[int64]*model.Video
	comments    map[int64]*model.Comment
	follows     map[int64]*model.Follow
	engagements map[int64]*model.Engagement
	nextID      int64
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[int64]*model.User{},
		channels:    map[int64]*model.Channel{},
		videos:      map[int64]*model.Video{},
		comments:    map[int64]*model.Comment{},
		follows:     map[int64]*model.Follow{},
		engagements: map[int64]*model.Engagement{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addUser(u model.User) *model.User {
	if u.ID == 0 {
		u.ID = s.id()
	}
	if u.Plan == "" {
		u.Plan = "Free"
	}
	if u.UserRole == "" {
		u.UserRole = model.RoleUser
	}
	s.users[u.ID] = &u
	return &u
}

func (s *memStore) addChannel(c model.Channel) *model.Channel {
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.channels[c.ID] = &c
	return &c
}

func (s *memStore) addVideo(v model.Video) *model.Video {
	if v.ID == 0 {
		v.ID = s.id()
	}
	s.videos[v.ID] = &v
	return &v
}

func (s *memStore) addComment(c model.Comment) *model.Comment {
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.comments[c.ID] = &c
	return &c
}

func (s *memStore) addFollow(f model.Follow) *model.Follow {
	if f.ID == 0 {
		f.ID = s.id()
	}
	s.follows[f.ID] = &f
	return &f
}

func (s *memStore) engagementRows(videoID int64) []*model.Engagement {
	var rows []*model.Engagement
	for _, e := range s.engagements {
		if e.VideoID == videoID {
			rows = append(rows, e)
		}
	}
	return rows
}

// --- users ---

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) WithTx(tx *gorm.DB) repository.UserRepository { return r }

func (r *fakeUserRepo) GetByID(id int64) (*model.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByUsername(username string) (bool, error) {
	_, err := r.GetByUsername(username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *fakeUserRepo) Create(user *model.User) error {
	created := r.s.addUser(*user)
	*user = *created
	return nil
}

func (r *fakeUserRepo) Update(id int64, updates map[string]interface{}) (*model.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "nickname":
			u.Nickname = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "profile_pic":
			u.ProfilePic = v.(string)
		case "is_moderator":
			u.IsModerator = v.(bool)
		case "user_role":
			u.UserRole = v.(string)
		}
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) SetPlan(id int64, planName string, expiry *time.Time) error {
	u, ok := r.s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Plan = planName
	u.PlanExpiry = expiry
	return nil
}

func (r *fakeUserRepo) Delete(id int64) error {
	delete(r.s.users, id)
	return nil
}

func (r *fakeUserRepo) ListWithFilter(skip, limit int, username *string) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range r.s.users {
		if username != nil && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(*username)) {
			continue
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

// --- channels ---

type fakeChannelRepo struct{ s *memStore }

func (r *fakeChannelRepo) WithTx(tx *gorm.DB) repository.ChannelRepository { return r }

func (r *fakeChannelRepo) GetByID(id int64) (*model.Channel, error) {
	c, ok := r.s.channels[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChannelRepo) GetByIDWithOwner(id int64) (*model.Channel, error) {
	c, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if owner, ok := r.s.users[c.OwnerID]; ok {
		c.Owner = *owner
	}
	return c, nil
}

func (r *fakeChannelRepo) GetByIDs(ids []int64) ([]model.Channel, error) {
	var out []model.Channel
	for _, id := range ids {
		if c, ok := r.s.channels[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeChannelRepo) Create(channel *model.Channel) error {
	created := r.s.addChannel(*channel)
	*channel = *created
	return nil
}

func (r *fakeChannelRepo) Delete(id int64) error {
	delete(r.s.channels, id)
	return nil
}

func (r *fakeChannelRepo) ListByOwner(ownerID int64) ([]model.Channel, error) {
	var out []model.Channel
	for _, c := range r.s.channels {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeChannelRepo) ListIDsByOwner(ownerID int64) ([]int64, error) {
	channels, _ := r.ListByOwner(ownerID)
	var ids []int64
	for _, c := range channels {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (r *fakeChannelRepo) ListWithFilter(skip, limit int, name *string) ([]model.Channel, int64, error) {
	var all []model.Channel
	for _, c := range r.s.channels {
		if name != nil && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(*name)) {
			continue
		}
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (r *fakeChannelRepo) SearchByName(query string, limit int) ([]model.Channel, error) {
	q := strings.ToLower(query)
	var out []model.Channel
	for _, c := range r.s.channels {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Description), q) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FollowerCount > out[j].FollowerCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeChannelRepo) SumFollowersByOwner(ownerID int64) (int64, error) {
	var sum int64
	for _, c := range r.s.channels {
		if c.OwnerID == ownerID {
			sum += c.FollowerCount
		}
	}
	return sum, nil
}

func (r *fakeChannelRepo) IncrementFollowers(id int64) error {
	c, ok := r.s.channels[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.FollowerCount++
	return nil
}

func (r *fakeChannelRepo) DecrementFollowers(id int64) error {
	c, ok := r.s.channels[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if c.FollowerCount > 0 {
		c.FollowerCount--
	}
	return nil
}

func (r *fakeChannelRepo) AddFollowers(id int64, amount int64) error {
	c, ok := r.s.channels[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.FollowerCount += amount
	return nil
}

func (r *fakeChannelRepo) RemoveFollowers(id int64, amount int64) error {
	c, ok := r.s.channels[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.FollowerCount -= amount
	if c.FollowerCount < 0 {
		c.FollowerCount = 0
	}
	return nil
}

func (r *fakeChannelRepo) AddFollowersByOwner(ownerID int64, amount int64) error {
	for _, c := range r.s.channels {
		if c.OwnerID == ownerID {
			c.FollowerCount += amount
		}
	}
	return nil
}

func (r *fakeChannelRepo) RemoveFollowersByOwner(ownerID int64, amount int64) error {
	for _, c := range r.s.channels {
		if c.OwnerID == ownerID {
			c.FollowerCount -= amount
			if c.FollowerCount < 0 {
				c.FollowerCount = 0
			}
		}
	}
	return nil
}

// --- videos ---

type fakeVideoRepo struct{ s *memStore }

func (r *fakeVideoRepo) WithTx(tx *gorm.DB) repository.VideoRepository { return r }

func (r *fakeVideoRepo) GetByID(id int64) (*model.Video, error) {
	v, ok := r.s.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) GetByIDWithRefs(id int64) (*model.Video, error) {
	v, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u, ok := r.s.users[v.UploaderID]; ok {
		v.Uploader = *u
	}
	if c, ok := r.s.channels[v.ChannelID]; ok {
		v.Channel = *c
	}
	return v, nil
}

func (r *fakeVideoRepo) GetByIDsWithRefs(ids []int64) ([]model.Video, error) {
	var out []model.Video
	for _, id := range ids {
		if v, err := r.GetByIDWithRefs(id); err == nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) Create(video *model.Video) error {
	created := r.s.addVideo(*video)
	*video = *created
	return nil
}

func (r *fakeVideoRepo) SetObjectName(id int64, objectName string) error {
	v, ok := r.s.videos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.ObjectName = objectName
	return nil
}

func (r *fakeVideoRepo) Delete(id int64) error {
	delete(r.s.videos, id)
	return nil
}

func (r *fakeVideoRepo) DeleteByIDs(ids []int64) error {
	for _, id := range ids {
		delete(r.s.videos, id)
	}
	return nil
}

func (r *fakeVideoRepo) ListRecent(skip, limit int) ([]model.Video, int64, error) {
	var all []model.Video
	for _, v := range r.s.videos {
		all = append(all, *v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (r *fakeVideoRepo) ListByChannel(channelID int64) ([]model.Video, error) {
	var out []model.Video
	for _, v := range r.s.videos {
		if v.ChannelID == channelID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeVideoRepo) ListByUploader(uploaderID int64) ([]model.Video, error) {
	var out []model.Video
	for _, v := range r.s.videos {
		if v.UploaderID == uploaderID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeVideoRepo) ListIDsByChannel(channelID int64) ([]int64, error) {
	videos, _ := r.ListByChannel(channelID)
	var ids []int64
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	return ids, nil
}

func (r *fakeVideoRepo) ListIDsByChannels(channelIDs []int64) ([]int64, error) {
	var ids []int64
	for _, cid := range channelIDs {
		sub, _ := r.ListIDsByChannel(cid)
		ids = append(ids, sub...)
	}
	return ids, nil
}

func (r *fakeVideoRepo) ListIDsByUploader(uploaderID int64) ([]int64, error) {
	videos, _ := r.ListByUploader(uploaderID)
	var ids []int64
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	return ids, nil
}

func (r *fakeVideoRepo) SearchByTitle(query string, limit int) ([]model.Video, error) {
	q := strings.ToLower(query)
	var out []model.Video
	for _, v := range r.s.videos {
		if strings.Contains(strings.ToLower(v.Title), q) || strings.Contains(strings.ToLower(v.Description), q) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- comments ---

type fakeCommentRepo struct{ s *memStore }

func (r *fakeCommentRepo) WithTx(tx *gorm.DB) repository.CommentRepository { return r }

func (r *fakeCommentRepo) GetByID(id int64) (*model.Comment, error) {
	c, ok := r.s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) Create(comment *model.Comment) error {
	created := r.s.addComment(*comment)
	*comment = *created
	return nil
}

func (r *fakeCommentRepo) Delete(id int64) error {
	delete(r.s.comments, id)
	return nil
}

func (r *fakeCommentRepo) ListByVideo(videoID int64) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range r.s.comments {
		if c.VideoID == videoID {
			cp := *c
			if u, ok := r.s.users[c.UserID]; ok {
				cp.User = *u
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) DeleteByVideoIDs(videoIDs []int64) error {
	for id, c := range r.s.comments {
		for _, vid := range videoIDs {
			if c.VideoID == vid {
				delete(r.s.comments, id)
			}
		}
	}
	return nil
}

func (r *fakeCommentRepo) DeleteByUser(userID int64) error {
	for id, c := range r.s.comments {
		if c.UserID == userID {
			delete(r.s.comments, id)
		}
	}
	return nil
}

// --- follows ---

type fakeFollowRepo struct{ s *memStore }

func (r *fakeFollowRepo) WithTx(tx *gorm.DB) repository.FollowRepository { return r }

func (r *fakeFollowRepo) Exists(userID, channelID int64) (bool, error) {
	for _, f := range r.s.follows {
		if f.UserID == userID && f.ChannelID == channelID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) Create(follow *model.Follow) error {
	created := r.s.addFollow(*follow)
	*follow = *created
	return nil
}

func (r *fakeFollowRepo) Delete(userID, channelID int64) (bool, error) {
	for id, f := range r.s.follows {
		if f.UserID == userID && f.ChannelID == channelID {
			delete(r.s.follows, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) DeleteByChannel(channelID int64) error {
	for id, f := range r.s.follows {
		if f.ChannelID == channelID {
			delete(r.s.follows, id)
		}
	}
	return nil
}

func (r *fakeFollowRepo) DeleteByChannels(channelIDs []int64) error {
	for _, cid := range channelIDs {
		if err := r.DeleteByChannel(cid); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeFollowRepo) DeleteByUser(userID int64) error {
	for id, f := range r.s.follows {
		if f.UserID == userID {
			delete(r.s.follows, id)
		}
	}
	return nil
}

// --- engagements ---

type fakeEngagementRepo struct{ s *memStore }

func (r *fakeEngagementRepo) WithTx(tx *gorm.DB) repository.EngagementRepository { return r }

func (r *fakeEngagementRepo) GetByUserVideo(userID, videoID int64) (*model.Engagement, error) {
	for _, e := range r.s.engagements {
		if e.UserID == userID && e.VideoID == videoID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEngagementRepo) Create(engagement *model.Engagement) error {
	if engagement.ID == 0 {
		engagement.ID = r.s.id()
	}
	cp := *engagement
	r.s.engagements[cp.ID] = &cp
	return nil
}

func (r *fakeEngagementRepo) UpdateKind(id int64, kind string) error {
	e, ok := r.s.engagements[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Kind = kind
	return nil
}

func (r *fakeEngagementRepo) Delete(id int64) error {
	delete(r.s.engagements, id)
	return nil
}

func (r *fakeEngagementRepo) CountByVideo(videoID int64, kind string) (int64, error) {
	var n int64
	for _, e := range r.s.engagements {
		if e.VideoID == videoID && e.Kind == kind {
			n++
		}
	}
	return n, nil
}

func (r *fakeEngagementRepo) DeleteByVideoIDs(videoIDs []int64) error {
	for id, e := range r.s.engagements {
		for _, vid := range videoIDs {
			if e.VideoID == vid {
				delete(r.s.engagements, id)
			}
		}
	}
	return nil
}

func (r *fakeEngagementRepo) DeleteByUser(userID int64) error {
	for id, e := range r.s.engagements {
		if e.UserID == userID {
			delete(r.s.engagements, id)
		}
	}
	return nil
}

// --- unit of work and collaborators ---

// fakeUnitOfWork 直接在内存仓储上执行回调，不提供回滚
type fakeUnitOfWork struct{ repos *data.TransactionalRepositories }

func (u *fakeUnitOfWork) Execute(fn func(repos *data.TransactionalRepositories) error) error {
	return fn(u.repos)
}

// stubPublisher 记录发出的搜索事件
type stubPublisher struct {
	events []*infraKafka.SearchEvent
}

func (p *stubPublisher) Publish(ctx context.Context, event *infraKafka.SearchEvent) error {
	p.events = append(p.events, event)
	return nil
}

// stubCharger 可控的扣款客户端
type stubCharger struct {
	chargeID string
	err      error
	requests []*payment.ChargeRequest
}

func (c *stubCharger) Charge(ctx context.Context, req *payment.ChargeRequest) (string, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return "", c.err
	}
	return c.chargeID, nil
}

// testEnv 测试用的完整依赖集合
type testEnv struct {
	store       *memStore
	users       *fakeUserRepo
	channels    *fakeChannelRepo
	videos      *fakeVideoRepo
	comments    *fakeCommentRepo
	follows     *fakeFollowRepo
	engagements *fakeEngagementRepo
	uow         *fakeUnitOfWork
	publisher   *stubPublisher
}

func newTestEnv() *testEnv {
	store := newMemStore()
	env := &testEnv{
		store:       store,
		users:       &fakeUserRepo{s: store},
		channels:    &fakeChannelRepo{s: store},
		videos:      &fakeVideoRepo{s: store},
		comments:    &fakeCommentRepo{s: store},
		follows:     &fakeFollowRepo{s: store},
		engagements: &fakeEngagementRepo{s: store},
		publisher:   &stubPublisher{},
	}
	env.uow = &fakeUnitOfWork{repos: &data.TransactionalRepositories{
		Users:       env.users,
		Channels:    env.channels,
		Videos:      env.videos,
		Comments:    env.comments,
		Follows:     env.follows,
		Engagements: env.engagements,
	}}
	return env
}
