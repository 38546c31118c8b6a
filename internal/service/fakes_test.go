package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/BloggingApp/community-service/internal/metrics"
	"github.com/BloggingApp/community-service/internal/model"
	"github.com/BloggingApp/community-service/internal/repository"
	"github.com/BloggingApp/community-service/internal/repository/postgres"
	"github.com/BloggingApp/community-service/internal/repository/redisrepo"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeComments struct {
	nextID   int64
	comments map[int64]model.Comment
}

func (f *fakeComments) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	f.nextID++
	comment.ID = f.nextID
	comment.CreatedAt = time.Date(2026, 10, 16, 12, 0, 0, 123456000, time.UTC)
	comment.UpdatedAt = comment.CreatedAt
	f.comments[comment.ID] = comment
	return &comment, nil
}

func (f *fakeComments) FindByID(ctx context.Context, siteID int64, id int64) (*model.Comment, error) {
	comment, ok := f.comments[id]
	if !ok || comment.SiteID != siteID {
		return nil, pgx.ErrNoRows
	}
	return &comment, nil
}

func (f *fakeComments) FindWithAuthor(ctx context.Context, siteID int64, id int64) (*model.FullComment, error) {
	comment, err := f.FindByID(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	return &model.FullComment{Comment: *comment, Author: model.PersonAuthor{FirstName: "Tim"}}, nil
}

func (f *fakeComments) UpdateText(ctx context.Context, siteID int64, id int64, text string) (*model.Comment, error) {
	comment, err := f.FindByID(ctx, siteID, id)
	if err != nil {
		return nil, err
	}
	comment.Text = text
	f.comments[id] = *comment
	return comment, nil
}

func (f *fakeComments) Delete(ctx context.Context, siteID int64, id int64) error {
	if _, err := f.FindByID(ctx, siteID, id); err != nil {
		return err
	}
	delete(f.comments, id)
	return nil
}

type fakeParents struct {
	names  map[model.Parent]string
	albums map[int64]int64
}

func (f *fakeParents) FindName(ctx context.Context, siteID int64, parent model.Parent) (string, error) {
	name, ok := f.names[parent]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return name, nil
}

func (f *fakeParents) FindPictureAlbumID(ctx context.Context, siteID int64, pictureID int64) (int64, error) {
	albumID, ok := f.albums[pictureID]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	return albumID, nil
}

type fakeStreamItems struct {
	items   []*model.StreamItem
	lookups []model.StreamTarget
	saves   []int64
	failOn  map[int64]error
}

func (f *fakeStreamItems) FindByStreamable(ctx context.Context, siteID int64, target model.StreamTarget) ([]*model.StreamItem, error) {
	f.lookups = append(f.lookups, target)

	var out []*model.StreamItem
	for _, item := range f.items {
		if item.SiteID == siteID && item.StreamableType == target.Type && item.StreamableID == target.ID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStreamItems) SaveContext(ctx context.Context, item *model.StreamItem) error {
	if err := f.failOn[item.ID]; err != nil {
		return err
	}
	f.saves = append(f.saves, item.ID)
	for i, stored := range f.items {
		if stored.ID == item.ID {
			cp := *item
			f.items[i] = &cp
		}
	}
	return nil
}

func (f *fakeStreamItems) get(id int64) *model.StreamItem {
	for _, item := range f.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

type fakeLogItems struct {
	items []model.LogItem
}

func (f *fakeLogItems) Create(ctx context.Context, item model.LogItem) (*model.LogItem, error) {
	item.ID = int64(len(f.items) + 1)
	f.items = append(f.items, item)
	return &item, nil
}

type fakePeople struct {
	people map[int64]model.Person
}

func (f *fakePeople) FindByID(ctx context.Context, siteID int64, id int64) (*model.Person, error) {
	person, ok := f.people[id]
	if !ok || person.SiteID != siteID {
		return nil, pgx.ErrNoRows
	}
	return &person, nil
}

// fakeTx restores the comment and log fakes when fn fails, the way a rolled
// back transaction would.
type fakeTx struct {
	comments  *fakeComments
	logs      *fakeLogItems
	commits   int
	rollbacks int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	comments := make(map[int64]model.Comment, len(f.comments.comments))
	for id, comment := range f.comments.comments {
		comments[id] = comment
	}
	logs := append([]model.LogItem(nil), f.logs.items...)

	if err := fn(ctx); err != nil {
		f.comments.comments = comments
		f.logs.items = logs
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

type fakeCache struct {
	values  map[string]string
	ttls    map[string]time.Duration
	deleted []string
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.values[key] = string(data)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		f.deleted = append(f.deleted, key)
		delete(f.values, key)
	}
	return nil
}

type testEnv struct {
	comments *fakeComments
	parents  *fakeParents
	streams  *fakeStreamItems
	logs     *fakeLogItems
	people   *fakePeople
	cache    *fakeCache
	tx       *fakeTx
	metrics  *metrics.Metrics
	services *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	env := &testEnv{
		comments: &fakeComments{comments: make(map[int64]model.Comment)},
		parents: &fakeParents{
			names:  make(map[model.Parent]string),
			albums: make(map[int64]int64),
		},
		streams: &fakeStreamItems{failOn: make(map[int64]error)},
		logs:    &fakeLogItems{},
		people:  &fakePeople{people: make(map[int64]model.Person)},
		cache:   &fakeCache{values: make(map[string]string), ttls: make(map[string]time.Duration)},
		metrics: m,
	}
	env.tx = &fakeTx{comments: env.comments, logs: env.logs}

	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Transactor: env.tx,
			Comment:    env.comments,
			Parent:     env.parents,
			StreamItem: env.streams,
			LogItem:    env.logs,
			Person:     env.people,
		},
		Redis: &redisrepo.RedisRepository{
			Cache: env.cache,
		},
	}
	env.services = New(zap.NewNop(), repo, m)

	return env
}
