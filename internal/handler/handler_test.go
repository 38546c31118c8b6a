package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BloggingApp/community-service/internal/dto"
	"github.com/BloggingApp/community-service/internal/model"
	"github.com/BloggingApp/community-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type fakeCommentService struct {
	created  []dto.CreateCommentDto
	deleted  []int64
	comments map[int64]model.FullComment
	err      error
}

func (f *fakeCommentService) Create(ctx context.Context, siteID int64, personID int64, input dto.CreateCommentDto) (*model.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, input)
	return &model.Comment{ID: 5, SiteID: siteID, PersonID: personID, Text: input.Text}, nil
}

func (f *fakeCommentService) FindByID(ctx context.Context, siteID int64, id int64) (*model.FullComment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, service.ErrCommentNotFound
	}
	return &comment, nil
}

func (f *fakeCommentService) Update(ctx context.Context, siteID int64, id int64, personID int64, input dto.EditCommentDto) (*model.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Comment{ID: id, SiteID: siteID, PersonID: personID, Text: input.Text}, nil
}

func (f *fakeCommentService) Delete(ctx context.Context, siteID int64, id int64, personID int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePersonService struct{}

func (fakePersonService) FindByID(ctx context.Context, siteID int64, id int64) (*model.Person, error) {
	if siteID != 1 || id != 2 {
		return nil, service.ErrPersonNotFound
	}
	return &model.Person{ID: 2, SiteID: 1, FirstName: "Tim"}, nil
}

type fakeStreamService struct {
	targets []model.StreamTarget
}

func (f *fakeStreamService) FindStreamItems(ctx context.Context, siteID int64, target model.StreamTarget) ([]*model.StreamItem, error) {
	f.targets = append(f.targets, target)
	return []*model.StreamItem{{ID: 1, SiteID: siteID, StreamableType: target.Type, StreamableID: target.ID}}, nil
}

func newTestRouter(t *testing.T, comments *fakeCommentService, stream *fakeStreamService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ACCESS_SECRET", testSecret)

	services := &service.Service{
		Comment: comments,
		Stream:  stream,
		Person:  fakePersonService{},
	}
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# metrics"))
	})

	return New(services, zap.NewNop(), metricsHandler).InitRoutes()
}

func bearer(t *testing.T, id any) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": id}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func do(r http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCommentsCreate(t *testing.T) {
	comments := &fakeCommentService{}
	r := newTestRouter(t, comments, &fakeStreamService{})

	t.Run("requires auth", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/sites/1/comments", "", `{"text":"nice!","verse_id":10}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, comments.created)
	})

	t.Run("unknown person", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/sites/1/comments", bearer(t, 3), `{"text":"nice!","verse_id":10}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("creates", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/sites/1/comments", bearer(t, 2), `{"text":"nice!","verse_id":10}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var got model.Comment
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, int64(2), got.PersonID)
		assert.Equal(t, int64(1), got.SiteID)
		require.Len(t, comments.created, 1)
		assert.Equal(t, int64(10), *comments.created[0].VerseID)
		assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	})

	t.Run("missing text", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/sites/1/comments", bearer(t, "2"), `{"verse_id":10}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service errors map to status", func(t *testing.T) {
		comments.err = service.ErrAmbiguousParent
		defer func() { comments.err = nil }()

		w := do(r, http.MethodPost, "/api/v1/sites/1/comments", bearer(t, 2), `{"text":"x","verse_id":1,"note_id":2}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCommentsGetByID(t *testing.T) {
	comments := &fakeCommentService{comments: map[int64]model.FullComment{
		5: {Comment: model.Comment{ID: 5, Text: "nice!"}, Name: "Comment on John 3:16"},
	}}
	r := newTestRouter(t, comments, &fakeStreamService{})

	w := do(r, http.MethodGet, "/api/v1/sites/1/comments/5", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got model.FullComment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Comment on John 3:16", got.Name)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/sites/1/comments/6", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/sites/1/comments/abc", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/sites/x/comments/5", "", "").Code)
}

func TestCommentsEditAndDelete(t *testing.T) {
	comments := &fakeCommentService{}
	r := newTestRouter(t, comments, &fakeStreamService{})

	w := do(r, http.MethodPatch, "/api/v1/sites/1/comments/5", bearer(t, 2), `{"text":"edited"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/sites/1/comments/5", bearer(t, 2), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{5}, comments.deleted)

	comments.err = service.ErrNotCommentAuthor
	w = do(r, http.MethodDelete, "/api/v1/sites/1/comments/5", bearer(t, 2), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStreamGet(t *testing.T) {
	stream := &fakeStreamService{}
	r := newTestRouter(t, &fakeCommentService{}, stream)

	w := do(r, http.MethodGet, "/api/v1/sites/1/stream/Album/3", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []model.StreamTarget{{Type: "Album", ID: 3}}, stream.targets)

	var body dto.StreamResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Album", body.StreamableType)
	assert.Equal(t, int64(3), body.StreamableID)
	assert.NotNil(t, body.Items)

	w = do(r, http.MethodGet, "/api/v1/sites/1/stream/Picture/3", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsRoute(t *testing.T) {
	r := newTestRouter(t, &fakeCommentService{}, &fakeStreamService{})

	w := do(r, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# metrics", w.Body.String())
}

func TestPersonIDFromClaims(t *testing.T) {
	id, err := personIDFromClaims(jwt.MapClaims{"id": float64(7)})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	id, err = personIDFromClaims(jwt.MapClaims{"id": "8"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)

	_, err = personIDFromClaims(jwt.MapClaims{"id": 1.5})
	assert.ErrorIs(t, err, errInvalidIDClaim)
	_, err = personIDFromClaims(jwt.MapClaims{})
	assert.ErrorIs(t, err, errInvalidIDClaim)
}
