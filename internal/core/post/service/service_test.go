package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"blog/internal/adapters/memory"
	postEntity "blog/internal/core/post"
	userEntity "blog/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	svc   *PostService
	users *memory.UserRepositoryMemory
	alice *userEntity.User
	bob   *userEntity.User
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := memory.NewUserRepositoryMemory()
	posts := memory.NewPostRepositoryMemory(users)
	f := &fixture{
		svc:   NewPostService(posts, users, zaptest.NewLogger(t)),
		users: users,
		clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	// هر فراخوانی now یک دقیقه جلو می‌رود
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}

	f.alice = f.addUser(t, "alice")
	f.bob = f.addUser(t, "bob")
	return f
}

func (f *fixture) addUser(t *testing.T, username string) *userEntity.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Password: "x",
	})
	require.NoError(t, err)
	return u
}

func TestPostLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePost(ctx, f.alice, "Hello", "World")
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, "alice", got.Author.Username)
	assert.Equal(t, "Hello", got.Title)
	assert.False(t, got.DatePosted.IsZero())

	_, err = f.svc.UpdatePost(ctx, f.bob, created.ID, "x", "y")
	assert.ErrorIs(t, err, postEntity.ErrForbidden)

	_, err = f.svc.UpdatePost(ctx, f.alice, created.ID, "Hi", "World2")
	require.NoError(t, err)

	updated, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi", updated.Title)
	assert.Equal(t, "World2", updated.Content)
	assert.Equal(t, got.ID, updated.ID)
	assert.True(t, got.DatePosted.Equal(updated.DatePosted))
	assert.Equal(t, got.AuthorID, updated.AuthorID)

	require.NoError(t, f.svc.DeletePost(ctx, f.alice, created.ID))

	_, err = f.svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, postEntity.ErrNotFound)
}

func TestCreatePost_AuthorIsActingUser(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreatePost(context.Background(), f.bob, "title", "content")
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID.String(), created.AuthorID)
	require.NotNil(t, created.Author)
	assert.Equal(t, "bob", created.Author.Username)
}

func TestCreatePost_TrimsInput(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreatePost(context.Background(), f.alice, "  Hello  ", "\tWorld\n")
	require.NoError(t, err)
	assert.Equal(t, "Hello", created.Title)
	assert.Equal(t, "World", created.Content)
}

func TestCreatePost_Validation(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		content   string
		wantField string
	}{
		{name: "empty title", title: "", content: "body", wantField: "title"},
		{name: "blank title", title: "   ", content: "body", wantField: "title"},
		{name: "empty content", title: "Title", content: "", wantField: "content"},
		{name: "title too long", title: strings.Repeat("a", postEntity.TitleMaxLength+1), content: "body", wantField: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.CreatePost(context.Background(), f.alice, tt.title, tt.content)
			require.Error(t, err)
			assert.True(t, postEntity.IsValidationError(err))

			var valErr *postEntity.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Contains(t, valErr.Fields, tt.wantField)

			page, err := f.svc.ListAll(context.Background(), 1)
			require.NoError(t, err)
			assert.Empty(t, page.Posts)
		})
	}
}

func TestCreatePost_TitleAtLimit(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreatePost(context.Background(), f.alice, strings.Repeat("é", postEntity.TitleMaxLength), "body")
	assert.NoError(t, err)
}

func TestCreatePost_TitleLimitFollowsEntity(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreatePost(context.Background(), f.alice, strings.Repeat("a", postEntity.TitleMaxLength+1), "body")

	var valErr *postEntity.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, fmt.Sprintf("Ensure this value has at most %d characters.", postEntity.TitleMaxLength), valErr.Fields["title"])
	assert.NotContains(t, valErr.Fields, "content")
}

func TestMutations_RequireAuthentication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePost(ctx, f.alice, "Hello", "World")
	require.NoError(t, err)

	_, err = f.svc.CreatePost(ctx, nil, "Hello", "World")
	assert.ErrorIs(t, err, postEntity.ErrUnauthenticated)

	_, err = f.svc.UpdatePost(ctx, nil, created.ID, "x", "y")
	assert.ErrorIs(t, err, postEntity.ErrUnauthenticated)

	err = f.svc.DeletePost(ctx, nil, created.ID)
	assert.ErrorIs(t, err, postEntity.ErrUnauthenticated)
}

func TestNonAuthor_LeavesPostUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePost(ctx, f.alice, "Hello", "World")
	require.NoError(t, err)

	_, err = f.svc.UpdatePost(ctx, f.bob, created.ID, "hijacked", "content")
	assert.ErrorIs(t, err, postEntity.ErrForbidden)

	err = f.svc.DeletePost(ctx, f.bob, created.ID)
	assert.ErrorIs(t, err, postEntity.ErrForbidden)

	_, err = f.svc.AuthorizePost(ctx, f.bob, created.ID)
	assert.ErrorIs(t, err, postEntity.ErrForbidden)

	got, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "World", got.Content)
	assert.Equal(t, f.alice.ID.String(), got.AuthorID)
}

func TestUpdatePost_NonAuthorCheckedBeforeValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePost(ctx, f.alice, "Hello", "World")
	require.NoError(t, err)

	_, err = f.svc.UpdatePost(ctx, f.bob, created.ID, "", "")
	assert.ErrorIs(t, err, postEntity.ErrForbidden)

	_, err = f.svc.UpdatePost(ctx, f.alice, created.ID, "", "World")
	assert.True(t, postEntity.IsValidationError(err))
}

func TestMissingPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	missing := uuid.Must(uuid.NewV4()).String()

	for _, id := range []string{missing, "not-a-uuid"} {
		_, err := f.svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, postEntity.ErrNotFound)

		_, err = f.svc.UpdatePost(ctx, f.alice, id, "x", "y")
		assert.ErrorIs(t, err, postEntity.ErrNotFound)

		err = f.svc.DeletePost(ctx, f.alice, id)
		assert.ErrorIs(t, err, postEntity.ErrNotFound)
	}
}

func TestListAll_NewestFirstAndPaginated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		author := f.alice
		if i%2 == 1 {
			author = f.bob
		}
		_, err := f.svc.CreatePost(ctx, author, "post", "body")
		require.NoError(t, err)
	}

	first, err := f.svc.ListAll(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first.Posts, PageSize)
	assert.Equal(t, int64(7), first.Page.TotalCount)
	assert.Equal(t, 2, first.Page.TotalPages)
	assert.True(t, first.Page.HasNext)
	assert.False(t, first.Page.HasPrevious)

	second, err := f.svc.ListAll(ctx, 2)
	require.NoError(t, err)
	require.Len(t, second.Posts, 2)
	assert.False(t, second.Page.HasNext)
	assert.True(t, second.Page.HasPrevious)

	all := append(first.Posts, second.Posts...)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i-1].DatePosted.Before(all[i].DatePosted), "posts must be newest first")
	}

	_, err = f.svc.ListAll(ctx, 3)
	assert.ErrorIs(t, err, postEntity.ErrNotFound)

	_, err = f.svc.ListAll(ctx, 0)
	assert.ErrorIs(t, err, postEntity.ErrNotFound)

	last, err := f.svc.LastPage(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, last)
}

func TestListAll_EmptyStoreHasFirstPage(t *testing.T) {
	f := newFixture(t)

	page, err := f.svc.ListAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 1, page.Page.TotalPages)

	last, err := f.svc.LastPage(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, last)
}

func TestListByUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.CreatePost(ctx, f.alice, "alice post", "body")
		require.NoError(t, err)
	}
	_, err := f.svc.CreatePost(ctx, f.bob, "bob post", "body")
	require.NoError(t, err)

	page, err := f.svc.ListByUser(ctx, "alice", 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 3)
	for _, p := range page.Posts {
		assert.Equal(t, f.alice.ID.String(), p.AuthorID)
	}
	for i := 1; i < len(page.Posts); i++ {
		assert.False(t, page.Posts[i-1].DatePosted.Before(page.Posts[i].DatePosted))
	}

	_, err = f.svc.ListByUser(ctx, "nonexistent", 1)
	assert.ErrorIs(t, err, userEntity.ErrNotFound)

	_, err = f.svc.LastPage(ctx, "nonexistent")
	assert.ErrorIs(t, err, userEntity.ErrNotFound)
}
