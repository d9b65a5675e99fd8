package memory

import (
	"context"
	"sort"
	"sync"

	"blog/internal/core/post"

	"github.com/gofrs/uuid"
)

// PostRepositoryMemory پیاده‌سازی PostRepository در حافظه
type PostRepositoryMemory struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]*entry
	seq   int64
	users *UserRepositoryMemory
}

type entry struct {
	post post.Post
	seq  int64
}

// NewPostRepositoryMemory users برای پر کردن Author در خواندن‌ها استفاده می‌شود و می‌تواند nil باشد
func NewPostRepositoryMemory(users *UserRepositoryMemory) *PostRepositoryMemory {
	return &PostRepositoryMemory{
		posts: make(map[uuid.UUID]*entry),
		users: users,
	}
}

func (repo *PostRepositoryMemory) ListAll(ctx context.Context, offset, limit int) ([]*post.Post, int64, error) {
	return repo.list(offset, limit, func(*post.Post) bool { return true })
}

func (repo *PostRepositoryMemory) ListByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*post.Post, int64, error) {
	return repo.list(offset, limit, func(p *post.Post) bool { return p.AuthorID == authorID })
}

func (repo *PostRepositoryMemory) list(offset, limit int, keep func(*post.Post) bool) ([]*post.Post, int64, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	matched := make([]*entry, 0, len(repo.posts))
	for _, e := range repo.posts {
		if keep(&e.post) {
			matched = append(matched, e)
		}
	}
	total := int64(len(matched))
	if limit <= 0 {
		return nil, total, nil
	}

	// جدیدترین اول؛ در زمان برابر، آخرین درج‌شده اول
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.post.DatePosted.Equal(b.post.DatePosted) {
			return a.post.DatePosted.After(b.post.DatePosted)
		}
		return a.seq > b.seq
	})

	if offset >= len(matched) {
		return []*post.Post{}, total, nil
	}
	end := min(offset+limit, len(matched))

	out := make([]*post.Post, 0, end-offset)
	for _, e := range matched[offset:end] {
		out = append(out, repo.withAuthor(e.post))
	}
	return out, total, nil
}

func (repo *PostRepositoryMemory) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	e, ok := repo.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	return repo.withAuthor(e.post), nil
}

func (repo *PostRepositoryMemory) Insert(ctx context.Context, p *post.Post) (*post.Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	repo.seq++
	repo.posts[p.ID] = &entry{post: *p, seq: repo.seq}
	return p, nil
}

func (repo *PostRepositoryMemory) Update(ctx context.Context, p *post.Post) (*post.Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	e, ok := repo.posts[p.ID]
	if !ok {
		return nil, post.ErrNotFound
	}
	e.post.Title = p.Title
	e.post.Content = p.Content
	e.post.AuthorID = p.AuthorID
	e.post.Author = p.Author

	updated := e.post
	return &updated, nil
}

func (repo *PostRepositoryMemory) Delete(ctx context.Context, id uuid.UUID) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.posts[id]; !ok {
		return post.ErrNotFound
	}
	delete(repo.posts, id)
	return nil
}

// withAuthor یک کپی برمی‌گرداند تا caller نتواند رکورد ذخیره‌شده را تغییر دهد
func (repo *PostRepositoryMemory) withAuthor(p post.Post) *post.Post {
	if repo.users != nil {
		if u, ok := repo.users.get(p.AuthorID); ok {
			p.Author = u
		}
	}
	return &p
}
