package post

import (
	"testing"

	"blog/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsAuthor(t *testing.T) {
	authorID := uuid.Must(uuid.NewV4())
	p := &Post{ID: uuid.Must(uuid.NewV4()), AuthorID: authorID}

	tests := []struct {
		name string
		user *user.User
		want bool
	}{
		{name: "author", user: &user.User{ID: authorID, Username: "alice"}, want: true},
		{name: "same id, different fields", user: &user.User{ID: authorID, Username: "renamed"}, want: true},
		{name: "other user with same username", user: &user.User{ID: uuid.Must(uuid.NewV4()), Username: "alice"}, want: false},
		{name: "anonymous", user: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAuthor(tt.user, p))
		})
	}

	assert.False(t, IsAuthor(&user.User{ID: authorID}, nil))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"title":   "This field is required.",
		"content": "This field is required.",
	}}

	assert.Equal(t, "validation error (content: This field is required.; title: This field is required.)", err.Error())
	assert.True(t, IsValidationError(err))
	assert.True(t, IsValidationError(NewValidationError("title", "bad")))
	assert.False(t, IsValidationError(ErrNotFound))
}
