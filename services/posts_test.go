package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"devforum/models"
)

func adminIdentity() *models.Identity {
	return &models.Identity{ID: "admin", Username: "admin", Role: models.ROLE_ADMIN}
}

func userIdentity() *models.Identity {
	return &models.Identity{ID: "user-1", Username: "john", Role: models.ROLE_USER}
}

func seedForum(t *testing.T) *ForumService {
	t.Helper()
	fs := NewForumService()
	now := time.Now()
	fs.Seed([]models.Post{
		{ID: "p1", Title: "First", Likes: 10, CreatedAt: now.Add(-2 * time.Hour), Comments: []models.Comment{
			{ID: "c1", PostID: "p1", AuthorID: "user-2", Content: "nice"},
			{ID: "c2", PostID: "p1", AuthorID: "user-3", Content: "agreed"},
		}},
		{ID: "p2", Title: "Second", Likes: 10, CreatedAt: now.Add(-1 * time.Hour), Comments: []models.Comment{}},
		{ID: "p3", Title: "Third", Likes: 3, CreatedAt: now.Add(-3 * time.Hour), Comments: []models.Comment{}},
	})
	return fs
}

func TestCreatePostPrepends(t *testing.T) {
	fs := seedForum(t)
	post := fs.CreatePost(userIdentity(), "  New post  ", "body", "")

	assert.Equal(t, "New post", post.Title)
	assert.Equal(t, "user-1", post.AuthorID)
	assert.NotEmpty(t, post.ID)
	assert.NotNil(t, post.Comments)

	snap := fs.Snapshot()
	assert.Len(t, snap, 4)
	assert.Equal(t, post.ID, snap[0].ID)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	fs := seedForum(t)

	post, ok := fs.ToggleLike("p1")
	assert.True(t, ok)
	assert.Equal(t, 11, post.Likes)
	assert.True(t, post.Liked)

	post, ok = fs.ToggleLike("p1")
	assert.True(t, ok)
	assert.Equal(t, 10, post.Likes)
	assert.False(t, post.Liked)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	fs := seedForum(t)
	_, ok := fs.ToggleLike("missing")
	assert.False(t, ok)
	assert.Len(t, fs.Snapshot(), 3)
}

func TestToggleLikeClampsAtZero(t *testing.T) {
	fs := NewForumService()
	fs.Seed([]models.Post{{ID: "p1", Likes: 0, Liked: true}})

	post, ok := fs.ToggleLike("p1")
	assert.True(t, ok)
	assert.Equal(t, 0, post.Likes)
	assert.False(t, post.Liked)
}

func TestMutationReturnsItsOwnUpdate(t *testing.T) {
	fs := seedForum(t)

	// Возвращенный пост фиксирует состояние именно этой мутации
	// и не меняется от последующих
	liked, ok := fs.ToggleLike("p1")
	assert.True(t, ok)

	fs.AddComment("p1", userIdentity(), "later comment")
	fs.ToggleLike("p1")

	assert.Equal(t, 11, liked.Likes)
	assert.True(t, liked.Liked)
	assert.Len(t, liked.Comments, 2)

	current, _ := fs.GetPost("p1")
	assert.Equal(t, 10, current.Likes)
	assert.Len(t, current.Comments, 3)
}

func TestSetViews(t *testing.T) {
	fs := seedForum(t)
	fs.RegisterView("p1") // views=1

	assert.True(t, fs.SetViews("p1", 540))
	post, _ := fs.GetPost("p1")
	assert.Equal(t, int64(540), post.Views)

	// Отстающее зеркало не откатывает уже учтенные просмотры
	assert.True(t, fs.SetViews("p1", 10))
	post, _ = fs.GetPost("p1")
	assert.Equal(t, int64(540), post.Views)

	assert.False(t, fs.SetViews("missing", 5))
	assert.False(t, fs.SetViews("p1", -1))
}

func TestSortedByRecency(t *testing.T) {
	fs := seedForum(t)
	out := fs.SortedByRecency()
	assert.Equal(t, []string{"p2", "p1", "p3"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestSortedByPopularityStableTies(t *testing.T) {
	fs := seedForum(t)
	// p1 и p2 имеют одинаковые лайки: порядок коллекции сохраняется
	out := fs.SortedByPopularity()
	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestProjectionsDoNotMutateCollection(t *testing.T) {
	fs := seedForum(t)
	_ = fs.SortedByPopularity()
	_ = fs.SortedByRecency()

	snap := fs.Snapshot()
	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{snap[0].ID, snap[1].ID, snap[2].ID})
}

func TestCollectedOnly(t *testing.T) {
	fs := seedForum(t)
	assert.Empty(t, fs.CollectedOnly())

	fs.ToggleCollect("p2")
	out := fs.CollectedOnly()
	assert.Len(t, out, 1)
	assert.Equal(t, "p2", out[0].ID)

	fs.ToggleCollect("p2")
	assert.Empty(t, fs.CollectedOnly())
}

func TestAddCommentAppends(t *testing.T) {
	fs := seedForum(t)
	comment, ok := fs.AddComment("p1", userIdentity(), "  hello  ")

	assert.True(t, ok)
	assert.Equal(t, "hello", comment.Content)
	assert.Equal(t, "p1", comment.PostID)

	post, _ := fs.GetPost("p1")
	assert.Len(t, post.Comments, 3)
	assert.Equal(t, comment.ID, post.Comments[2].ID)
}

func TestAddCommentBlankIsNoop(t *testing.T) {
	fs := seedForum(t)
	_, ok := fs.AddComment("p1", userIdentity(), "   ")
	assert.False(t, ok)

	post, _ := fs.GetPost("p1")
	assert.Len(t, post.Comments, 2)
}

func TestDeleteCommentRequiresAdmin(t *testing.T) {
	fs := seedForum(t)

	assert.False(t, fs.DeleteComment("p1", "c1", userIdentity()))
	post, _ := fs.GetPost("p1")
	assert.Len(t, post.Comments, 2)

	assert.True(t, fs.DeleteComment("p1", "c1", adminIdentity()))
	post, _ = fs.GetPost("p1")
	assert.Len(t, post.Comments, 1)
	assert.Equal(t, "c2", post.Comments[0].ID)
}

func TestDeleteCommentUnknownID(t *testing.T) {
	fs := seedForum(t)
	assert.False(t, fs.DeleteComment("p1", "missing", adminIdentity()))
}

func TestOverrideLikesKeepsLikedFlag(t *testing.T) {
	fs := seedForum(t)
	fs.ToggleLike("p1") // liked=true, likes=11

	post, ok := fs.OverrideLikes("p1", 999, adminIdentity())
	assert.True(t, ok)
	assert.Equal(t, 999, post.Likes)
	assert.True(t, post.Liked)
}

func TestOverrideLikesRejected(t *testing.T) {
	fs := seedForum(t)
	_, ok := fs.OverrideLikes("p1", 5, userIdentity())
	assert.False(t, ok)
	_, ok = fs.OverrideLikes("p1", -1, adminIdentity())
	assert.False(t, ok)

	post, _ := fs.GetPost("p1")
	assert.Equal(t, 10, post.Likes)
}

func TestSnapshotImmutability(t *testing.T) {
	fs := seedForum(t)
	before := fs.Snapshot()
	beforeComments := before[0].Comments

	fs.ToggleLike("p1")
	fs.AddComment("p1", userIdentity(), "new one")

	// Старый снапшот не изменился
	assert.Equal(t, 10, before[0].Likes)
	assert.False(t, before[0].Liked)
	assert.Len(t, beforeComments, 2)

	after := fs.Snapshot()
	assert.Equal(t, 11, after[0].Likes)
	assert.Len(t, after[0].Comments, 3)
}
