package models

import "time"

// Comment - комментарий к посту. PostID хранится как обратная ссылка,
// владельцем комментария остается сам пост.
type Comment struct {
	ID           string    `json:"id"`
	PostID       string    `json:"post_id"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

// Post - пост форума вместе со своими комментариями.
// Likes и Liked переключаются только парой; расходиться они могут
// только после админского override, и это ожидаемое поведение.
type Post struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Image        string    `json:"image,omitempty"`
	Likes        int       `json:"likes"`
	Views        int64     `json:"views"`
	Collected    bool      `json:"collected"`
	Liked        bool      `json:"liked"`
	CreatedAt    time.Time `json:"created_at"`
	Comments     []Comment `json:"comments"`
}
