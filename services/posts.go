package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"devforum/models"
)

// ForumService - стор постов форума. Каждый мутирующий вызов собирает новый
// иммутабельный снапшот коллекции: слайсы, отданные наружу раньше, никогда
// не меняются на месте, так что читатель посреди рендера видит либо старое,
// либо новое состояние целиком.
type ForumService struct {
	mu    sync.RWMutex
	posts []models.Post
}

func NewForumService() *ForumService {
	return &ForumService{}
}

// Seed задает начальное содержимое коллекции (демо-данные, тесты)
func (fs *ForumService) Seed(posts []models.Post) {
	next := make([]models.Post, len(posts))
	copy(next, posts)

	fs.mu.Lock()
	fs.posts = next
	fs.mu.Unlock()
}

// CreatePost создает пост и ставит его в начало коллекции
// (порядок создания, независимый от сортировки на выдаче)
func (fs *ForumService) CreatePost(author *models.Identity, title, content, image string) models.Post {
	post := models.Post{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		Image:     image,
		CreatedAt: time.Now(),
		Comments:  []models.Comment{},
	}
	if author != nil {
		post.AuthorID = author.ID
		post.AuthorName = author.Username
		post.AuthorAvatar = author.Avatar
	}

	fs.mu.Lock()
	next := make([]models.Post, 0, len(fs.posts)+1)
	next = append(next, post)
	next = append(next, fs.posts...)
	fs.posts = next
	fs.mu.Unlock()

	return post
}

// mutatePost применяет fn к копии поста внутри нового снапшота.
// Возвращает пост в состоянии именно этого обновления: вызывающий код
// не перечитывает стор и не может увидеть чужую более позднюю мутацию.
func (fs *ForumService) mutatePost(postID string, fn func(p *models.Post) bool) (models.Post, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for i := range fs.posts {
		if fs.posts[i].ID != postID {
			continue
		}

		next := make([]models.Post, len(fs.posts))
		copy(next, fs.posts)

		// Комментарии копируем отдельно, чтобы старые снапшоты
		// не увидели изменений через общий слайс
		p := &next[i]
		comments := make([]models.Comment, len(p.Comments))
		copy(comments, p.Comments)
		p.Comments = comments

		if !fn(p) {
			return models.Post{}, false
		}
		fs.posts = next
		return *p, true
	}
	return models.Post{}, false
}

// ToggleLike переключает отметку "нравится" и счетчик лайков одним
// обновлением. Неизвестный id - тихий no-op.
func (fs *ForumService) ToggleLike(postID string) (models.Post, bool) {
	return fs.mutatePost(postID, func(p *models.Post) bool {
		if p.Liked {
			p.Likes--
			if p.Likes < 0 {
				p.Likes = 0
			}
		} else {
			p.Likes++
		}
		p.Liked = !p.Liked
		return true
	})
}

// ToggleCollect переключает закладку без побочных эффектов на счетчики
func (fs *ForumService) ToggleCollect(postID string) (models.Post, bool) {
	return fs.mutatePost(postID, func(p *models.Post) bool {
		p.Collected = !p.Collected
		return true
	})
}

// RegisterView увеличивает счетчик просмотров поста
func (fs *ForumService) RegisterView(postID string) (models.Post, bool) {
	return fs.mutatePost(postID, func(p *models.Post) bool {
		p.Views++
		return true
	})
}

// SetViews восстанавливает счетчик просмотров из внешнего зеркала.
// Берется максимум: зеркало может отставать от уже учтенных просмотров.
func (fs *ForumService) SetViews(postID string, views int64) bool {
	if views < 0 {
		return false
	}
	_, ok := fs.mutatePost(postID, func(p *models.Post) bool {
		if views > p.Views {
			p.Views = views
		}
		return true
	})
	return ok
}

// AddComment добавляет комментарий в конец последовательности поста.
// Пустой (после trim) текст и неизвестный пост - тихие no-op.
func (fs *ForumService) AddComment(postID string, author *models.Identity, content string) (models.Comment, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, false
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if author != nil {
		comment.AuthorID = author.ID
		comment.AuthorName = author.Username
		comment.AuthorAvatar = author.Avatar
	}

	_, ok := fs.mutatePost(postID, func(p *models.Post) bool {
		p.Comments = append(p.Comments, comment)
		return true
	})
	if !ok {
		return models.Comment{}, false
	}
	return comment, true
}

// DeleteComment удаляет комментарий по id, сохраняя порядок остальных.
// Доступно только ADMIN; для остальных ролей - тихий no-op, даже если
// интерфейс не спрятал кнопку.
func (fs *ForumService) DeleteComment(postID, commentID string, acting *models.Identity) bool {
	if !acting.IsAdmin() {
		return false
	}
	_, ok := fs.mutatePost(postID, func(p *models.Post) bool {
		filtered := make([]models.Comment, 0, len(p.Comments))
		found := false
		for _, c := range p.Comments {
			if c.ID == commentID {
				found = true
				continue
			}
			filtered = append(filtered, c)
		}
		if !found {
			return false
		}
		p.Comments = filtered
		return true
	})
	return ok
}

// OverrideLikes выставляет счетчик лайков напрямую (модераторская ручка).
// Флаг Liked не трогаем: расхождение пары после override - осознанное
// поведение, синхронизировать его не нужно.
func (fs *ForumService) OverrideLikes(postID string, likes int, acting *models.Identity) (models.Post, bool) {
	if !acting.IsAdmin() || likes < 0 {
		return models.Post{}, false
	}
	return fs.mutatePost(postID, func(p *models.Post) bool {
		p.Likes = likes
		return true
	})
}

// GetPost возвращает пост по id из текущего снапшота
func (fs *ForumService) GetPost(postID string) (models.Post, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	for i := range fs.posts {
		if fs.posts[i].ID == postID {
			return fs.posts[i], true
		}
	}
	return models.Post{}, false
}

// GetComment возвращает комментарий поста по id
func (fs *ForumService) GetComment(postID, commentID string) (models.Comment, bool) {
	post, ok := fs.GetPost(postID)
	if !ok {
		return models.Comment{}, false
	}
	for _, c := range post.Comments {
		if c.ID == commentID {
			return c, true
		}
	}
	return models.Comment{}, false
}

// Snapshot возвращает текущий снапшот коллекции. Мутировать его нельзя,
// стор его больше не трогает.
func (fs *ForumService) Snapshot() []models.Post {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.posts
}

// SortedByRecency - проекция "свежие": по убыванию времени создания.
// Стабильная сортировка: при равных метках сохраняется порядок коллекции.
func (fs *ForumService) SortedByRecency() []models.Post {
	out := fs.copySnapshot()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// SortedByPopularity - проекция "горячие": по убыванию лайков,
// при равенстве остается исходный относительный порядок
func (fs *ForumService) SortedByPopularity() []models.Post {
	out := fs.copySnapshot()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Likes > out[j].Likes
	})
	return out
}

// CollectedOnly - проекция закладок текущего пользователя
func (fs *ForumService) CollectedOnly() []models.Post {
	snap := fs.Snapshot()
	out := make([]models.Post, 0, len(snap))
	for _, p := range snap {
		if p.Collected {
			out = append(out, p)
		}
	}
	return out
}

func (fs *ForumService) copySnapshot() []models.Post {
	snap := fs.Snapshot()
	out := make([]models.Post, len(snap))
	copy(out, snap)
	return out
}
