package services

import (
	"errors"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrTitleTaken   = errors.New("a post with that title already exists")
	ErrAuthRequired = errors.New("authentication required")
)

// PostFields is the mutable subset of a post. Author and id never change
// after creation.
type PostFields struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}

// ContentService owns post and comment persistence.
type ContentService struct {
	db *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

// ListPosts returns every post in storage order with authors preloaded.
func (s *ContentService) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Preload("User").Order("id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	s.fillCommentCounts(posts)
	return posts, nil
}

// GetPost returns one post with its author.
func (s *ContentService) GetPost(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// CommentsFor returns a post's comments oldest-first with authors preloaded.
func (s *ContentService) CommentsFor(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CreatePost stores a new post owned by author. The publish date is stamped
// here as a display string, matching what the post page shows.
func (s *ContentService) CreatePost(author *models.User, fields PostFields) (*models.Post, error) {
	if err := s.checkTitle(fields.Title, 0); err != nil {
		return nil, err
	}

	post := models.Post{
		UserID:   author.ID,
		Title:    fields.Title,
		Subtitle: fields.Subtitle,
		Date:     time.Now().Format("January 2, 2006"),
		Body:     fields.Body,
		ImgURL:   fields.ImgURL,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, ErrTitleTaken
	}
	post.User = *author
	return &post, nil
}

// UpdatePost mutates title/subtitle/image/body of an existing post.
func (s *ContentService) UpdatePost(id uint, fields PostFields) (*models.Post, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}

	if err := s.checkTitle(fields.Title, id); err != nil {
		return nil, err
	}

	post.Title = fields.Title
	post.Subtitle = fields.Subtitle
	post.Body = fields.Body
	post.ImgURL = fields.ImgURL
	if err := s.db.Save(post).Error; err != nil {
		return nil, ErrTitleTaken
	}
	return post, nil
}

// DeletePost removes a post and its comments. The cascade is explicit and
// transactional so it does not depend on backend FK behavior.
func (s *ContentService) DeletePost(id uint) error {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// AddComment attaches a comment by user to a post. Anonymous callers are
// rejected before anything is written.
func (s *ContentService) AddComment(user *models.User, postID uint, text string) (*models.Comment, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}

	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	comment.User = *user
	return &comment, nil
}

// checkTitle enforces the unique-title rule ahead of the DB index so the
// caller gets a domain error, not a driver error. exclude skips the post
// being edited.
func (s *ContentService) checkTitle(title string, exclude uint) error {
	var existing models.Post
	err := s.db.Where("title = ? AND id <> ?", title, exclude).First(&existing).Error
	if err == nil {
		return ErrTitleTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// fillCommentCounts batch-fills CommentCount for a page of posts.
func (s *ContentService) fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	s.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}
