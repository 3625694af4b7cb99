package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"autohaus-service/internal/model"
)

// BlogStore is the persistence surface for blog posts.
type BlogStore interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BlogService struct {
	blogs BlogStore
}

func NewBlogService(blogs BlogStore) *BlogService {
	return &BlogService{blogs: blogs}
}

type BlogInput struct {
	Title           *string    `json:"title"`
	Content         *string    `json:"content"`
	Author          *string    `json:"author"`
	PublicationDate *time.Time `json:"publicationDate"`
	Images          *[]string  `json:"images"`
	Tags            *[]string  `json:"tags"`
}

func (s *BlogService) Create(ctx context.Context, input BlogInput) (*model.Blog, error) {
	if input.Title == nil || input.Content == nil || input.Author == nil {
		return nil, ErrInvalidInput
	}

	blog := &model.Blog{
		Title:           *input.Title,
		Content:         *input.Content,
		Author:          *input.Author,
		PublicationDate: time.Now(),
		Images:          []string{},
		Tags:            []string{},
	}
	if input.PublicationDate != nil {
		blog.PublicationDate = *input.PublicationDate
	}
	if input.Images != nil {
		blog.Images = *input.Images
	}
	if input.Tags != nil {
		blog.Tags = *input.Tags
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) Get(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []model.Blog{}
	}
	return blogs, nil
}

func (s *BlogService) Update(ctx context.Context, id uuid.UUID, input BlogInput) (*model.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		blog.Title = *input.Title
	}
	if input.Content != nil {
		blog.Content = *input.Content
	}
	if input.Author != nil {
		blog.Author = *input.Author
	}
	if input.PublicationDate != nil {
		blog.PublicationDate = *input.PublicationDate
	}
	if input.Images != nil {
		blog.Images = *input.Images
	}
	if input.Tags != nil {
		blog.Tags = *input.Tags
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.blogs.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
