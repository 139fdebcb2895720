package holidays

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("holidays: invalid input")
	ErrNotFound     = errors.New("holidays: not found")
)

const dateLayout = "2006-01-02"

// Holiday is a calendar announcement, optionally carrying an image.
type Holiday struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Message   string    `json:"message,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the writable holiday fields.
type Input struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Message  string `json:"message"`
	ImageURL string `json:"image_url"`
}

// Store describes holiday persistence.
type Store interface {
	List(ctx context.Context) ([]Holiday, error)
	Create(ctx context.Context, h *Holiday) error
	Update(ctx context.Context, id string, in Input) (Holiday, error)
	Delete(ctx context.Context, id string) error
}

// Service validates input before hitting the store.
type Service struct {
	store Store
}

func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("holiday store is required")
	}
	return &Service{store: store}, nil
}

func (s *Service) List(ctx context.Context) ([]Holiday, error) {
	return s.store.List(ctx)
}

func (s *Service) Create(ctx context.Context, createdBy string, in Input) (Holiday, error) {
	in, err := validate(in)
	if err != nil {
		return Holiday{}, err
	}
	h := Holiday{
		Title:     in.Title,
		Date:      in.Date,
		Message:   in.Message,
		ImageURL:  in.ImageURL,
		CreatedBy: createdBy,
	}
	if err := s.store.Create(ctx, &h); err != nil {
		return Holiday{}, err
	}
	return h, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Holiday, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Holiday{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	in, err := validate(in)
	if err != nil {
		return Holiday{}, err
	}
	return s.store.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}

func validate(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	in.Date = strings.TrimSpace(in.Date)
	if in.Date == "" {
		return in, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return in, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	in.Message = strings.TrimSpace(in.Message)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in, nil
}
