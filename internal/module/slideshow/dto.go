package slideshow

import "github.com/simp-lee/waystar/internal/domain"

// CreateRequest creates a carousel entry. StartTime and EndTime bound when
// the entry is shown; zero values leave it unbounded.
type CreateRequest struct {
	Title        string          `json:"title" validate:"required,max=100"`
	Subtitle     string          `json:"subtitle,omitempty" validate:"omitempty,max=200"`
	ImageURL     string          `json:"imageUrl" validate:"required"`
	AttractionID *int64          `json:"attractionId,omitempty" validate:"omitempty,gt=0"`
	DisplayOrder *int            `json:"displayOrder,omitempty" validate:"omitempty,gte=0"`
	Status       *int            `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
	StartTime    domain.DateTime `json:"startTime,omitzero"`
	EndTime      domain.DateTime `json:"endTime,omitzero"`
}

// UpdateRequest changes a carousel entry.
type UpdateRequest struct {
	SlideshowID  int64           `json:"slideshowId" validate:"required,gt=0"`
	Title        string          `json:"title,omitempty" validate:"omitempty,max=100"`
	Subtitle     string          `json:"subtitle,omitempty" validate:"omitempty,max=200"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	AttractionID *int64          `json:"attractionId,omitempty" validate:"omitempty,gt=0"`
	DisplayOrder *int            `json:"displayOrder,omitempty" validate:"omitempty,gte=0"`
	Status       *int            `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
	StartTime    domain.DateTime `json:"startTime,omitzero"`
	EndTime      domain.DateTime `json:"endTime,omitzero"`
}

// QueryRequest filters the admin carousel list.
type QueryRequest struct {
	domain.PageQuery
	Title        string `json:"title,omitempty"`
	Status       *int   `json:"status,omitempty"`
	AttractionID int64  `json:"attractionId,omitempty" validate:"omitempty,gt=0"`
}

func validWindow(start, end domain.DateTime) error {
	if start.IsZero() || end.IsZero() || !end.Before(start.Time) {
		return nil
	}
	return &domain.AppError{
		Code:    domain.CodeValidation,
		Message: domain.ErrValidation.Message,
		Fields:  map[string]string{"endTime": "gtefield=startTime"},
	}
}
