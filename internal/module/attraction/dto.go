package attraction

import "github.com/simp-lee/waystar/internal/domain"

// CreateRequest creates an attraction.
type CreateRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	TypeID       int64    `json:"typeId" validate:"required,gt=0"`
	CityID       int64    `json:"cityId" validate:"required,gt=0"`
	Address      string   `json:"address,omitempty" validate:"omitempty,max=255"`
	Description  string   `json:"description,omitempty"`
	OpeningHours string   `json:"openingHours,omitempty" validate:"omitempty,max=100"`
	TicketPrice  *float64 `json:"ticketPrice,omitempty" validate:"omitempty,gte=0"`
	Contact      string   `json:"contact,omitempty" validate:"omitempty,max=50"`
	ImageURLs    []string `json:"imageUrls,omitempty" validate:"omitempty,dive,required"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Status       *int     `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

// UpdateRequest changes an attraction. Unset fields are left alone.
type UpdateRequest struct {
	AttractionID int64    `json:"attractionId" validate:"required,gt=0"`
	Name         string   `json:"name,omitempty" validate:"omitempty,max=100"`
	TypeID       int64    `json:"typeId,omitempty" validate:"omitempty,gt=0"`
	CityID       int64    `json:"cityId,omitempty" validate:"omitempty,gt=0"`
	Address      string   `json:"address,omitempty" validate:"omitempty,max=255"`
	Description  string   `json:"description,omitempty"`
	OpeningHours string   `json:"openingHours,omitempty" validate:"omitempty,max=100"`
	TicketPrice  *float64 `json:"ticketPrice,omitempty" validate:"omitempty,gte=0"`
	Contact      string   `json:"contact,omitempty" validate:"omitempty,max=50"`
	ImageURLs    []string `json:"imageUrls,omitempty" validate:"omitempty,dive,required"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Status       *int     `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

// QueryRequest filters the admin attraction list. It is posted as a body.
type QueryRequest struct {
	domain.PageQuery
	AttractionID       int64    `json:"attractionId,omitempty" validate:"omitempty,gt=0"`
	Name               string   `json:"name,omitempty"`
	TypeID             int64    `json:"typeId,omitempty" validate:"omitempty,gt=0"`
	CityID             int64    `json:"cityId,omitempty" validate:"omitempty,gt=0"`
	MinPopularityScore *float64 `json:"minPopularityScore,omitempty" validate:"omitempty,gte=0"`
	MaxPopularityScore *float64 `json:"maxPopularityScore,omitempty" validate:"omitempty,gte=0"`
	Status             *int     `json:"status,omitempty"`
}

// TypeCreateRequest creates an attraction type.
type TypeCreateRequest struct {
	TypeName  string `json:"typeName" validate:"required,max=50"`
	SortOrder *int   `json:"sortOrder" validate:"required,gte=0"`
	Status    *int   `json:"status" validate:"required,oneof=0 1"`
}

// TypeUpdateRequest changes an attraction type.
type TypeUpdateRequest struct {
	TypeID    int64  `json:"typeId" validate:"required,gt=0"`
	TypeName  string `json:"typeName,omitempty" validate:"omitempty,max=50"`
	SortOrder *int   `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	Status    *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

// TypeQuery filters the attraction type list.
type TypeQuery struct {
	domain.PageQuery
	TypeID   int64  `json:"typeId,omitempty" validate:"omitempty,gt=0"`
	TypeName string `json:"typeName,omitempty"`
	Status   *int   `json:"status,omitempty"`
}

// CityCreateRequest creates a city.
type CityCreateRequest struct {
	CityName     string `json:"cityName" validate:"required,max=50"`
	ProvinceCode string `json:"provinceCode,omitempty" validate:"omitempty,max=20"`
	CityCode     string `json:"cityCode,omitempty" validate:"omitempty,max=20"`
	Level        *int   `json:"level,omitempty" validate:"omitempty,gte=0"`
	SortOrder    *int   `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	Status       *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

// CityUpdateRequest changes a city.
type CityUpdateRequest struct {
	CityID       int64  `json:"cityId" validate:"required,gt=0"`
	CityName     string `json:"cityName,omitempty" validate:"omitempty,max=50"`
	ProvinceCode string `json:"provinceCode,omitempty" validate:"omitempty,max=20"`
	CityCode     string `json:"cityCode,omitempty" validate:"omitempty,max=20"`
	Level        *int   `json:"level,omitempty" validate:"omitempty,gte=0"`
	SortOrder    *int   `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	Status       *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

// CityQuery filters the admin city list.
type CityQuery struct {
	domain.PageQuery
	CityName     string `json:"cityName,omitempty"`
	ProvinceCode string `json:"provinceCode,omitempty"`
	Level        *int   `json:"level,omitempty"`
	Status       *int   `json:"status,omitempty"`
}

// TagCreateRequest creates an attraction tag.
type TagCreateRequest struct {
	TagName string `json:"tagName" validate:"required,max=30"`
	Status  *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

// TagUpdateRequest changes an attraction tag.
type TagUpdateRequest struct {
	TagID   int64  `json:"tagId" validate:"required,gt=0"`
	TagName string `json:"tagName,omitempty" validate:"omitempty,max=30"`
	Status  *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

// TagQuery filters the attraction tag list.
type TagQuery struct {
	domain.PageQuery
	TagName string `json:"tagName,omitempty"`
	Status  *int   `json:"status,omitempty"`
}

// TagBindRequest binds or unbinds one tag.
type TagBindRequest struct {
	AttractionID int64 `json:"attractionId" validate:"required,gt=0"`
	TagID        int64 `json:"tagId" validate:"required,gt=0"`
}

// TagBatchRequest binds or unbinds several tags at once.
type TagBatchRequest struct {
	AttractionID int64   `json:"attractionId" validate:"required,gt=0"`
	TagIDs       []int64 `json:"tagIds" validate:"required,min=1,dive,gt=0"`
}

// Public list ordering.
const (
	OrderByPopularity = "popularity"
	OrderDesc         = "desc"
	OrderAsc          = "asc"
)

// CardQuery filters the public attraction card list. Current and Size are
// the backend's paging names for this endpoint.
type CardQuery struct {
	Current     int    `json:"current,omitempty" validate:"omitempty,min=1"`
	Size        int    `json:"size,omitempty" validate:"omitempty,min=1,max=100"`
	Name        string `json:"name,omitempty"`
	TypeID      int64  `json:"typeId,omitempty" validate:"omitempty,gt=0"`
	CityID      int64  `json:"cityId,omitempty" validate:"omitempty,gt=0"`
	Status      *int   `json:"status,omitempty"`
	AuditStatus *int   `json:"auditStatus,omitempty"`
	OrderBy     string `json:"orderBy,omitempty"`
	OrderType   string `json:"orderType,omitempty" validate:"omitempty,oneof=asc desc"`
}

func (q *CardQuery) applyDefaults() {
	if q.Current == 0 {
		q.Current = 1
	}
	if q.Size == 0 {
		q.Size = 10
	}
	if q.OrderBy == "" {
		q.OrderBy = OrderByPopularity
	}
	if q.OrderType == "" {
		q.OrderType = OrderDesc
	}
}
