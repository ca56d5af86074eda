package user

import "github.com/simp-lee/waystar/internal/domain"

// QueryRequest filters the admin user list.
type QueryRequest struct {
	domain.PageQuery
	UserID    int64  `json:"userId,omitempty" validate:"omitempty,gt=0"`
	Username  string `json:"username,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Status    *int   `json:"status,omitempty"`
	TagDictID int64  `json:"tagDictId,omitempty" validate:"omitempty,gt=0"`
}

// TagDictCreateRequest creates a user tag dictionary entry.
type TagDictCreateRequest struct {
	TagName          string `json:"tagName" validate:"required,max=30"`
	TagCode          string `json:"tagCode" validate:"required,max=50"`
	TagLevel         *int   `json:"tagLevel,omitempty" validate:"omitempty,gte=0"`
	TriggerCondition string `json:"triggerCondition,omitempty" validate:"omitempty,max=255"`
	Description      string `json:"description,omitempty" validate:"omitempty,max=255"`
	IconURL          string `json:"iconUrl,omitempty"`
	Status           *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
	SortOrder        *int   `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

// TagDictUpdateRequest changes a user tag dictionary entry.
type TagDictUpdateRequest struct {
	TagDictID        int64  `json:"tagDictId" validate:"required,gt=0"`
	TagName          string `json:"tagName,omitempty" validate:"omitempty,max=30"`
	TagCode          string `json:"tagCode,omitempty" validate:"omitempty,max=50"`
	TagLevel         *int   `json:"tagLevel,omitempty" validate:"omitempty,gte=0"`
	TriggerCondition string `json:"triggerCondition,omitempty" validate:"omitempty,max=255"`
	Description      string `json:"description,omitempty" validate:"omitempty,max=255"`
	IconURL          string `json:"iconUrl,omitempty"`
	Status           *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
	SortOrder        *int   `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

// TagDictQuery filters the tag dictionary list.
type TagDictQuery struct {
	domain.PageQuery
	TagName  string `json:"tagName,omitempty"`
	TagCode  string `json:"tagCode,omitempty"`
	TagLevel *int   `json:"tagLevel,omitempty"`
	Status   *int   `json:"status,omitempty"`
}

// TagBindRequest binds or unbinds one tag of a user.
type TagBindRequest struct {
	UserID    int64 `json:"userId" validate:"required,gt=0"`
	TagDictID int64 `json:"tagDictId" validate:"required,gt=0"`
}

// TagBatchRequest binds or unbinds several tags of a user.
type TagBatchRequest struct {
	UserID     int64   `json:"userId" validate:"required,gt=0"`
	TagDictIDs []int64 `json:"tagDictIds" validate:"required,min=1,dive,gt=0"`
}

// Gender values accepted by the profile endpoint.
const (
	GenderUnknown = 0
	GenderMale    = 1
	GenderFemale  = 2
)

// ProfileRequest updates the signed-in user's profile. Birthday uses the
// yyyy-MM-dd layout.
type ProfileRequest struct {
	FullName        string `json:"fullName,omitempty" validate:"omitempty,max=50"`
	Phone           string `json:"phone,omitempty" validate:"omitempty,len=11,numeric"`
	Gender          *int   `json:"gender,omitempty" validate:"omitempty,oneof=0 1 2"`
	Birthday        string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ResidentAddress string `json:"residentAddress,omitempty" validate:"omitempty,max=255"`
}

// PreferenceRequest updates the signed-in user's travel preferences.
type PreferenceRequest struct {
	PreferAttractionTypeID *int64   `json:"preferAttractionTypeId,omitempty" validate:"omitempty,gt=0"`
	BudgetFloor            *float64 `json:"budgetFloor,omitempty" validate:"omitempty,gte=0"`
	BudgetRange            *float64 `json:"budgetRange,omitempty" validate:"omitempty,gte=0"`
	TravelCrowd            string   `json:"travelCrowd,omitempty" validate:"omitempty,max=50"`
	PreferSeason           string   `json:"preferSeason,omitempty" validate:"omitempty,max=20"`
}
