package domain

// UserTagDict is an entry of the user tag dictionary.
type UserTagDict struct {
	TagDictID        int64    `json:"tagDictId"`
	TagName          string   `json:"tagName"`
	TagCode          string   `json:"tagCode"`
	TagLevel         int      `json:"tagLevel"`
	TriggerCondition string   `json:"triggerCondition,omitempty"`
	Description      string   `json:"description,omitempty"`
	IconURL          string   `json:"iconUrl,omitempty"`
	Status           int      `json:"status"`
	SortOrder        int      `json:"sortOrder"`
	CreateTime       DateTime `json:"createTime,omitzero"`
	UpdateTime       DateTime `json:"updateTime,omitzero"`
}

// UserProfile holds the extended personal data of a site user.
type UserProfile struct {
	ProfileID       int64    `json:"profileId"`
	UserID          int64    `json:"userId"`
	FullName        string   `json:"fullName,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Gender          *int     `json:"gender,omitempty"`
	Birthday        Date     `json:"birthday,omitzero"`
	ResidentAddress string   `json:"residentAddress,omitempty"`
	CreateTime      DateTime `json:"createTime,omitzero"`
	UpdateTime      DateTime `json:"updateTime,omitzero"`
}

// UserPreference captures travel preferences of a site user.
type UserPreference struct {
	PreferenceID           int64    `json:"preferenceId"`
	UserID                 int64    `json:"userId"`
	PreferAttractionTypeID *int64   `json:"preferAttractionTypeId,omitempty"`
	AttractionTypeName     string   `json:"attractionTypeName,omitempty"`
	BudgetFloor            *float64 `json:"budgetFloor,omitempty"`
	BudgetRange            *float64 `json:"budgetRange,omitempty"`
	TravelCrowd            string   `json:"travelCrowd,omitempty"`
	PreferSeason           string   `json:"preferSeason,omitempty"`
	CreateTime             DateTime `json:"createTime,omitzero"`
	UpdateTime             DateTime `json:"updateTime,omitzero"`
}

// UserDetail is the admin view of a site user.
type UserDetail struct {
	UserID        int64           `json:"userId"`
	Username      string          `json:"username"`
	Nickname      string          `json:"nickname,omitempty"`
	Email         string          `json:"email,omitempty"`
	AvatarURL     string          `json:"avatarUrl,omitempty"`
	Status        int             `json:"status"`
	CreateTime    DateTime        `json:"createTime,omitzero"`
	LastLoginTime DateTime        `json:"lastLoginTime,omitzero"`
	Profile       *UserProfile    `json:"profile,omitempty"`
	Preference    *UserPreference `json:"preference,omitempty"`
	Tags          []UserTagDict   `json:"tags,omitempty"`
}

// UserCount holds per-user activity counters.
type UserCount struct {
	CountID       int64    `json:"countId"`
	UserID        int64    `json:"userId"`
	CollectCount  int64    `json:"collectCount"`
	BrowsingCount int64    `json:"browsingCount"`
	PlanningCount int64    `json:"planningCount"`
	CreateTime    DateTime `json:"createTime,omitzero"`
	UpdateTime    DateTime `json:"updateTime,omitzero"`
}

// UserInfo is the public-site profile snapshot persisted by the session store.
type UserInfo struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Gender   *int   `json:"gender,omitempty"`
	Birthday string `json:"birthday,omitempty"`
	Status   *int   `json:"status,omitempty"`
}

// UserLogin is the public-site login and registration result.
type UserLogin struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	UserID   int64  `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Token    string `json:"token,omitempty"`
}

// UserProfileInfo is the profile view returned to the signed-in user.
type UserProfileInfo struct {
	UserID          int64  `json:"userId"`
	Username        string `json:"username"`
	Email           string `json:"email,omitempty"`
	Avatar          string `json:"avatar,omitempty"`
	FullName        string `json:"fullName,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Gender          *int   `json:"gender,omitempty"`
	Birthday        string `json:"birthday,omitempty"`
	ResidentAddress string `json:"residentAddress,omitempty"`
}

// UserInfo converts the profile view into the persisted session snapshot.
func (p *UserProfileInfo) UserInfo() *UserInfo {
	if p == nil {
		return nil
	}
	return &UserInfo{
		UserID:   p.UserID,
		Username: p.Username,
		Email:    p.Email,
		FullName: p.FullName,
		Avatar:   p.Avatar,
		Phone:    p.Phone,
		Gender:   p.Gender,
		Birthday: p.Birthday,
	}
}

// AvatarUpload is returned after the signed-in user replaces their avatar.
// The backend reissues the token because it embeds the avatar URL.
type AvatarUpload struct {
	AvatarURL string `json:"avatarUrl"`
	Token     string `json:"token,omitempty"`
}
