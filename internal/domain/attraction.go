package domain

// AttractionType classifies attractions (museum, park, ...).
type AttractionType struct {
	TypeID     int64    `json:"typeId"`
	TypeName   string   `json:"typeName"`
	SortOrder  int      `json:"sortOrder"`
	Status     int      `json:"status"`
	CreateTime DateTime `json:"createTime,omitzero"`
	UpdateTime DateTime `json:"updateTime,omitzero"`
}

// City is the administrative city record.
type City struct {
	CityID       int64    `json:"cityId"`
	CityName     string   `json:"cityName"`
	ProvinceCode string   `json:"provinceCode"`
	CityCode     string   `json:"cityCode"`
	Level        int      `json:"level"`
	SortOrder    int      `json:"sortOrder"`
	Status       int      `json:"status"`
	CreateTime   DateTime `json:"createTime,omitzero"`
	UpdateTime   DateTime `json:"updateTime,omitzero"`
}

// CityCard is the public city listing item.
type CityCard struct {
	CityName           string  `json:"cityName"`
	Country            string  `json:"country"`
	Description        string  `json:"description"`
	CityURL            string  `json:"cityUrl"`
	AverageTemperature float64 `json:"averageTemperature"`
	AttractionCount    int     `json:"attractionCount"`
	Popularity         int     `json:"popularity"`
}

// AttractionTag is a tag in the attraction tag dictionary.
type AttractionTag struct {
	TagID      int64    `json:"tagId"`
	TagName    string   `json:"tagName"`
	Status     int      `json:"status"`
	CreateTime DateTime `json:"createTime,omitzero"`
	UpdateTime DateTime `json:"updateTime,omitzero"`
}

// TagInfo is the short tag form embedded in attraction details.
type TagInfo struct {
	TagID   int64  `json:"tagId"`
	TagName string `json:"tagName"`
	Status  int    `json:"status"`
}

// AttractionListItem is one row of the admin attraction list.
type AttractionListItem struct {
	AttractionID    int64    `json:"attractionId"`
	Name            string   `json:"name"`
	TypeID          int64    `json:"typeId"`
	TypeName        string   `json:"typeName"`
	CityID          int64    `json:"cityId"`
	CityName        string   `json:"cityName"`
	ViewCount       int64    `json:"viewCount"`
	FavoriteCount   int64    `json:"favoriteCount"`
	PopularityScore float64  `json:"popularityScore"`
	Status          int      `json:"status"`
	CreateTime      DateTime `json:"createTime,omitzero"`
	UpdateTime      DateTime `json:"updateTime,omitzero"`
}

// AttractionDetail is the full attraction record including tags.
type AttractionDetail struct {
	AttractionID    int64     `json:"attractionId"`
	Name            string    `json:"name"`
	TypeID          int64     `json:"typeId"`
	TypeName        string    `json:"typeName"`
	CityID          int64     `json:"cityId"`
	CityName        string    `json:"cityName"`
	Address         string    `json:"address"`
	Description     string    `json:"description"`
	OpeningHours    string    `json:"openingHours"`
	TicketPrice     float64   `json:"ticketPrice"`
	Contact         string    `json:"contact"`
	ImageURLs       []string  `json:"imageUrls"`
	ViewCount       int64     `json:"viewCount"`
	FavoriteCount   int64     `json:"favoriteCount"`
	PopularityScore float64   `json:"popularityScore"`
	Longitude       float64   `json:"longitude"`
	Latitude        float64   `json:"latitude"`
	Status          int       `json:"status"`
	CreateTime      DateTime  `json:"createTime,omitzero"`
	UpdateTime      DateTime  `json:"updateTime,omitzero"`
	Tags            []TagInfo `json:"tags"`
}

// AttractionCard is the public attraction listing item.
type AttractionCard struct {
	AttractionID  int64   `json:"attractionId"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Type          string  `json:"type"`
	Location      string  `json:"location"`
	ImageURL      string  `json:"imageUrl"`
	AverageRating float64 `json:"averageRating"`
	ViewCount     int64   `json:"viewCount"`
	Popularity    int     `json:"popularity"`
	TicketPrice   float64 `json:"ticketPrice"`
}

// CollectResult is returned by the favorite and unfavorite endpoints.
type CollectResult struct {
	Collected   *bool `json:"collected,omitempty"`
	Uncollected *bool `json:"uncollected,omitempty"`
}

// Slideshow is a home page carousel entry.
type Slideshow struct {
	SlideshowID  int64    `json:"slideshowId"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle,omitempty"`
	ImageURL     string   `json:"imageUrl"`
	AttractionID *int64   `json:"attractionId,omitempty"`
	DisplayOrder int      `json:"displayOrder"`
	Status       int      `json:"status"`
	StartTime    DateTime `json:"startTime,omitzero"`
	EndTime      DateTime `json:"endTime,omitzero"`
	ClickCount   int64    `json:"clickCount"`
	CreateTime   DateTime `json:"createTime,omitzero"`
	UpdateTime   DateTime `json:"updateTime,omitzero"`
}
