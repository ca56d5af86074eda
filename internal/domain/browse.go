package domain

// BrowseRecord is one browse-duration report sent by the tracker.
type BrowseRecord struct {
	UserID         int64  `json:"userId" validate:"required,gt=0"`
	AttractionID   int64  `json:"attractionId" validate:"required,gt=0"`
	BrowseDuration int    `json:"browseDuration" validate:"gte=1"`
	DeviceInfo     string `json:"deviceInfo,omitempty" validate:"omitempty,max=255"`
}

// BrowseStatistics aggregates browse activity for one attraction.
type BrowseStatistics struct {
	AttractionID    int64   `json:"attractionId"`
	AttractionName  string  `json:"attractionName"`
	TotalViews      int64   `json:"totalViews"`
	TotalDuration   int64   `json:"totalDuration"`
	AverageDuration float64 `json:"averageDuration"`
	UniqueUsers     int64   `json:"uniqueUsers"`
}

// BrowseHistory is one entry of a user's browse history.
type BrowseHistory struct {
	BrowseRecordID int64    `json:"browseRecordId"`
	UserID         int64    `json:"userId"`
	AttractionID   int64    `json:"attractionId"`
	AttractionName string   `json:"attractionName,omitempty"`
	BrowseDuration int      `json:"browseDuration"`
	BrowseTime     DateTime `json:"browseTime,omitzero"`
	DeviceInfo     string   `json:"deviceInfo,omitempty"`
}

// FileUpload describes a stored file returned by the upload endpoints.
type FileUpload struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
}
