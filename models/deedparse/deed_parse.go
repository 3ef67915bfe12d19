package deedparse

import (
	"time"

	"gorm.io/gorm"
)

// DeedParseRequest records one deed/parcha image upload sent through the
// vision parser to prefill report fields.
type DeedParseRequest struct {
	ID               uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID        string `json:"request_id" gorm:"type:varchar(24);uniqueIndex;not null"`
	OriginalFileName string `json:"original_file_name" gorm:"type:varchar(255);not null"`
	SavedFileName    string `json:"saved_file_name" gorm:"type:varchar(255);not null"`
	FileHash         string `json:"file_hash" gorm:"type:varchar(128);index"`
	FilePath         string `json:"file_path" gorm:"type:varchar(500);not null"`
	FileSize         int64  `json:"file_size" gorm:"not null"`
	MimeType         string `json:"mime_type" gorm:"type:varchar(100);not null"`
	Status           string `json:"status" gorm:"type:varchar(50);not null;default:'processing';index"` // processing, success, failed
	ProcessingTimeMs int64  `json:"processing_time_ms" gorm:"default:0"`

	// Parsed data fields
	OwnerName   string  `json:"owner_name" gorm:"type:varchar(255);default:''"`
	Mouza       string  `json:"mouza" gorm:"type:varchar(255);default:''"`
	PlotNumber  string  `json:"plot_number" gorm:"type:varchar(100);default:''"`
	KhatianNo   string  `json:"khatian_no" gorm:"type:varchar(100);default:''"`
	AreaSqFt    float64 `json:"area_sq_ft" gorm:"default:0"`
	AreaKatha   float64 `json:"area_katha" gorm:"default:0"`
	AreaDecimal float64 `json:"area_decimal" gorm:"default:0"`

	ErrorMessage string `json:"error_message" gorm:"type:text;default:''"`

	IPAddress string `json:"ip_address" gorm:"type:varchar(45);index;default:''"`
	UserAgent string `json:"user_agent" gorm:"type:text;default:''"`

	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TableName returns the table name for DeedParseRequest
func (DeedParseRequest) TableName() string {
	return "deed_parse_requests"
}

// BeforeCreate hook to set default values
func (dpr *DeedParseRequest) BeforeCreate(tx *gorm.DB) error {
	if dpr.Status == "" {
		dpr.Status = "processing"
	}
	return nil
}

// DeedParseResponse is the structured payload extracted from the image.
type DeedParseResponse struct {
	OwnerName   string  `json:"owner_name"`
	Mouza       string  `json:"mouza"`
	PlotNumber  string  `json:"plot_number"`
	KhatianNo   string  `json:"khatian_no"`
	AreaSqFt    float64 `json:"area_sq_ft"`
	AreaKatha   float64 `json:"area_katha"`
	AreaDecimal float64 `json:"area_decimal"`
}
