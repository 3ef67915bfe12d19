package deedparse

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"survey-booking/logger"
	"survey-booking/models/deedparse"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DeedParseService handles deed image upload bookkeeping for the vision
// parser: request records, file persistence and result updates.
type DeedParseService struct {
	DB        *gorm.DB
	UploadDir string
}

func NewDeedParseService(db *gorm.DB) *DeedParseService {
	return &DeedParseService{
		DB:        db,
		UploadDir: "uploaded_deeds",
	}
}

// GenerateRequestID generates a 24 character unique request ID
func (s *DeedParseService) GenerateRequestID() string {
	bytes := make([]byte, 12)
	rand.Read(bytes)
	requestID := hex.EncodeToString(bytes)

	// Timestamp prefix keeps ids unique across restarts
	timestamp := time.Now().Unix()
	return fmt.Sprintf("%06x%s", timestamp&0xffffff, requestID[:18])
}

// CreateInitialRequest creates the request record before any parsing work.
func (s *DeedParseService) CreateInitialRequest(c *fiber.Ctx, requestID, originalFileName string, fileSize int64, mimeType string) (*deedparse.DeedParseRequest, error) {
	ipAddress := c.IP()
	if ipAddress == "" {
		ipAddress = "unknown"
	}
	userAgent := c.Get("User-Agent")

	request := &deedparse.DeedParseRequest{
		RequestID:        requestID,
		OriginalFileName: originalFileName,
		FileSize:         fileSize,
		MimeType:         mimeType,
		Status:           "processing",
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
	}

	if err := s.DB.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create initial request: %w", err)
	}
	return request, nil
}

// SaveFileAsync saves the uploaded file off the request path.
func (s *DeedParseService) SaveFileAsync(requestID string, fileBytes []byte, originalFileName string) {
	go func() {
		if err := s.saveFile(requestID, fileBytes, originalFileName); err != nil {
			logger.Error(fmt.Sprintf("Failed to save file for request %s", requestID), err)
			s.DB.Model(&deedparse.DeedParseRequest{}).
				Where("request_id = ?", requestID).
				Update("error_message", err.Error())
		}
	}()
}

func (s *DeedParseService) saveFile(requestID string, fileBytes []byte, originalFileName string) error {
	if err := os.MkdirAll(s.UploadDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	hash := sha256.Sum256(fileBytes)
	fileHash := hex.EncodeToString(hash[:])

	ext := filepath.Ext(originalFileName)
	savedFileName := fmt.Sprintf("%s_%d%s", requestID, time.Now().Unix(), ext)
	filePath := filepath.Join(s.UploadDir, savedFileName)

	if err := os.WriteFile(filePath, fileBytes, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	updates := map[string]interface{}{
		"saved_file_name": savedFileName,
		"file_hash":       fileHash,
		"file_path":       filePath,
	}
	if err := s.DB.Model(&deedparse.DeedParseRequest{}).Where("request_id = ?", requestID).Updates(updates).Error; err != nil {
		os.Remove(filePath)
		return fmt.Errorf("failed to update request with file info: %w", err)
	}
	return nil
}

// SaveSuccessResultAsync records the parsed fields on the request row.
func (s *DeedParseService) SaveSuccessResultAsync(requestID string, result *deedparse.DeedParseResponse, processingTimeMs int64) {
	go func() {
		updates := map[string]interface{}{
			"status":             "success",
			"processing_time_ms": processingTimeMs,
			"owner_name":         result.OwnerName,
			"mouza":              result.Mouza,
			"plot_number":        result.PlotNumber,
			"khatian_no":         result.KhatianNo,
			"area_sq_ft":         result.AreaSqFt,
			"area_katha":         result.AreaKatha,
			"area_decimal":       result.AreaDecimal,
		}
		if err := s.DB.Model(&deedparse.DeedParseRequest{}).Where("request_id = ?", requestID).Updates(updates).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to save parse result for request %s", requestID), err)
		}
	}()
}

// SaveFailureResultAsync marks the request failed with an error message.
func (s *DeedParseService) SaveFailureResultAsync(requestID, message string, processingTimeMs int64) {
	go func() {
		updates := map[string]interface{}{
			"status":             "failed",
			"processing_time_ms": processingTimeMs,
			"error_message":      message,
		}
		if err := s.DB.Model(&deedparse.DeedParseRequest{}).Where("request_id = ?", requestID).Updates(updates).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to save failure for request %s", requestID), err)
		}
	}()
}
