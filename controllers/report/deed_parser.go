package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"survey-booking/logger"
	"survey-booking/models/deedparse"
	deedParseService "survey-booking/services/deedparse"
	"survey-booking/types"
	"survey-booking/utils"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"
)

// ParseDeed handles a deed/parcha image upload and extracts the report
// fields (mouza, plot, khatian, areas) using the Gemini Vision API.
func (rc *ReportController) ParseDeed(c *fiber.Ctx) error {
	startTime := time.Now()

	service := deedParseService.NewDeedParseService(rc.DB)
	requestID := service.GenerateRequestID()

	file, err := c.FormFile("image")
	if err != nil {
		logger.Error(fmt.Sprintf("No image file provided for request %s", requestID), err)
		return utils.SendResponseWithLog(c, rc.Logger, fiber.StatusBadRequest, types.ApiResponse{
			Message: "No image file provided",
			Status:  fiber.StatusBadRequest,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	mimeType := file.Header.Get("Content-Type")
	if !isValidImageType(mimeType) {
		logger.Error(fmt.Sprintf("Invalid file type %s for request %s", mimeType, requestID),
			fmt.Errorf("invalid mime type: %s", mimeType))
		return utils.SendResponseWithLog(c, rc.Logger, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid file type. Only JPEG, JPG, PNG, and WebP files are allowed",
			Status:  fiber.StatusBadRequest,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	maxSize := int64(10 * 1024 * 1024) // 10MB
	if file.Size > maxSize {
		logger.Error(fmt.Sprintf("File size %d exceeds max %d for request %s", file.Size, maxSize, requestID),
			fmt.Errorf("file size %d exceeds max %d", file.Size, maxSize))
		return utils.SendResponseWithLog(c, rc.Logger, fiber.StatusBadRequest, types.ApiResponse{
			Message: "File size too large. Maximum size is 10MB",
			Status:  fiber.StatusBadRequest,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	if _, err := service.CreateInitialRequest(c, requestID, file.Filename, file.Size, mimeType); err != nil {
		logger.Error(fmt.Sprintf("Failed to create initial request %s", requestID), err)
		return utils.SendResponseWithLog(c, rc.Logger, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Failed to initialize request",
			Status:  fiber.StatusInternalServerError,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	src, err := file.Open()
	if err != nil {
		processingTime := time.Since(startTime).Milliseconds()
		service.SaveFailureResultAsync(requestID, "Failed to open uploaded file", processingTime)
		logger.Error(fmt.Sprintf("Failed to open uploaded file for request %s", requestID), err)
		return utils.SendResponseWithLog(c, rc.Logger, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Failed to read uploaded file",
			Status:  fiber.StatusInternalServerError,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}
	defer src.Close()

	imageBytes, err := io.ReadAll(src)
	if err != nil {
		processingTime := time.Since(startTime).Milliseconds()
		service.SaveFailureResultAsync(requestID, "Failed to read uploaded file", processingTime)
		return utils.SendResponseWithLog(c, rc.Logger, fiber.StatusInternalServerError, types.ApiResponse{
			Message: "Failed to read uploaded file",
			Status:  fiber.StatusInternalServerError,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	service.SaveFileAsync(requestID, imageBytes, file.Filename)

	result, err := rc.parseDeedWithGemini(imageBytes, mimeType)
	processingTime := time.Since(startTime).Milliseconds()
	if err != nil {
		service.SaveFailureResultAsync(requestID, err.Error(), processingTime)
		logger.Error(fmt.Sprintf("Deed parsing failed for request %s", requestID), err)
		return utils.SendResponseWithLog(c, rc.Logger, fiber.StatusBadGateway, types.ApiResponse{
			Message: "Failed to parse deed image",
			Status:  fiber.StatusBadGateway,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	service.SaveSuccessResultAsync(requestID, result, processingTime)

	logger.Success(fmt.Sprintf("Deed parsed successfully in %dms, mouza %q, request %s",
		processingTime, result.Mouza, requestID))
	return utils.SendResponseWithLog(c, rc.Logger, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Deed parsed successfully",
		Data: map[string]interface{}{
			"request_id": requestID,
			"result":     result,
		},
	})
}

// parseDeedWithGemini uses the Gemini Vision API to extract structured data
// from a land deed or parcha image.
func (rc *ReportController) parseDeedWithGemini(imageBytes []byte, mimeType string) (*deedparse.DeedParseResponse, error) {
	ctx := context.Background()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := `Analyze this Bangladeshi land deed / parcha / khatian document image and extract the following information. Return ONLY valid JSON.

			Extract these fields from the image. If a field is missing or unclear, use an empty string (or 0 for numbers).

			Required JSON format:
			{
			"owner_name": string,      // Land owner's full name
			"mouza": string,           // Mouza (land-registry locality) name
			"plot_number": string,     // Plot / dag number
			"khatian_no": string,      // Khatian number
			"area_sq_ft": number,      // Land area in square feet if stated
			"area_katha": number,      // Land area in katha if stated
			"area_decimal": number     // Land area in decimal/shotok if stated
			}`

	content := &genai.Content{
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     imageBytes,
			}},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-lite",
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with OCR: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated by OCR")
	}

	responseText := result.Candidates[0].Content.Parts[0].Text
	if responseText == "" {
		return nil, fmt.Errorf("empty response from OCR")
	}

	jsonText := extractJSONFromMarkdown(responseText)

	var parsedData deedparse.DeedParseResponse
	if err := json.Unmarshal([]byte(jsonText), &parsedData); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, response: %s", err, jsonText)
	}

	return &parsedData, nil
}

// extractJSONFromMarkdown extracts JSON content from markdown code blocks
func extractJSONFromMarkdown(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			jsonLines := lines[1 : len(lines)-1]
			return strings.Join(jsonLines, "\n")
		}
	}

	return text
}

// isValidImageType checks if the provided content type is a valid image type
func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}
