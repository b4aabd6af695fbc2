package handlers

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const (
	resumeFormField = "resume"
	pdfMediaType    = "application/pdf"
)

type AnalyzeHandler struct {
	resolver    services.AnalysisResolver
	inspector   services.PDFInspector
	maxFileSize int64
}

func NewAnalyzeHandler(
	resolver services.AnalysisResolver,
	inspector services.PDFInspector,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		resolver:    resolver,
		inspector:   inspector,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyze handles /api/analyze. Only POST with a PDF in the "resume"
// field is accepted; every accepted upload gets a 200 with an analysis.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(models.ErrorResponse{
			Error: "Method not allowed",
		})
	}

	file, err := c.FormFile(resumeFormField)
	if err != nil || file == nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "No file uploaded",
		})
	}

	if file.Header.Get(fiber.HeaderContentType) != pdfMediaType {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Only PDF files are allowed",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	analysisID := uuid.New().String()
	log := logger.Log.WithFields(logrus.Fields{
		"analysis_id": analysisID,
		"filename":    file.Filename,
		"size":        file.Size,
	})
	log.Info("📄 File uploaded")

	h.inspect(log, file)

	result := h.resolver.Resolve(c.UserContext(), file.Filename)

	c.Set("X-Analysis-ID", analysisID)
	return c.Status(fiber.StatusOK).JSON(result)
}

// inspect logs PDF metadata. Failures are logged and otherwise ignored.
func (h *AnalyzeHandler) inspect(log *logrus.Entry, file *multipart.FileHeader) {
	if h.inspector == nil {
		return
	}

	src, err := file.Open()
	if err != nil {
		log.WithError(err).Debug("Could not open upload for inspection")
		return
	}
	defer src.Close()

	info, err := h.inspector.Inspect(src)
	if err != nil {
		log.WithError(err).Debug("Could not inspect PDF")
		return
	}

	log.WithFields(logrus.Fields{
		"pages":      info.PageCount,
		"text_chars": info.TextChars,
	}).Info("📖 PDF inspected")
}
