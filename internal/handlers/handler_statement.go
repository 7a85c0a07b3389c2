package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
	"github.com/SscSPs/bank_recon_engine/internal/dto"
	"github.com/SscSPs/bank_recon_engine/internal/middleware"
	"github.com/SscSPs/bank_recon_engine/internal/utils/statementcsv"
	"github.com/gin-gonic/gin"
)

const (
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// statementHandler handles HTTP requests related to bank statements.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
	maxUploadBytes   int64
}

func newStatementHandler(ss portssvc.StatementSvcFacade, maxUploadBytes int64) *statementHandler {
	return &statementHandler{statementService: ss, maxUploadBytes: maxUploadBytes}
}

// RegisterStatementRoutes registers statement routes on an organization-scoped group.
// heavy runs before the upload handler only.
func RegisterStatementRoutes(org *gin.RouterGroup, statementService portssvc.StatementSvcFacade, maxUploadBytes int64, heavy ...gin.HandlerFunc) {
	h := newStatementHandler(statementService, maxUploadBytes)

	org.GET("/statements/template", h.getTemplate)

	accountStatements := org.Group("/accounts/:account_id/statements")
	{
		accountStatements.POST("", withLimits(heavy, h.importStatement)...)
		accountStatements.GET("", h.listStatements)
		accountStatements.GET("/:statement_id/lines", h.getStatementLines)
	}
}

// getTemplate godoc
// @Summary Download a statement template
// @Description Returns a sample statement file with the recognised headers and one example row
// @Tags statements
// @Produce  text/csv
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   organization_id path string true "Organization ID"
// @Param   format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Unsupported format"
// @Failure 500 {object} map[string]string "Failed to build template"
// @Security BearerAuth
// @Router /organizations/{organization_id}/statements/template [get]
func (h *statementHandler) getTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TemplateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage("Invalid query parameters", err)})
		return
	}

	var (
		content     []byte
		err         error
		contentType string
	)
	switch params.Format {
	case "xlsx":
		content, err = statementcsv.TemplateXLSX()
		contentType = contentTypeXLSX
	default:
		content, err = statementcsv.TemplateCSV()
		contentType = contentTypeCSV
	}
	if err != nil {
		logger.Error("Failed to build statement template", slog.String("format", params.Format), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build template"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="statement_template.`+params.Format+`"`)
	c.Data(http.StatusOK, contentType, content)
}

// importStatement godoc
// @Summary Import a bank statement file
// @Description Parses an uploaded CSV or XLSX statement and stores its lines. Re-uploading the same file stores no new lines.
// @Tags statements
// @Accept  multipart/form-data
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Bank account ID"
// @Param   file formData file true "Statement file"
// @Param   name formData string false "Statement name, defaults to the file name"
// @Success 201 {object} dto.ImportStatementResponse
// @Failure 400 {object} map[string]string "Missing file, unreadable workbook or no importable lines"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 500 {object} map[string]string "Failed to import statement"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id}/statements [post]
func (h *statementHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("organization_id")
	accountID := c.Param("account_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		if c.Request.ContentLength > h.maxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Statement file is too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Statement file is too large"})
			return
		}
		logger.Warn("Statement upload without a readable file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A statement file is required in the 'file' field"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded statement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = header.Filename
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received statement upload", slog.String("file_name", name), slog.Int("bytes", len(content)))

	result, err := h.statementService.ParseAndImport(c.Request.Context(), orgID, accountID, name, content, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to import statement")
		return
	}

	logger.Info("Statement imported", slog.String("statement_id", result.StatementID), slog.Int("inserted_lines", result.InsertedLines))
	c.JSON(http.StatusCreated, dto.ToImportStatementResponse(result))
}

// listStatements godoc
// @Summary List statements of an account
// @Description Returns the account's statements, newest first, using token-based pagination
// @Tags statements
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Bank account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListStatementsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list statements"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id}/statements [get]
func (h *statementHandler) listStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("organization_id")
	accountID := c.Param("account_id")

	var params dto.ListStatementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage("Invalid query parameters", err)})
		return
	}

	resp, err := h.statementService.ListStatements(c.Request.Context(), orgID, accountID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list statements")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getStatementLines godoc
// @Summary Get the lines of a statement
// @Tags statements
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Bank account ID"
// @Param   statement_id path string true "Statement ID"
// @Success 200 {object} dto.StatementLinesResponse
// @Failure 404 {object} map[string]string "Statement not found"
// @Failure 500 {object} map[string]string "Failed to retrieve statement lines"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id}/statements/{statement_id}/lines [get]
func (h *statementHandler) getStatementLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("organization_id")
	accountID := c.Param("account_id")
	statementID := c.Param("statement_id")

	statement, lines, err := h.statementService.GetStatementLines(c.Request.Context(), orgID, statementID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve statement lines")
		return
	}
	if statement.AccountID != accountID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Statement not found"})
		return
	}

	c.JSON(http.StatusOK, dto.StatementLinesResponse{
		Statement: dto.ToStatementResponse(statement),
		Lines:     dto.ToStatementLineResponses(lines),
	})
}
