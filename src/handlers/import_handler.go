// src/handlers/import_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ldallalio/TradeWise/src/config"
	"github.com/ldallalio/TradeWise/src/logger"
	"github.com/ldallalio/TradeWise/src/security/validation"
	"github.com/ldallalio/TradeWise/src/services"
	"github.com/ldallalio/TradeWise/src/utils"
)

type ImportHandler struct {
	importService services.ImportService
}

func NewImportHandler(service services.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: service,
	}
}

// HandleImport accepts a multipart statement upload and runs the import
// pipeline. Form fields: file, broker, account, fee_override (optional flat
// per-contract fee), earliest_date (optional YYYY-MM-DD cutoff).
func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to process upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	broker := r.FormValue("broker")
	if broker == "" {
		ctxLogger.Warn("Import request missing 'broker' field")
		utils.SendJSONError(w, "Broker source is required.", http.StatusBadRequest)
		return
	}
	account := r.FormValue("account")
	if account == "" {
		ctxLogger.Warn("Import request missing 'account' field")
		utils.SendJSONError(w, "Account name is required.", http.StatusBadRequest)
		return
	}
	account = validation.SanitizeText(account)

	params := services.ImportParams{
		UserID:  userID,
		Broker:  broker,
		Account: account,
	}

	if feeStr := r.FormValue("fee_override"); feeStr != "" {
		fee, err := strconv.ParseFloat(feeStr, 64)
		if err != nil {
			utils.SendJSONError(w, "Invalid fee_override value.", http.StatusBadRequest)
			return
		}
		params.FeeOverride = &fee
	}
	if dateStr := r.FormValue("earliest_date"); dateStr != "" {
		cutoff, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			utils.SendJSONError(w, "Invalid earliest_date value, expected YYYY-MM-DD.", http.StatusBadRequest)
			return
		}
		params.EarliestDate = &cutoff
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := validation.ValidateFileContentByMagicBytes(file); err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	params.Filename = fileHeader.Filename
	params.FileSize = fileHeader.Size

	ctxLogger.Info("Processing import request", "broker", broker, "account", account, "filename", fileHeader.Filename)
	result, err := h.importService.Import(file, params)
	if err != nil {
		ctxLogger.Error("Import failed", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.SendJSON(w, result, http.StatusOK)
}

// HandleGetLatestImportResult returns the cached result of the most recent
// import for an account, if any.
func (h *ImportHandler) HandleGetLatestImportResult(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	account := r.URL.Query().Get("account")
	if account == "" {
		utils.SendJSONError(w, "account query parameter is required", http.StatusBadRequest)
		return
	}
	result, found := h.importService.LatestImportResult(userID, account)
	if !found {
		utils.SendJSONError(w, "no recent import for account", http.StatusNotFound)
		return
	}
	utils.SendJSON(w, result, http.StatusOK)
}
