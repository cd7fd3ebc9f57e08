package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/service"
)

// ImportHandler serves the spreadsheet bulk import.
type ImportHandler struct {
	svc *service.ImportService
}

func NewImportHandler(svc *service.ImportService) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// ZoneAccess reports whether the caller may run zone imports.
// GET /api/v1/imports/zone-access
func (h *ImportHandler) ZoneAccess(c *gin.Context) {
	enabled, err := h.svc.ZoneAccess(c.Request.Context(), GetActor(c))
	if err != nil {
		HandleError(c, err, "no se pudo verificar el acceso")
		return
	}
	Success(c, gin.H{"enabled": enabled})
}

// Import receives the spreadsheet as multipart form field "file" and runs
// the bulk import. The result carries per-batch outcomes; partial failures
// still answer 200 with success=true and a non-empty error_message.
// POST /api/v1/imports/services?client_id=xxx
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "archivo no recibido: "+err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "no se pudo leer el archivo: "+err.Error())
		return
	}
	defer file.Close()

	result, err := h.svc.Import(c.Request.Context(), GetActor(c), file, c.Query("client_id"))
	if err != nil {
		if errors.Is(err, service.ErrZoningTypeMissing) {
			InternalError(c, err.Error())
			return
		}
		// Validation errors surface verbatim with 400, nothing was persisted.
		// Anything else is an infrastructure failure and answers 500.
		HandleError(c, err, "no se pudo completar la importación")
		return
	}
	Success(c, result)
}
