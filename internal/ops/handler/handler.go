package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/repository"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/service"
)

// Handlers groups every HTTP handler.
type Handlers struct {
	Auth      *AuthHandler
	Import    *ImportHandler
	Zone      *ZoneHandler
	Service   *ServiceHandler
	Client    *ClientHandler
	Driver    *DriverHandler
	Dashboard *DashboardHandler
}

func NewHandlers(svcs *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svcs.Auth),
		Import:    NewImportHandler(svcs.Import),
		Zone:      NewZoneHandler(svcs.Zone),
		Service:   NewServiceHandler(svcs.Service),
		Client:    NewClientHandler(svcs.Client),
		Driver:    NewDriverHandler(svcs.Driver),
		Dashboard: NewDashboardHandler(svcs.Dashboard),
	}
}

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleError maps service errors to responses: capability denials become
// 403, missing records 404, anything else 500 with the fallback prefix.
func HandleError(c *gin.Context, err error, fallback string) {
	switch {
	case auth.IsDenied(err):
		Forbidden(c, err.Error())
	case service.IsValidation(err):
		BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "recurso no encontrado")
	default:
		InternalError(c, fallback+": "+err.Error())
	}
}

// GetActor returns the caller identity resolved by the auth middleware.
func GetActor(c *gin.Context) auth.Actor {
	v, _ := c.Get("actor")
	if actor, ok := v.(auth.Actor); ok {
		return actor
	}
	return auth.Actor{}
}

func GetUserID(c *gin.Context) string {
	return GetActor(c).UserID
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

func listResponse(items interface{}, page, pageSize int, total int64) ListResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	}
}
