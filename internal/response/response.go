package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/wedding-api/internal/domain/common"
)

// Response representa la estructura estándar de respuesta de la API
type Response struct {
	Success bool `json:"success"`
}

// ErrorResponse representa una respuesta de error
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code"`
}

// Ack envía {"success": true}
func Ack(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true})
}

// ErrorResponseWithMessage envía una respuesta de error con mensaje personalizado
func ErrorResponseWithMessage(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    status,
	})
}

// StatusFor maps an error kind to its HTTP status
func StatusFor(kind common.Kind) int {
	switch kind {
	case common.KindInvalidInput:
		return http.StatusBadRequest
	case common.KindUnauthorized:
		return http.StatusUnauthorized
	case common.KindForbidden:
		return http.StatusForbidden
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindConflict:
		return http.StatusConflict
	case common.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err with the status of its kind. Only the public message
// is sent; causes stay in the logs.
func FromError(c *gin.Context, err error) {
	_ = c.Error(err)
	ErrorResponseWithMessage(c, StatusFor(common.KindOf(err)), common.PublicMessage(err))
}

// AbortWithError is FromError for middleware
func AbortWithError(c *gin.Context, err error) {
	FromError(c, err)
	c.Abort()
}

// ServiceUnavailableError envía un error 503
func ServiceUnavailableError(c *gin.Context, message string) {
	ErrorResponseWithMessage(c, http.StatusServiceUnavailable, message)
}
