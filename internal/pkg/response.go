package pkg

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Response is the envelope written by handlers built on this package. It has
// the same shape the travel backend emits: {code, message, data}.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ValidationErrorResponse is the envelope for rejected request bodies.
type ValidationErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Success sends HTTP 200 with code 200 and the given data.
func Success(c *gin.Context, data any) {
	SuccessMessage(c, "success", data)
}

// SuccessMessage sends HTTP 200 with code 200, a custom message and data.
func SuccessMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Fail sends HTTP 200 carrying a failure code inside the envelope. The travel
// backend reports most business failures this way.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// Abort sends a non-2xx HTTP status with a matching envelope and stops the
// handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{
		Code:    status,
		Message: message,
	})
}

// BindAndValidate binds the request body to obj and validates it.
// On failure it sends a 400 envelope and returns false.
//
//	if !pkg.BindAndValidate(c, &req) { return }
func BindAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			Abort(c, http.StatusBadRequest, "bad request")
			return false
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "validation error",
			Errors:  fieldErrors(ve, buildJSONTagMap(obj)),
		})
		return false
	}
	return true
}
