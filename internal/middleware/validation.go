package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/comla/comla/internal/app/models/dto"
)

var validate = validator.New()

// ValidateStruct runs the validator over an already-bound request struct and
// writes the 400 response on failure. Returns false when the request was
// rejected.
func ValidateStruct(c *gin.Context, obj interface{}) bool {
	if err := validate.Struct(obj); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return false
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// BindJSON binds the request body and writes the 400 response on failure.
// Returns false when the request was rejected.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
