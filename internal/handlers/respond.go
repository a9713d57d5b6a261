package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// parseID rejects non-numeric and non-positive path ids with a 400.
func parseID(c *gin.Context, what string) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + what + " ID"})
		return 0, false
	}
	return uint(id), true
}

// bindInput binds the JSON body and, on validation failure, answers 400
// with per-field messages instead of the raw validator error string.
func bindInput(c *gin.Context, obj any, what string) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		resp := gin.H{"message": "Invalid " + what + " data"}
		if fes := fieldErrors(err); len(fes) > 0 {
			resp["errors"] = fes
		}
		c.JSON(http.StatusBadRequest, resp)
		return false
	}
	return true
}

func fieldErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "ip":
		return "must be a valid IP address"
	case "email":
		return "must be a valid email address"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must not be empty"
	default:
		return "is invalid"
	}
}

// uintQuery parses an optional positive-integer query parameter.
func uintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name})
		return nil, false
	}
	u := uint(v)
	return &u, true
}

// limitQuery parses the optional limit parameter; 0 means "use default".
func limitQuery(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
		return 0, false
	}
	return v, true
}
