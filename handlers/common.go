package handlers

import (
	"strconv"

	"quickbite/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Pagination is the envelope returned by every list endpoint.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

const defaultPageSize = 20

// pageParams reads ?page= and ?limit= with sane bounds.
func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}
	return page, limit, (page - 1) * limit
}

func paginationFor(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return Pagination{Current: page, Pages: pages, Total: total}
}

// RegisterValidations installs custom binding validations on gin's
// validator engine. Called once at startup.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("userrole", func(fl validator.FieldLevel) bool {
			return models.ValidRoles[models.UserRole(fl.Field().String())]
		})
	}
}
