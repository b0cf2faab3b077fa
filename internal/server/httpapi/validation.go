package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/models"
)

var eventDateLayouts = []string{"2006", "2006-01", "2006-01-02"}

var projectStatuses = []string{models.ProjectCompleted, models.ProjectInProgress, models.ProjectArchived}

var registerOnce sync.Once

// registerValidators adds the custom rules to gin's validator and makes
// error messages use JSON field names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
		_ = v.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
			return validEventDate(fl.Field().String())
		})
		_ = v.RegisterValidation("projectstatus", func(fl validator.FieldLevel) bool {
			return slices.Contains(projectStatuses, fl.Field().String())
		})
	})
}

// validEventDate accepts "YYYY", "YYYY-MM" and "YYYY-MM-DD" calendar dates.
func validEventDate(s string) bool {
	for _, layout := range eventDateLayouts {
		if len(s) != len(layout) {
			continue
		}
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func bindQuery(c *gin.Context, dst any) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError flattens binding failures into one common.ErrorValidation.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, describeField(fe))
		}
		return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(parts, "; "))
	}
	return fmt.Errorf("%w: malformed request", common.ErrorValidation)
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "max", "len":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	case "eventdate":
		return fe.Field() + " must be YYYY, YYYY-MM or YYYY-MM-DD"
	case "projectstatus":
		return fe.Field() + " must be one of " + strings.Join(projectStatuses, ", ")
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// parseID reads a positive int64 path parameter.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", common.ErrorValidation, name)
	}
	return id, nil
}
