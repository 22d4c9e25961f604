package schemas

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom tags on gin's binding engine and
// makes field errors report JSON names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	custom := map[string]validator.Func{
		"dayofweek":   validateDayOfWeek,
		"mealtype":    validateMealType,
		"unit":        validateUnit,
		"weekstart":   validateWeekStart,
		"uniqueslots": validateUniqueSlots,
		"bcryptlen":   validateBcryptLength,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

func validateDayOfWeek(fl validator.FieldLevel) bool {
	return models.DayOfWeek(fl.Field().String()).Valid()
}

func validateMealType(fl validator.FieldLevel) bool {
	return models.MealType(fl.Field().String()).Valid()
}

func validateUnit(fl validator.FieldLevel) bool {
	return models.ValidUnit(fl.Field().String())
}

// validateWeekStart accepts an ISO date that falls on a Monday.
func validateWeekStart(fl validator.FieldLevel) bool {
	day, err := time.Parse(models.WeekDateLayout, fl.Field().String())
	return err == nil && day.Weekday() == time.Monday
}

// MaxPasswordBytes is the longest input bcrypt will hash.
const MaxPasswordBytes = 72

// validateBcryptLength counts bytes, not runes.
func validateBcryptLength(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxPasswordBytes
}

// validateUniqueSlots rejects two meal plan items sharing a (day, meal) slot.
func validateUniqueSlots(fl validator.FieldLevel) bool {
	items, ok := fl.Field().Interface().([]MealPlanItemInput)
	if !ok {
		return false
	}
	seen := make(map[[2]string]bool, len(items))
	for _, item := range items {
		slot := [2]string{item.DayOfWeek, item.MealType}
		if seen[slot] {
			return false
		}
		seen[slot] = true
	}
	return true
}

// FieldErrors converts binding validation failures into a field -> message
// map. ok is false when err is not a validation failure.
func FieldErrors(err error) (fields map[string]interface{}, ok bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	fields = make(map[string]interface{}, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return fields, true
}

// fieldPath drops the struct name from the namespace: "RecipeCreate.ingredients[0].unit"
// becomes "ingredients[0].unit".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	case "unique":
		return "must not contain duplicates"
	case "dayofweek":
		return "must be a weekday name from Monday to Sunday"
	case "mealtype":
		return "must be one of: breakfast lunch dinner snack"
	case "unit":
		return "must be a known unit (g, kg, mg, ml, l, tsp, tbsp, cup, oz, lb, piece, slice, clove, pinch)"
	case "weekstart":
		return "must be a Monday in YYYY-MM-DD format"
	case "bcryptlen":
		return fmt.Sprintf("must not exceed %d bytes", MaxPasswordBytes)
	case "uniqueslots":
		return "must not schedule two items in the same day and meal slot"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
