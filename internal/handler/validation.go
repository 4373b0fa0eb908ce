package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/booklyhq/booking-api/internal/model"
)

// RegisterValidators installs the custom binding validators on gin's
// validator engine. "timeofday" accepts HH:MM and HH:MM:SS strings.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := model.ParseMinuteOfDay(fl.Field().String())
		return err == nil
	})
}
