package handlers

import (
	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations installs the expensetype binding tag on gin's
// validator engine. The tag accepts canonical expense type tokens and their
// Italian synonyms.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("expensetype", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseExpenseType(fl.Field().String())
		return ok
	})
}
