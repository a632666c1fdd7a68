package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-pos/pkg/validator"
)

type loginDemo struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidateStruct_ReportaViolaciones(t *testing.T) {
	errs := validator.ValidateStruct(loginDemo{Email: "no-es-correo", Password: "123"})
	require.Len(t, errs, 2)
	assert.NotEmpty(t, validator.Describe(errs))
}

func TestValidateStruct_StructValido(t *testing.T) {
	errs := validator.ValidateStruct(loginDemo{Email: "a@ejemplo.com", Password: "secreto"})
	assert.Empty(t, errs)
}

func TestValidateStruct_EntradaQueNoEsStruct(t *testing.T) {
	// No debe entrar en pánico: la librería devuelve InvalidValidationError.
	errs := validator.ValidateStruct(42)
	require.Len(t, errs, 1)
	assert.Equal(t, "struct", errs[0].Tag)
}
