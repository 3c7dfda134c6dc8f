package api

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Decoder names accepted by GET /api/cache/:key
const (
	DecoderRaw   = "raw"
	DecoderStr   = "str"
	DecoderInt   = "int"
	DecoderFloat = "float"
)

// validateDecoder validates the decoder query value
func validateDecoder(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case DecoderRaw, DecoderStr, DecoderInt, DecoderFloat:
		return true
	default:
		return false
	}
}

// RegisterValidators installs the custom binding validators on gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("decoder", validateDecoder)
}
