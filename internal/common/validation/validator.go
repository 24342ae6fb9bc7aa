package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EchoValidator memasang validator/v10 sebagai echo.Validator.
type EchoValidator struct {
	v *validator.Validate
}

func New() *EchoValidator {
	return &EchoValidator{v: validator.New()}
}

func (ev *EchoValidator) Validate(i interface{}) error {
	if err := ev.v.Struct(i); err != nil {
		return fmt.Errorf("%s", Describe(err))
	}
	return nil
}

// Describe meringkas error validator menjadi satu pesan yang bisa ditampilkan.
func Describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(msgs, "; ")
}
