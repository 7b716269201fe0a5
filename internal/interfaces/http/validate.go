package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

var validate = validator.New()

// parseAndValidate decodifica el body JSON en dst y aplica las etiquetas
// validate del DTO. Si algo falla ya escribió la respuesta de error y devuelve
// ok=false; el handler debe retornar resp tal cual.
func parseAndValidate(c *fiber.Ctx, dst any) (ok bool, resp error) {
	if err := c.BodyParser(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	return true, nil
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("campo %s no cumple la regla %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
