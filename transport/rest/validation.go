package rest

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var registerOnce sync.Once

// registerValidators - adds the game tags to gin's validator:
// difficulty (a name ParseDifficulty accepts), side (X or O) and cell (X, O or empty).
func registerValidators() {
	registerOnce.Do(func() {
		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_ = validate.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
			_, err := engine.ParseDifficulty(fl.Field().String())
			return err == nil
		})

		_ = validate.RegisterValidation("side", func(fl validator.FieldLevel) bool {
			return entity.Mark(fl.Field().String()).IsPlayer()
		})

		_ = validate.RegisterValidation("cell", func(fl validator.FieldLevel) bool {
			mark := entity.Mark(fl.Field().String())
			return mark == entity.EmptyCell || mark.IsPlayer()
		}, true)
	})
}
