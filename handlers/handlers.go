package handlers

import (
	"errors"

	"recipebook-backend/store"

	"gorm.io/gorm"
)

func isNotFoundErr(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, store.ErrRecipeNotInArchive)
}
