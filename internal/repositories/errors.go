package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row or document does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps driver errors onto the package sentinels.
// Requires gorm.Config.TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}
