package service

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned for lookups and deletes of unknown report ids.
var ErrNotFound = errors.New("report not found")

// storeErr maps gorm's not-found to the service-level ErrNotFound and passes
// everything else through as a store failure.
func storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
