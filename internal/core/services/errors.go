package services

import (
	"errors"
	"fmt"

	"github.com/SscSPs/contas_app/internal/apperrors"
)

// notFoundAs replaces a repository level not-found with a named domain error,
// leaving every other error untouched.
func notFoundAs(err error, named *apperrors.Error, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		if _, isDomain := apperrors.KindOf(err); !isDomain {
			return fmt.Errorf("%w: %s", named, id)
		}
	}
	return err
}
