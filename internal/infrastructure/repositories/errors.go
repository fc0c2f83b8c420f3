package repositories

import (
	"fmt"

	"github.com/marifyahya/test-backenddev/domain"
)

// upstream marks a driver failure (timeout, connection, server error) as retryable
func upstream(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
}
