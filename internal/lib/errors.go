package lib

import "fmt"

// WrapError keeps both errors in the chain so errors.Is matches either of them
func WrapError(parent error, child error) error {
	return fmt.Errorf("%w: %w", parent, child)
}
