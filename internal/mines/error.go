package mines

import "fmt"

// ConfigError is returned when a field cannot be built from the requested
// side and mine count.
type ConfigError struct {
	Side, MineCount int
	message         string
}

// [ConfigError] implements [error]
func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid field config %dx%d(%d): %s",
		e.Side, e.Side, e.MineCount, e.message)
}

// IndexError is the panic value for a cell index outside the field.
// Callers are required to clamp or wrap before reaching the field.
type IndexError struct {
	Index, Len int
}

// [IndexError] implements [error]
func (e IndexError) Error() string {
	return fmt.Sprintf("cell index %d out of range [0, %d)", e.Index, e.Len)
}
