package repository

import "errors"

// ErrNotFound is returned by every implementation when a lookup by id or
// unique key matches no row. GORM-backed repositories translate
// gorm.ErrRecordNotFound into it so callers never depend on the driver.
var ErrNotFound = errors.New("record not found")
