package schemafile

import (
	"time"

	"github.com/google/uuid"

	"steward/internal/common"
	"steward/plain"
)

// Factories maps the factory names usable in a schema file to the
// functions called on every resolution of an absent field.
var Factories = map[string]func() any{
	"uuid": func() any { return uuid.NewString() },
	"now":  func() any { return time.Now().UTC().Format(time.RFC3339Nano) },
	"map":  func() any { return plain.Map{} },
	"list": func() any { return plain.NewList() },
}

// FactoryNames returns the registered factory names, sorted.
func FactoryNames() []string {
	return common.SortedKeys(Factories)
}
