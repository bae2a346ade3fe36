package apiauth

import (
	persistence "github.com/goliatone/go-persistence-bun"
)

// RegisterModels registers this package's Bun models with the
// persistence client so migrations and fixtures can resolve them.
func RegisterModels() {
	persistence.RegisterModel((*User)(nil))
	persistence.RegisterModel((*UserSession)(nil))
}
