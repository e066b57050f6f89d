package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/rest-application/internal/http/application"
)

// Register wires all documented HTTP operations into the provided API.
func Register(api huma.API) {
	application.Register(api)
}
