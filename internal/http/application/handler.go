// Package application serves the fixed greeting at /rest/application.
package application

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/rest-application/internal/platform/logging"
)

const (
	// Path is the only route served by this package.
	Path = "/rest/application"

	// Greeting is returned verbatim, without a trailing newline.
	Greeting = "Hello from Spring Boot"

	contentType = "text/plain; charset=utf-8"
)

// greetingBody is shared by every response and never mutated.
var greetingBody = []byte(Greeting)

// Register adds GET /rest/application to api.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-application-greeting",
		Method:      http.MethodGet,
		Path:        Path,
		Summary:     "Get the application greeting",
		Description: "Returns a constant plain-text greeting. Query parameters are ignored.",
		Tags:        []string{"Application"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Greeting",
				Content: map[string]*huma.MediaType{
					"text/plain": {
						Schema: &huma.Schema{Type: huma.TypeString, Examples: []any{Greeting}},
					},
				},
			},
		},
	}, getHandler)
}

func getHandler(ctx context.Context, _ *struct{}) (*GetOutput, error) {
	applog.LogDebug(ctx, "application greeting", zap.String("path", Path))
	return &GetOutput{ContentType: contentType, Body: greetingBody}, nil
}
