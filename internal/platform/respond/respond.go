// Package respond renders RFC 9457 problem details for the responses the router produces
// on its own: unmatched paths, unsupported methods and recovered panics.
package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/rest-application/internal/platform/logging"
	appmiddleware "github.com/janisto/rest-application/internal/platform/middleware"
)

const (
	contentTypeProblemJSON = "application/problem+json"
	contentTypeProblemCBOR = "application/problem+cbor"

	msgNotFound          = "resource not found"
	msgInternalServerErr = "internal server error"
)

// probeMethods are checked against the route tree when building the Allow header.
var probeMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// NotFoundHandler renders a 404 problem.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, msgNotFound)
	}
}

// MethodNotAllowedHandler renders a 405 problem with an Allow header listing the methods
// the router can serve for the requested path.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		WriteProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
	}
}

// Recoverer converts panics into 500 problems. http.ErrAbortHandler is re-panicked so the
// server can abort the connection. Nothing is written when the handler already sent headers.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				err, ok := rec.(error)
				switch {
				case ok && errors.Is(err, http.ErrAbortHandler):
					panic(rec)
				case !ok:
					err = fmt.Errorf("%v", rec)
				}
				applog.LogError(r.Context(), "panic recovered", err, zap.ByteString("stack", debug.Stack()))
				if rw.wroteHeader {
					return
				}
				WriteProblem(rw, r, http.StatusInternalServerError, msgInternalServerErr)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// WriteProblem writes a problem document for status, encoded as CBOR when the client
// prefers it and as JSON otherwise. 4xx responses are logged at WARN, 5xx at ERROR.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	problem := &huma.ErrorModel{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}

	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if status >= http.StatusInternalServerError {
		applog.LogError(r.Context(), detail, nil, fields...)
	} else {
		applog.LogWarn(r.Context(), detail, fields...)
	}

	contentType, body, err := encodeProblem(problem, selectFormat(r.Header.Get("Accept")))
	if err != nil {
		applog.LogError(r.Context(), "failed to encode problem", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	h := w.Header()
	appmiddleware.AddVary(h, "Accept")
	h.Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		applog.LogError(r.Context(), "failed to write problem", err)
	}
}

func encodeProblem(problem *huma.ErrorModel, useCBOR bool) (string, []byte, error) {
	if useCBOR {
		body, err := cbor.Marshal(problem)
		if err != nil {
			return "", nil, fmt.Errorf("marshal problem as cbor: %w", err)
		}
		return contentTypeProblemCBOR, body, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(problem); err != nil {
		return "", nil, fmt.Errorf("marshal problem as json: %w", err)
	}
	return contentTypeProblemJSON, buf.Bytes(), nil
}

// allowedMethods asks chi which of probeMethods match the request path.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	routePath := rctx.RoutePath
	if routePath == "" {
		routePath = r.URL.RawPath
	}
	if routePath == "" {
		routePath = r.URL.Path
	}
	if routePath == "" {
		routePath = "/"
	}

	allowed := make([]string, 0, len(probeMethods))
	for _, method := range probeMethods {
		if rctx.Routes.Match(chi.NewRouteContext(), method, routePath) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// responseWriter records whether headers were sent so Recoverer does not write twice.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
