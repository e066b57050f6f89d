package application

// GetOutput is written as raw bytes; huma skips serialization for []byte bodies.
type GetOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
