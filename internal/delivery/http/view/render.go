package view

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

//go:generate templ generate

type PageMeta struct {
	Title       string
	Description string
	Keywords    string
}

// Render renders c into a string, used for fragments pushed over the socket.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
