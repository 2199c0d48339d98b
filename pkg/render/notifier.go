package render

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Notifier surfaces a blocking, user-facing message. The HTML runtime maps it
// onto a browser alert; terminal front-ends print it.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, title, body string) error

// Notify calls the underlying function.
func (fn NotifierFunc) Notify(ctx context.Context, title, body string) error {
	return fn(ctx, title, body)
}

// WriterNotifier writes notifications to an io.Writer.
type WriterNotifier struct {
	W io.Writer
}

// Notify writes the title on its own line followed by body.
func (n WriterNotifier) Notify(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.W == nil {
		return fmt.Errorf("render: notifier writer is nil")
	}
	var b strings.Builder
	if title = strings.TrimSpace(title); title != "" {
		b.WriteString(title)
		b.WriteString("\n")
	}
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	_, err := io.WriteString(n.W, b.String())
	return err
}
