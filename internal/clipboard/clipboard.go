package clipboard

import (
	"errors"
	"fmt"

	"codeberg.org/contentstudio/server/internal/content"
	"github.com/atotto/clipboard"
)

// returned when text could not be placed on the clipboard
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// places text on a clipboard
type Writer interface {
	WriteAll(text string) error
}

// writes to the operating system clipboard
type SystemWriter struct{}

func (SystemWriter) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return clipboard.WriteAll(text)
}

// copies generated content through a Writer
type Copier struct {
	writer Writer
}

// creates a new copier; a nil writer uses the system clipboard
func NewCopier(w Writer) *Copier {
	if w == nil {
		w = SystemWriter{}
	}
	return &Copier{writer: w}
}

// places text on the clipboard
func (c *Copier) Copy(text string) error {
	if err := c.writer.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	return nil
}

// copies the i-th caption (zero-based)
func (c *Copier) CopyCaption(bundle *content.Bundle, i int) error {
	if bundle == nil || i < 0 || i >= len(bundle.Captions) {
		return fmt.Errorf("%w: no caption at index %d", ErrClipboardUnavailable, i)
	}
	return c.Copy(bundle.Captions[i])
}

// copies all hashtags joined by spaces
func (c *Copier) CopyHashtags(bundle *content.Bundle) error {
	if bundle == nil || len(bundle.Hashtags) == 0 {
		return fmt.Errorf("%w: no hashtags to copy", ErrClipboardUnavailable)
	}
	return c.Copy(bundle.HashtagLine())
}
