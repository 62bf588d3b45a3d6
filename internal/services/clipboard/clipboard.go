// Package clipboard delivers rendered documents to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copier places a rendered document on the system clipboard.
type Copier interface {
	Copy(document string) error
}

// Service implements Copier using github.com/atotto/clipboard, which selects
// the platform mechanism (pbcopy, xclip/xsel, or the Windows clipboard API).
type Service struct{}

var _ Copier = (*Service)(nil)

// NewService constructs the platform clipboard service.
func NewService() *Service {
	return &Service{}
}

// Copy writes the document to the system clipboard. On headless systems with
// no clipboard mechanism available this returns an error rather than failing
// silently; callers decide whether that is fatal.
func (service *Service) Copy(document string) error {
	if writeError := clipboard.WriteAll(document); writeError != nil {
		return fmt.Errorf("write document to clipboard: %w", writeError)
	}
	return nil
}
