//go:build !windows

package img2term

import (
	"io"

	"github.com/wbrown/img2term/imageutil"
)

// WriteConsole renders through the platform console's color attribute
// table. Only Windows consoles expose one, so everywhere else this is
// a no-op that succeeds without producing output.
func (r *Renderer) WriteConsole(w io.Writer, img *imageutil.RGBAImage) error {
	return nil
}
