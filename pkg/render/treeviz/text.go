package treeviz

import (
	"fmt"
	"io"
	"strings"

	"github.com/ioxu/boxer/pkg/container"
)

const indent = "    "

// WriteText prints the tree under root, one node per two lines:
//
//	0 (id: 0) 'root_container' Container
//	  > size: 615x320 position: (50, 50)
//
// Children are indented by depth. Empty slots are skipped.
func WriteText(w io.Writer, root *container.Container) error {
	return writeNode(w, root, 0)
}

func writeNode(w io.Writer, c *container.Container, depth int) error {
	pad := strings.Repeat(indent, depth)
	p := c.Position()
	if _, err := fmt.Fprintf(w, "%s%d (id: %d) '%s' %s\n%s  > size: %gx%g position: (%g, %g)\n",
		pad, depth, c.ID(), c.Name, c.Kind(), pad, c.Width(), c.Height(), p.X, p.Y); err != nil {
		return err
	}
	for _, child := range c.Children() {
		if err := writeNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
