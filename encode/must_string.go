package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/configurator/node"
)

func MustString(c *node.Container, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(c, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
