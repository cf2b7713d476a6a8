// Package encode renders compiled node trees as indented text, one line
// per container, optionally in color.
//
// # Usage
//
//	tree, err := node.Compile(root)
//	...
//	err = encode.Encode(tree, os.Stdout, encode.EncodeDefaults(true))
//
// # Related Packages
//
//   - github.com/signadot/configurator/node - the trees rendered here
//   - github.com/signadot/configurator/codec - values as YAML or JSON text
package encode
