// Package node compiles schemas into mutable trees and reconciles those
// trees with generic configuration values.
//
// A tree is a [Container] whose [Node] payload mirrors the schema: scalars
// hold a bound value, objects hold named children, arrays hold their
// current elements, enums hold the selected variant. Every container
// carries a modified flag telling apart data which was explicitly set
// from schema defaults, so that [Container.ToValue] produces a minimal
// value to write back.
//
// # Lifecycle
//
//	tree, err := node.Compile(root)
//	tree.RemoveValueRec()
//	err = tree.ApplyValue(v, true)
//	out, ok := tree.ToValue()
//
// # Templates
//
// Array items, values of map-like objects and enum variants are
// [Template]s: immutable compiled subtrees shared by the tree and cloned
// whenever an element, entry or variant is instantiated. Recursive
// schemas compile to finite trees because recursion may only pass through
// templates; a reference cycle elsewhere is a [SchemaError].
package node
