// Package document ties a compiled schema tree to the configuration files
// of one application.
//
// The configuration of an application is read from layers: the system
// layers, merged in order, then the user layer. [Document.Reload] merges
// them and reconciles the tree with the result; edits change the tree in
// place and, once the tree is valid, write the data which was explicitly
// set back to the sink, usually the user layer file.
package document
