// Package naming validates the names sparkop passes to helm and kubectl.
//
// Namespaces must be DNS-1123 labels. Release names follow the same rule
// with helm's tighter length limit, because helm derives resource names
// from them.
package naming
