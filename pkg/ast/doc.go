// Package ast defines the SQL syntax tree consumed by the binder.
//
// The node set is closed: every node type lives in this package. Each node
// reports its structural children as ordered, named slots through Args, so
// consumers that only need to recurse (formatters, generic binder arms) can
// do so without knowing every shape.
//
// Identifiers are held by pointer. The binder may rewrite an identifier's
// text in place (see binder keyword correction), which is why one tree must
// not be shared between concurrent binder passes.
package ast
