// Package syntax turns Java source text into a typed syntax tree that
// carries exactly what metrics collection needs: declaration structure,
// statement structure, spans, and comments bound to the constructs they
// describe.
//
// Parsing itself is delegated to tree-sitter; this package converts the
// concrete tree into typed nodes and runs comment attachment on top of it.
// A comment either becomes the primary or documentation comment of the
// construct it directly precedes, or it is kept as an orphan of the nearest
// enclosing holder (compilation unit, type body, method, field declaration,
// module declaration). Orphans are resolved later, during collection, by
// line adjacency.
package syntax
