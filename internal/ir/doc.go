// Package ir provides the circuit intermediate representation consumed by
// the OMIR emission stage.
//
// This package contains type definitions and structural helpers only. All
// other internal packages import ir; ir imports nothing internal. This
// ensures IR remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Attr is a sealed union; every attribute value is one of the closed
//     set of shapes, and serializers dispatch exhaustively over it
//   - DictAttr preserves encounter order (annotations and OMIR records are
//     order-sensitive on output)
//   - Ops are owned by their parent; collectors hold non-owning *Op
//     back-references so later don't-touch marking is observed
package ir
