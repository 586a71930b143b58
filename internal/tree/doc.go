// Package tree holds parsed constituency trees and the span queries over them.
//
// A tree is a set of Nodes over one shared Sentence. Internal nodes carry a
// non-terminal label and ordered children; leaves point at exactly one token
// by position and take their label from the token's tag. Positions and spans
// are 0-based and inclusive.
//
// Trees are built bottom-up with NewLeaf/NewInternal and finished with Attach,
// which hands the sentence to every node and precomputes spans. After Attach a
// tree is read-only and safe for concurrent use.
package tree
