// Package sidebar models documentation navigation trees.
//
// A Tree maps sidebar names to ordered sequences of entries. Each Entry is
// one of a closed set of variants: DocRef (a reference to a content document),
// Category (a labeled group of child entries), Link (an external or internal
// URL) and HTML (raw markup rendered as-is).
//
// Trees are built from the loosely typed form produced by decoding a sidebar
// file (strings, sequences and mappings) with Build or BuildOrdered. Building
// validates the whole input in one pass and either returns a complete,
// immutable Tree or a ValidationError listing every problem with the path of
// the offending entry. Tree.Raw converts back to the loosely typed form, so a
// built tree can be fed to Build again and yields an identical tree.
package sidebar
