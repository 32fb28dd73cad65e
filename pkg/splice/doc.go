/*
Package splice implements a singly linked list whose nodes live in an arena and are
addressed by index.

A List is a (head, tail) pair of NodeRefs into an Arena. Lists that share an Arena can hand
runs of nodes to one another without copying values: RemoveFirst detaches k nodes after an
anchor in O(k) and Insert splices a whole list after an anchor in O(1). CircularRotate makes
any member the new head by moving the prefix before it behind the old tail, so a list can model
a ring without ever storing a cycle.

# Preconditions

Anchors passed to Insert and RemoveFirst must be members of the receiving list. Refs that are
out of range or that point at released nodes always panic. Full membership checks are O(n) and
only run on arenas created WithChecks(true).

Nothing in this package is safe for concurrent use; callers sharing a list across goroutines
must serialize access themselves.
*/
package splice
