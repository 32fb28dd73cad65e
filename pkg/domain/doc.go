/*
Package domain contains the persisted models shared by the lattice simulations and their
stores.

It is kept free of I/O: adapters in pkg/adapters move these values to and from storage, and
the simulations in internal/ convert their live state to and from a Snapshot.

# Key Entities

  - Snapshot: a checkpoint of one simulation run (active cells or cup ring) at a generation.
  - Kind: which simulation produced a Snapshot.
*/
package domain
