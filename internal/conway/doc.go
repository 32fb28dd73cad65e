// Package conway runs Game of Life style automata on sparse grids of any dimension.
package conway
