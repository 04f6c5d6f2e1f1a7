// Package reduce turns expanded syntax back into program text.
//
// Unit resolves every identifier and keyword leaf at one phase and renders
// the resolved names. A hygiene error on any leaf is reported and the unit
// produces no text.
package reduce
