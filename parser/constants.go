package parser

// MaxIncludeDepth bounds nested INCLUDE directives to catch runaway
// recursion (a file including itself, directly or through a chain).
const MaxIncludeDepth = 64

// DefaultHexRecordSize is the number of data bytes per Intel HEX record
// when the caller does not override it.
const DefaultHexRecordSize = 16

// DefaultOrigin is the load address assumed when a source file never
// issues an ORG directive, matching the CP/M convention of starting
// user programs at 0x0100 (the first 256 bytes hold the CP/M page zero).
const DefaultOrigin = 0x0100
