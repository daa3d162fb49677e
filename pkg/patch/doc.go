/*
Package patch performs one deterministic read-transform-write cycle over a
single file.

	+-----------+     +-----------+     +-----------+
	|   Read    | --> | Transform | --> |   Write   |
	| (UTF-8)   |     | (rules xN)|     | (atomic)  |
	+-----------+     +-----------+     +-----------+

🎯 Purpose:
- Reads a target file's full content into memory
- Applies an ordered list of literal replacement rules, each rule seeing
  the output of the previous one
- Writes the result back to the same path in full

🔒 Guarantees:
- Content must decode as UTF-8 or the operation fails with a DecodeError
- The write goes to a temp file and is renamed over the target, so a
  failed write never mixes old and new content
- A rule whose pattern does not occur is a no-op, not an error
- An empty rule list still performs the full rewrite

🚨 Failure Modes:
All failures are terminal for the operation and carry one of four kinds:
NotFound, AccessDenied, DecodeError, WriteFailure. There is no retry,
no partial application and no recovery inside this package.

📝 Design Philosophy:
The patcher knows nothing about where the path or the rules came from.
Configuration, CLI flags and reporting live elsewhere; this package is the
single linear pipeline and nothing more.
*/
package patch
