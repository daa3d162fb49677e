/*
Package operation layers executable operations over the core patcher.

	+-------------+
	|  Operation  |
	| (patch/check)|
	+------+------+
	       |
	+------+------+
	|   Patcher   |
	| (read/write)|
	+-------------+

🎯 Purpose:
- Builds a patch job from the loaded configuration
- Runs it through the patcher (for real, or as a dry run)
- Reports per-rule outcomes via the console logger

⚡ Key Responsibilities:
- patch: apply rules and rewrite the target file
- check: apply rules in memory and report pending changes
- OperationRunner: sync or async execution, errgroup for batches

📝 Design Philosophy:
Operations own orchestration and reporting, never file I/O or string
replacement. The patcher does not know it is being run from a CLI, and
the CLI does not know how patching works. Keeping this package thin makes
both sides easy to test.
*/
package operation
