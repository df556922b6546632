/*
Package operation applies one action to every file of a sibling set.

	+-------------+
	|    Plan     |
	| (what/where)|
	+------+------+
	       |
	+------+------+
	|  Executor   |
	| (per file)  |
	+------+------+
	       |
	+------+------+
	|  Outcomes   |
	| (reported)  |
	+------+------+

🎯 Purpose:
- Rename, copy, move, delete or create a set of sibling files
- Keep each file's own extension when naming targets
- Report every file's outcome individually

🔄 Flow:
1. A Plan names the action, the files and the new base name
2. Directory side effects (move/create target dir) happen once, up front
3. Each file is handled in sequence through filesystem.FileSystem
4. Each result becomes an Outcome, success or failure

⚡ Error Policy:
A failing file never stops the batch. There is no rollback and no retry;
callers that need all-or-nothing must check for collisions before running.
Only problems that would affect every file (an invalid plan, an uncreatable
target directory) are returned as errors before anything is touched.

🔍 Example:

	exec := operation.NewExecutor(filesystem.NewOS())
	outcomes, err := exec.Execute(ctx, operation.Plan{
		Action:    operation.Rename,
		SourceDir: "/ws/src",
		Files:     []string{"Foo.ts", "Foo.css"},
		NewBase:   "Baz",
		Workspace: "/ws",
	})
*/
package operation
