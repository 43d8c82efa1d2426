/*
Package operation ties discovery, the line rules and file replacement together.

	+-------------+
	|  Discover   |
	| (Notebooks) |
	+------+------+
	       |
	+------+------+
	|  Operation  |
	|  (Rewrite)  |
	+------+------+
	       |
	+------+------+
	|   Status    |
	|  (Replace)  |
	+-------------+

🎯 Purpose:
- Finds every notebook under the configured root
- Streams each derived markdown file through the rule set
- Replaces changed files atomically and records the outcome

🔄 Flow:
1. Finder returns notebook/target pairs sorted by target
2. Each target is streamed line by line through text.LineReplacer
3. status.ReplaceFile swaps the result in when something changed
4. Outcomes are tracked in status.Manager and echoed to the console

⚡ Failure Handling:
Targets are processed one at a time in sorted order. The first failure stops
the run. Files rewritten before it keep their new content and files after it
are never opened. With skip_missing set, a target that does not exist is
recorded as skipped instead.

🔍 Example:

	op, err := operation.NewRewriteOperation(operation.Options{Config: cfg})
	if err != nil {
		return err
	}
	if err := operation.NewRunner(&logger).Run(ctx, op); err != nil {
		return err
	}
	summary := op.Summary(ctx)
*/
package operation
