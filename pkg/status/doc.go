/*
Package status replaces files on disk and tracks what happened to each one.

	            +-------------+
	            |   Status    |
	            |  (Outcome)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	|  Replace  |           | Manager  |
	| (Atomic)  |           | (Track)  |
	+-----------+           +----------+

🎯 Purpose:
- ReplaceFile streams a file through a Transform into a sibling temp file
  and renames it over the original, so readers see either the old or the
  new content and never a partial write
- Manager records a FileInfo per path together with run progress
- FileFormatter renders outcomes for users

📝 Notes:
The temp file lives in the target's directory so the rename never crosses a
filesystem. The original permission bits are copied onto it before the
rename. A transform that reports no change, or a dry run, leaves the
original untouched and removes the temp file.

🔍 Example:

	changed, err := status.ReplaceFile(ctx, path, transform, status.ReplaceOptions{})
	mgr.TrackFile(ctx, status.FileInfo{Path: path, Status: status.StatusModified})
*/
package status
