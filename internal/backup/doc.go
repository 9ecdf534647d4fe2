// Package backup lists, prunes and restores the backup files vibecheck leaves
// next to the client configurations it rewrites.
//
// # Backup Layout
//
// Every write through the store copies the previous file to a sibling:
//
//	~/.cursor/mcp.json
//	~/.cursor/mcp.json.20260123T100712.123456789Z.4242.bak
//	~/.cursor/mcp.json.20260123T100712.123456789Z.4242-1.bak
//
// The name carries the UTC timestamp of the write, the writing process id
// and, when two writes collide, a sequence number. Files next to the target
// that match <base>.*.bak but do not carry that layout are ignored, so backups
// made by hand or by other tools are never pruned.
//
// # Listing Backups
//
//	mgr := backup.NewManager(backup.WithFs(fsys))
//	backups, err := mgr.List("/home/me/.cursor/mcp.json")
//
// Results are sorted newest first. [ErrNoBackupsFound] is returned when no
// backup exists.
//
// # Retention Management
//
// [Manager.Prune] keeps the newest N backups of a target and removes the
// rest. The default retention count is 5.
//
// # Restoring Backups
//
// [Manager.Restore] copies a backup over its target. The backup must hold a
// readable JSON (or JSONC) object, otherwise [ErrBackupCorrupted] is returned
// and the target is left untouched. The current target is itself backed up
// first, so a restore can be undone with another restore.
package backup
