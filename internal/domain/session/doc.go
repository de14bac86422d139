// Package session keeps one desktop per profile.
//
// Opening a profile builds a Desktop, restores it from the key-value store
// (or seeds the default tree when nothing was saved) and attaches a
// persistence binder so later changes are written back. Closing flushes
// pending writes and drops the desktop from memory; the saved state stays
// in the store for the next Open.
//
// Example Usage:
//
//	sessions := session.NewManager(store, codec, session.Options{...}, logger)
//	sess, err := sessions.Open(ctx, "alice")
//	sess.Desktop.Launch("calculator", nil)
//	err = sessions.Close(ctx, "alice")
package session
