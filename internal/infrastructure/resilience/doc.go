/*
Package resilience provides a circuit breaker for the storage write path.

A desktop writes its state on every change. When the backing store keeps
failing (a locked or unreachable SQLite file, a full disk) the breaker opens
and writes are skipped for a cooldown instead of piling up timeouts. The
next successful write after the cooldown closes it; since every write is a
full snapshot, nothing needs replaying.

# Usage

	breaker := resilience.New("storage", resilience.Settings{
		Threshold: 5,
		Cooldown:  30 * time.Second,
		Failure: func(err error) bool {
			return err != nil && !errors.Is(err, storage.ErrQuotaExceeded)
		},
	})

	err := breaker.Do(func() error {
		return store.Set(ctx, key, value)
	})
	if errors.Is(err, resilience.ErrOpen) {
		// skipped
	}

# States

	Closed --[Threshold failures]-> Open --[Cooldown]-> Half-Open --[Probes successes]-> Closed
	                                                        |
	                                                    [failure]
	                                                        v
	                                                       Open
*/
package resilience
