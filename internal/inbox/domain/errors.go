package domain

import "errors"

var (
	// ErrMailboxAuth means the mailbox rejected the login; the stored
	// credentials need fixing before a retry can succeed.
	ErrMailboxAuth = errors.New("mailbox authentication failed")

	// ErrMailboxConnection is a transport failure; the sync can simply be
	// re-triggered.
	ErrMailboxConnection = errors.New("mailbox connection failed")

	// ErrMailboxNotLinked means the user has no linked mailbox account, so
	// no scan was attempted.
	ErrMailboxNotLinked = errors.New("no linked mailbox account")

	// ErrSyncInProgress means another sync for the same user is running.
	ErrSyncInProgress = errors.New("sync already in progress")
)
