// Package repository persists the ticketing state to MySQL. Records
// reference each other by identity (venue name, the (kickoff, home,
// away) match tuple, usernames), never by in-memory object identity, so
// the graph restored at startup re-links the same way the domain model
// compares things.
package repository

import "errors"

// ErrUsernameExists is returned when registering a username that is
// already taken (case-insensitively).
var ErrUsernameExists = errors.New("username already exists")

// ErrNoRow is returned by lookups that found nothing. Handlers translate
// it into a 404 or a domain ErrNotFound as appropriate.
var ErrNoRow = errors.New("no such row")
