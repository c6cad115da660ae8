package scraper

import "github.com/pkg/errors"

// Page-structure breaks that abort processing of the page they occur on.
var (
	ErrNoHost       = errors.New("episode has no host")
	ErrBadActorLink = errors.New("unrecognized actor link prefix")
	ErrBadRoleLink  = errors.New("unrecognized role link prefix")
)

// An episode whose ordinal cannot be parsed is a special or off-season show;
// it is skipped rather than emitted.
var errEpnoUnparseable = errors.New("could not parse episode ordinal")
