package semverx

import "errors"

// errNotATriple signals a string is not a strict MAJOR.MINOR.PATCH version,
// returned by Parse and CoerceTriple. Callers at the tool boundary translate
// it into core.ErrVersionNotFound.
var errNotATriple = errors.New("not a semver triple")
