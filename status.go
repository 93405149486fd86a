package oifits

import (
	"errors"
	"fmt"
	"log"
)

// Sentinel errors standing in for the FITS primitive layer's named status
// codes (spec.md §6/§7): END_OF_FILE, KEY_NO_EXIST, COL_NOT_FOUND,
// BAD_BTABLE_FORMAT, BAD_HDU_NUM. Codec operations return these (wrapped
// with operation context) instead of threading an integer status by hand.
var (
	ErrEndOfFile       = errors.New("oifits: end of file")
	ErrKeyNoExist      = errors.New("oifits: required keyword not found")
	ErrColNotFound     = errors.New("oifits: required column not found")
	ErrBadBTableFormat = errors.New("oifits: bad binary-table format")
	ErrBadHDUNum       = errors.New("oifits: no matching extension")
)

// SuppressErrorLog is the spec's compile-time error-reporting flag
// (spec.md §6 "a single compile-time flag suppresses codec error
// reporting to standard error"). Setting it to true silences logCodecError.
var SuppressErrorLog = false

// wrapf wraps err with an operation tag, the way astrogo/fitsio prefixes
// its own errors with "fitsio: ...". A nil err passes through untouched
// so callers can write `return wrapf("op", err)` unconditionally.
func wrapf(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("oifits: %s: %w", op, err)
}

// logCodecError reports a non-EOF codec failure to standard error, unless
// suppressed. EOF is never logged (spec.md §4.2.3).
func logCodecError(op string, err error) {
	if err == nil || errors.Is(err, ErrEndOfFile) || SuppressErrorLog {
		return
	}
	log.Printf("oifits: %s: %v", op, err)
}
