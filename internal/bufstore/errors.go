package bufstore

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Error codes distinguishing store-level failures so callers can branch
// without string-matching.
const (
	CodeAlreadyExists = iota
	CodeTooManyBuffers
	CodeNotMergeable
	CodeNotEnoughPeers
)

// StoreError carries a code alongside its message so calling code can test
// HasCode instead of parsing text.
type StoreError struct {
	Message string
	Code    int
	frame   xerrors.Frame
}

func (se StoreError) FormatError(p xerrors.Printer) error {
	p.Printf("%d %s", se.Code, se.Message)
	se.frame.Format(p)
	return nil
}

func (se StoreError) Format(f fmt.State, c rune) {
	xerrors.FormatError(se, f, c)
}

func (se StoreError) Error() string {
	return fmt.Sprint(se)
}

// HasCode reports whether err is a StoreError with the given code.
func HasCode(err error, code int) bool {
	var se StoreError
	if xerrors.As(err, &se) {
		return se.Code == code
	}
	return false
}

func errAlreadyExists(fullName string) error {
	return StoreError{Message: fullName + " already exists", Code: CodeAlreadyExists, frame: xerrors.Caller(1)}
}

func errTooManyBuffers(max int) error {
	return StoreError{Message: fmt.Sprintf("buffer limit %d reached", max), Code: CodeTooManyBuffers, frame: xerrors.Caller(1)}
}

func errNotMergeable(reason string) error {
	return StoreError{Message: reason, Code: CodeNotMergeable, frame: xerrors.Caller(1)}
}

func errNotEnoughPeers() error {
	return StoreError{Message: "buffer has no merged peers", Code: CodeNotEnoughPeers, frame: xerrors.Caller(1)}
}
