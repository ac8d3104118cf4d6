package dialect

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/sijms/go-ora/v2/network"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sqlbridge/sqlbridge"
)

// NativeError is the driver-neutral shape of a backend failure: a numeric
// vendor code, a SQLSTATE, and the raw message. Not every driver reports all
// three; absent fields are zero.
type NativeError struct {
	Code    int
	State   string
	Message string
	Err     error
}

// errorCoder is implemented by driver errors that report a string error code
// (pq.Error, pgconn.PgError).
type errorCoder interface {
	Code() string
}

// sqlStateError is implemented by driver errors that report a SQLSTATE
// (pq.Error, pgconn.PgError, some wrappers).
type sqlStateError interface {
	SQLState() string
}

// ExtractNative pulls the vendor code, SQLSTATE, and message out of a driver
// error chain. It understands lib/pq, pgx, go-ora, and gRPC status errors
// (Spanner); any other error yields only its message text.
func ExtractNative(err error) NativeError {
	n := NativeError{Err: err, Message: err.Error()}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		n.State = string(pqErr.Code)
		n.Message = pqErr.Message
		return n
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		n.State = pgErr.Code
		n.Message = pgErr.Message
		return n
	}
	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		n.Code = oraErr.ErrCode
		n.Message = oraErr.ErrMsg
		return n
	}
	if st, ok := status.FromError(err); ok && st.Code() != codes.OK {
		n.Code = int(st.Code())
		n.Message = st.Message()
		return n
	}
	if e, ok := asError[sqlStateError](err); ok {
		n.State = e.SQLState()
	} else if e, ok := asError[errorCoder](err); ok {
		n.State = e.Code()
	}
	return n
}

// asError extracts an error implementing interface T from the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}

// Classifier maps one native error to a portable error from the root
// taxonomy. A nil return means "not mine"; the next classifier in the chain
// is consulted. Classification never invents failures: an error no classifier
// recognizes passes through unchanged.
type Classifier interface {
	Classify(n NativeError) error
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(n NativeError) error

// Classify calls f.
func (f ClassifierFunc) Classify(n NativeError) error { return f(n) }

// classifierChain consults classifiers in order; the first non-nil result
// wins.
type classifierChain []Classifier

func (c classifierChain) Classify(n NativeError) error {
	for _, cl := range c {
		if err := cl.Classify(n); err != nil {
			return err
		}
	}
	return nil
}

// ConstraintTemplate extracts a constraint name from a vendor message by its
// surrounding delimiters. An empty match yields an empty name, never a
// classification failure.
type ConstraintTemplate struct {
	Prefix string
	Suffix string
}

// Extract returns the constraint name delimited in message, or "".
func (t ConstraintTemplate) Extract(message string) string {
	i := strings.Index(message, t.Prefix)
	if i < 0 {
		return ""
	}
	rest := message[i+len(t.Prefix):]
	if t.Suffix == "" {
		return strings.TrimSpace(rest)
	}
	j := strings.Index(rest, t.Suffix)
	if j < 0 {
		return ""
	}
	return rest[:j]
}

// sqlStateClassifier is the generic SQLSTATE fallback consulted after the
// vendor classifier declines. It covers the class-level codes shared by
// SQLSTATE-reporting backends.
var sqlStateClassifier = ClassifierFunc(func(n NativeError) error {
	switch n.State {
	case "40001", "40P01":
		return &sqlbridge.DeadlockError{Code: n.Code, State: n.State, Err: n.Err}
	case "55P03":
		return &sqlbridge.LockTimeoutError{Code: n.Code, State: n.State, Err: n.Err}
	case "57014":
		return &sqlbridge.QueryTimeoutError{Code: n.Code, State: n.State, Err: n.Err}
	}
	if strings.HasPrefix(n.State, "23") {
		return &sqlbridge.ConstraintViolationError{Code: n.Code, State: n.State, Err: n.Err}
	}
	return nil
})

// Translate classifies a raw driver error through the dialect's chain. It
// returns err unchanged when nothing matches, and nil for nil.
func (d *Dialect) Translate(err error) error {
	if err == nil {
		return nil
	}
	n := ExtractNative(err)
	if out := d.ClassifyNative(n); out != nil {
		return out
	}
	return err
}

// ClassifyNative classifies an already-extracted native error, for callers
// bridging drivers ExtractNative does not know. A nil result means no
// classifier recognized the error.
func (d *Dialect) ClassifyNative(n NativeError) error {
	return d.classifier.Classify(n)
}
