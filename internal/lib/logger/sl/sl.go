package sl

import (
	"log/slog"
)

// Err creates a slog.Attr with the given error.
// A nil error produces an empty attribute, which slog handlers drop.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op creates a slog.Attr naming the operation that emits the record.
func Op(opn string) slog.Attr {
	return slog.String("op", opn)
}
