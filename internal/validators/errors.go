package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNegativePosition      = errors.New("negative log position")
	ErrInvalidPtsCount       = errors.New("pts count is negative or exceeds pts")
	ErrInvalidSeqRange       = errors.New("seq start is after seq")
	ErrInvalidDifferenceKind = errors.New("invalid difference kind")
	ErrMissingBaseline       = errors.New("too long difference without pts")
	ErrNilUpdate             = errors.New("nil update")
	ErrInvalidMessageID      = errors.New("invalid message id")
	ErrInvalidPeer           = errors.New("invalid peer")
	ErrMissingChannel        = errors.New("channel update without channel id")
	ErrInvalidQts            = errors.New("invalid qts")
	ErrInvalidEntityID       = errors.New("invalid user or chat id")
)
