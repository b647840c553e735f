package updates

import "errors"

var (
	// ErrSessionRevoked is returned by Run when the server rejected the
	// session. The caller must drop the persisted sync state.
	ErrSessionRevoked = errors.New("session revoked")

	ErrEngineStopped     = errors.New("engine stopped")
	ErrAlreadyRunning    = errors.New("engine already running")
	ErrInvalidChannel    = errors.New("invalid channel id")
	ErrUnknownEnvelope   = errors.New("unknown envelope type")
	ErrUnresolvedEntity  = errors.New("update references unknown entities")
	ErrNilEnvelope       = errors.New("nil envelope")
	ErrInvalidSyncConfig = errors.New("invalid sync configuration")
)
