package updates

import "strconv"

// Scope identifies one independent update log: the common log of the session
// or the log of a single channel.
type Scope struct {
	ChannelID int64
}

// GlobalScope is the scope of the common log.
var GlobalScope = Scope{}

// ChannelScope returns the scope of a channel's log.
func ChannelScope(id int64) Scope { return Scope{ChannelID: id} }

func (s Scope) IsGlobal() bool { return s.ChannelID == 0 }

func (s Scope) String() string {
	if s.IsGlobal() {
		return "global"
	}
	return "channel:" + strconv.FormatInt(s.ChannelID, 10)
}

// label is the low-cardinality metric label of the scope.
func (s Scope) label() string {
	if s.IsGlobal() {
		return "global"
	}
	return "channel"
}
