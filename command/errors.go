package command

import (
	"github.com/goliatone/go-players/pkg/types"
)

var (
	// ErrIdentityRequired indicates no caller identity was supplied.
	ErrIdentityRequired = types.ErrIdentityRequired
	// ErrRankRequired indicates the submitted rank resolved empty after trimming.
	ErrRankRequired = types.ErrRankRequired
)
