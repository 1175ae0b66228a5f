package crudsvc

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-crud"
)

func queryString(ctx crud.Context, key string) string {
	return strings.TrimSpace(ctx.Query(key))
}

func queryBool(ctx crud.Context, key string) (bool, bool) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return parsed, true
}

func queryInt(ctx crud.Context, key string, def int) int {
	if value := ctx.Query(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return def
}
