// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
	"time"
)

// fmtValue renders a config or result value for humans: strings quoted so
// spaces show, nil as "(none)", lists comma-joined.
func fmtValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "(none)"
	case string:
		return fmt.Sprintf("%q", v)
	case *string:
		if v == nil {
			return "(none)"
		}
		return fmt.Sprintf("%q", *v)
	case []string:
		return strings.Join(v, ", ")
	case time.Duration:
		return formatDuration(v)
	default:
		return fmt.Sprint(v)
	}
}

// formatDuration formats a duration as "500ms" or "1.5s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
