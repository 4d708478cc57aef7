package app

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// normalizeDBURL appends the pq flag that keeps prepared statements from
// returning binary results, which the session store's TLS-terminating proxy
// setups choke on. An URL that already carries the parameter, or one that
// does not parse, is passed through untouched.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	values := parsed.Query()
	if values.Has(preparedBinaryParam) {
		return raw
	}
	values.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = values.Encode()

	return parsed.String()
}

// dbNameFromURL extracts the database name for the otelsql attributes.
// Connection strings arrive either as postgres:// URLs or as key=value DSNs.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)

	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/"); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(raw) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(value, `"'`); name != "" {
			return name
		}
	}

	return ""
}
