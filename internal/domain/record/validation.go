package record

import (
	"bytes"
	"fmt"
)

// required dereferences a mandatory wire field, failing when it was absent or
// null.
func required[T any](field string, v *T) (T, error) {
	if v == nil {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return *v, nil
}

// isAbsent reports whether a raw JSON value was missing or the literal null.
func isAbsent(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func validateBase(w wireBase) (Base, error) {
	var (
		b   Base
		err error
	)
	if b.IsSidechain, err = required("isSidechain", w.IsSidechain); err != nil {
		return Base{}, err
	}
	if b.UserType, err = required("userType", w.UserType); err != nil {
		return Base{}, err
	}
	if b.WorkingDir, err = required("cwd", w.Cwd); err != nil {
		return Base{}, err
	}
	if b.SessionID, err = required("sessionId", w.SessionID); err != nil {
		return Base{}, err
	}
	if b.SchemaVersion, err = required("version", w.Version); err != nil {
		return Base{}, err
	}
	if b.ID, err = required("uuid", w.UUID); err != nil {
		return Base{}, err
	}
	if b.Timestamp, err = required("timestamp", w.Timestamp); err != nil {
		return Base{}, err
	}
	if b.Timestamp == "" {
		return Base{}, ErrEmptyTimestamp
	}
	b.ParentID = w.ParentUUID
	return b, nil
}

func validateUsage(w *wireUsage) (Usage, error) {
	if w == nil {
		return Usage{}, fmt.Errorf("%w: usage", ErrMissingField)
	}
	var (
		u   Usage
		err error
	)
	if u.InputTokens, err = required("usage.input_tokens", w.InputTokens); err != nil {
		return Usage{}, err
	}
	if u.CacheCreationTokens, err = required("usage.cache_creation_input_tokens", w.CacheCreationInputTokens); err != nil {
		return Usage{}, err
	}
	if u.CacheReadTokens, err = required("usage.cache_read_input_tokens", w.CacheReadInputTokens); err != nil {
		return Usage{}, err
	}
	if u.OutputTokens, err = required("usage.output_tokens", w.OutputTokens); err != nil {
		return Usage{}, err
	}
	u.ServiceTier = w.ServiceTier
	if w.ServerToolUse != nil {
		n, err := required("usage.server_tool_use.web_search_requests", w.ServerToolUse.WebSearchRequests)
		if err != nil {
			return Usage{}, err
		}
		u.WebSearchRequests = &n
	}
	return u, nil
}

func validateImageSource(field string, w *wireImageSource) (ImageSource, error) {
	if w == nil {
		return ImageSource{}, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	kind, err := required(field+".type", w.Type)
	if err != nil {
		return ImageSource{}, err
	}
	return ImageSource{Kind: kind, Data: w.Data, MediaType: w.MediaType}, nil
}
