package storage

import (
	"bytes"
	"encoding/json"
)

// Hydrate rebuilds a UserProgress from a stored snapshot by merging it over
// the defaults field by field: only keys the current schema knows are
// copied, and nested objects are merged one level deep so a snapshot that
// predates a nested field keeps that field's default. A malformed snapshot
// falls back to the defaults entirely; the app must always come up with a
// usable progress record.
func Hydrate(raw []byte) UserProgress {
	def := DefaultProgress()
	if len(bytes.TrimSpace(raw)) == 0 {
		return def
	}

	var snap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &snap); err != nil {
		return def
	}

	base, err := json.Marshal(def)
	if err != nil {
		return def
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return def
	}

	for key, defVal := range merged {
		snapVal, ok := snap[key]
		if !ok {
			continue
		}
		if isJSONObject(defVal) && isJSONObject(snapVal) {
			merged[key] = mergeObject(defVal, snapVal)
		} else {
			merged[key] = snapVal
		}
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return def
	}
	var p UserProgress
	if err := json.Unmarshal(out, &p); err != nil {
		return def
	}
	return p
}

// mergeObject overlays snapshot keys onto default keys, non-recursively.
func mergeObject(defVal, snapVal json.RawMessage) json.RawMessage {
	var defMap, snapMap map[string]json.RawMessage
	if err := json.Unmarshal(defVal, &defMap); err != nil {
		return defVal
	}
	if err := json.Unmarshal(snapVal, &snapMap); err != nil {
		return defVal
	}
	for k, v := range snapMap {
		defMap[k] = v
	}
	out, err := json.Marshal(defMap)
	if err != nil {
		return defVal
	}
	return out
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
