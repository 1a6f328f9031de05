package store

// mergeFields merges src into dst recursively and returns dst. When both
// sides of a key hold a JSON object the objects are merged key by key;
// any other pairing is resolved by taking the value from src.
func mergeFields(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		if cur, ok := dst[k].(map[string]any); ok {
			if next, ok := v.(map[string]any); ok {
				dst[k] = mergeFields(cur, next)
				continue
			}
		}
		dst[k] = v
	}
	return dst
}
