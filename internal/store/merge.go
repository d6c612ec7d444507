package store

// Doc is the raw document shape held by the store. Records are plain
// nested mappings; readers default any missing branch.
type Doc = map[string]any

// Merge merges src into dst and returns dst. When both sides of a key
// hold a mapping, the mappings are merged recursively; any other value
// (scalars, arrays) replaces the destination outright, so callers can
// overwrite an array atomically while still merging nested objects.
// dst is mutated in place.
func Merge(dst, src Doc) Doc {
	for key, value := range src {
		srcMap, srcIsMap := value.(Doc)
		dstMap, dstIsMap := dst[key].(Doc)
		if srcIsMap && dstIsMap {
			dst[key] = Merge(dstMap, srcMap)
			continue
		}
		dst[key] = value
	}
	return dst
}
