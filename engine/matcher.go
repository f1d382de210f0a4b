package engine

// matchDict is the compressor's transient fragment dictionary: a multimap
// from a byte fragment (length in [MinInitialLen, maxDictSearch]) to the
// ordered source offsets where that fragment begins. Entries older than
// the codec's sliding window are evicted as the window advances, mirroring
// the hash-chain eviction used by the pack's LZ4 hash-chain matcher but
// keyed on the exact fragment bytes so the search contract — longest match
// wins, most recent offset wins — holds without approximation.
type matchDict struct {
	buckets map[string][]int

	minLen    int
	maxLen    int
	maxOffset int
}

func newMatchDict(minLen, maxLen, maxOffset int) *matchDict {
	return &matchDict{
		buckets:   make(map[string][]int),
		minLen:    minLen,
		maxLen:    maxLen,
		maxOffset: maxOffset,
	}
}

// fragment returns in[offset:offset+length] only when it fits entirely
// within in; callers must check the returned bool.
func fragment(in []byte, offset, length int) ([]byte, bool) {
	if offset+length > len(in) {
		return nil, false
	}
	return in[offset : offset+length], true
}

// add registers offset into every fragment-length bucket it begins, then
// evicts the position that just slid out of the window.
func (d *matchDict) add(in []byte, offset int) {
	for l := d.minLen; l <= d.maxLen; l++ {
		frag, ok := fragment(in, offset, l)
		if !ok {
			break
		}
		key := string(frag)
		d.buckets[key] = append(d.buckets[key], offset)
	}
	if offset >= d.maxOffset {
		old := offset - d.maxOffset
		for l := d.minLen; l <= d.maxLen; l++ {
			frag, ok := fragment(in, old, l)
			if !ok {
				break
			}
			key := string(frag)
			list := d.buckets[key]
			if len(list) == 0 {
				continue
			}
			// Evict head (oldest); the offset we're deleting is always the
			// smallest/oldest one present for this fragment.
			list = list[1:]
			if len(list) == 0 {
				delete(d.buckets, key)
			} else {
				d.buckets[key] = list
			}
		}
	}
}

// find searches fragment lengths from maxLen down to minLen, returning the
// most recently inserted source offset for the longest length that has any
// entries at all. ok is false if nothing of length >= minLen matched.
func (d *matchDict) find(in []byte, pos int) (offset, length int, ok bool) {
	for l := d.maxLen; l >= d.minLen; l-- {
		frag, within := fragment(in, pos, l)
		if !within {
			continue
		}
		list := d.buckets[string(frag)]
		if len(list) == 0 {
			continue
		}
		return list[len(list)-1], l, true
	}
	return 0, 0, false
}
