package linkage

// Record is a catalogue record reduced to the fields used for linkage.
// Absent source fields are empty strings.
type Record struct {
	ID     string
	Artist string
	Title  string
}

// Block groups the records that share a blocking key, in input order.
type Block struct {
	Key     string
	Records []Record
}

// Blocks is the partition of a record set by blocking key. Blocks are
// kept in the order their keys were first seen.
type Blocks struct {
	blocks []*Block
	index  map[string]int
}

// BlockKey returns the first character of the normalized artist, or the
// empty string when the artist normalizes to nothing.
func BlockKey(r Record) string {
	for _, c := range Normalize(r.Artist) {
		return string(c)
	}
	return ""
}

// BlockRecords partitions records by BlockKey. Only records in the same block
// are ever compared, so duplicates whose artists start with different
// characters are never found.
func BlockRecords(records []Record) *Blocks {
	bs := &Blocks{index: make(map[string]int)}
	for _, r := range records {
		key := BlockKey(r)
		idx, ok := bs.index[key]
		if !ok {
			idx = len(bs.blocks)
			bs.index[key] = idx
			bs.blocks = append(bs.blocks, &Block{Key: key})
		}
		bs.blocks[idx].Records = append(bs.blocks[idx].Records, r)
	}
	return bs
}

// Len returns the number of blocks.
func (bs *Blocks) Len() int {
	return len(bs.blocks)
}

// All returns the blocks in first-seen key order.
func (bs *Blocks) All() []*Block {
	return bs.blocks
}

// Get returns the block for key.
func (bs *Blocks) Get(key string) (*Block, bool) {
	idx, ok := bs.index[key]
	if !ok {
		return nil, false
	}
	return bs.blocks[idx], true
}

// Comparisons returns how many pairs a full scan of the blocks evaluates.
func (bs *Blocks) Comparisons() int {
	n := 0
	for _, b := range bs.blocks {
		size := len(b.Records)
		n += size * (size - 1) / 2
	}
	return n
}
