package layout

import (
	"sort"

	"github.com/hexbee-net/cstable/pagestore"
)

// Kind identifies the region of a column a page belongs to. Values are
// persisted in table footers.
type Kind int32

const (
	KindData       Kind = 1
	KindRepetition Kind = 2
	KindDefinition Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "DATA"
	case KindRepetition:
		return "RLEVEL"
	case KindDefinition:
		return "DLEVEL"
	default:
		return "UNKNOWN"
	}
}

func (k Kind) Valid() bool {
	return k >= KindData && k <= KindDefinition
}

type indexKey struct {
	columnID uint32
	kind     Kind
}

// Entry is one page of the index.
type Entry struct {
	ColumnID uint32
	Kind     Kind
	Page     pagestore.PageRef
}

// Index maps (column id, kind) to the ordered list of pages holding the region.
type Index struct {
	pages map[indexKey][]pagestore.PageRef
}

func NewIndex() *Index {
	return &Index{
		pages: make(map[indexKey][]pagestore.PageRef),
	}
}

// Add appends page to the region of the column.
func (i *Index) Add(columnID uint32, kind Kind, page pagestore.PageRef) {
	key := indexKey{columnID: columnID, kind: kind}
	i.pages[key] = append(i.pages[key], page)
}

// Pages returns the pages of the region in insertion order.
func (i *Index) Pages(columnID uint32, kind Kind) []pagestore.PageRef {
	return i.pages[indexKey{columnID: columnID, kind: kind}]
}

// Entries lists every page ordered by column id, kind, then insertion order.
func (i *Index) Entries() []Entry {
	keys := make([]indexKey, 0, len(i.pages))
	for k := range i.pages {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(a, b int) bool {
		if keys[a].columnID != keys[b].columnID {
			return keys[a].columnID < keys[b].columnID
		}

		return keys[a].kind < keys[b].kind
	})

	var res []Entry

	for _, k := range keys {
		for _, p := range i.pages[k] {
			res = append(res, Entry{ColumnID: k.columnID, Kind: k.kind, Page: p})
		}
	}

	return res
}

// Span returns the first offset and the total size of the pages of a column.
func (i *Index) Span(columnID uint32) (offset uint64, size uint64) {
	first := true

	for _, kind := range []Kind{KindRepetition, KindDefinition, KindData} {
		for _, p := range i.Pages(columnID, kind) {
			if first || p.Offset < offset {
				offset = p.Offset
				first = false
			}

			size += uint64(p.Size)
		}
	}

	return offset, size
}
