package record

import (
	"fmt"
	"sort"
	"strings"
)

// NodeID addresses a node inside its Record.
type NodeID int

// Root is the implicit top-level object of every record.
const Root NodeID = 0

// RootFieldID is the field id carried by the root node.
const RootFieldID uint32 = 0

type child struct {
	fieldID uint32
	index   NodeID
}

type node struct {
	fieldID  uint32
	value    Value
	children []child
}

// Record is a nested record tree. Nodes live in a single arena and refer to
// their children by index.
type Record struct {
	nodes []node
}

func New() *Record {
	return &Record{
		nodes: []node{{fieldID: RootFieldID}},
	}
}

// Len returns the number of nodes, root included.
func (r *Record) Len() int {
	return len(r.nodes)
}

func (r *Record) add(parent NodeID, fieldID uint32, v Value) NodeID {
	id := NodeID(len(r.nodes))
	r.nodes = append(r.nodes, node{fieldID: fieldID, value: v})
	r.nodes[parent].children = append(r.nodes[parent].children, child{fieldID: fieldID, index: id})

	return id
}

// AddObject appends an empty object child to parent.
func (r *Record) AddObject(parent NodeID, fieldID uint32) NodeID {
	return r.add(parent, fieldID, Value{})
}

// AddValue appends a scalar child to parent.
func (r *Record) AddValue(parent NodeID, fieldID uint32, v Value) NodeID {
	return r.add(parent, fieldID, v)
}

// EnsureChild returns the index-th child of parent carrying fieldID, creating
// it and any missing sibling before it as empty objects.
func (r *Record) EnsureChild(parent NodeID, fieldID uint32, index int) NodeID {
	seen := 0

	for _, c := range r.nodes[parent].children {
		if c.fieldID != fieldID {
			continue
		}

		if seen == index {
			return c.index
		}
		seen++
	}

	var id NodeID
	for ; seen <= index; seen++ {
		id = r.AddObject(parent, fieldID)
	}

	return id
}

func (r *Record) FieldID(id NodeID) uint32 {
	return r.nodes[id].fieldID
}

// IsObject reports whether the node is an object (possibly empty).
func (r *Record) IsObject(id NodeID) bool {
	return r.nodes[id].value.kind == KindObject
}

func (r *Record) Value(id NodeID) Value {
	return r.nodes[id].value
}

// Children returns the children of id in insertion order.
func (r *Record) Children(id NodeID) []NodeID {
	res := make([]NodeID, len(r.nodes[id].children))
	for i, c := range r.nodes[id].children {
		res[i] = c.index
	}

	return res
}

// ChildrenWithID returns the children of id carrying fieldID, in order.
func (r *Record) ChildrenWithID(id NodeID, fieldID uint32) []NodeID {
	var res []NodeID

	for _, c := range r.nodes[id].children {
		if c.fieldID == fieldID {
			res = append(res, c.index)
		}
	}

	return res
}

// FieldIDs returns the distinct field ids among the children of id, sorted.
func (r *Record) FieldIDs(id NodeID) []uint32 {
	seen := make(map[uint32]struct{})
	res := make([]uint32, 0, len(r.nodes[id].children))

	for _, c := range r.nodes[id].children {
		if _, ok := seen[c.fieldID]; !ok {
			seen[c.fieldID] = struct{}{}
			res = append(res, c.fieldID)
		}
	}

	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })

	return res
}

// Equal compares two records ignoring the relative order of children with
// distinct field ids. Order among occurrences of the same field matters.
func Equal(a, b *Record) bool {
	return equalNodes(a, Root, b, Root)
}

func equalNodes(a *Record, x NodeID, b *Record, y NodeID) bool {
	if a.nodes[x].fieldID != b.nodes[y].fieldID || a.nodes[x].value != b.nodes[y].value {
		return false
	}

	ids := a.FieldIDs(x)
	other := b.FieldIDs(y)

	if len(ids) != len(other) {
		return false
	}

	for i := range ids {
		if ids[i] != other[i] {
			return false
		}

		ac := a.ChildrenWithID(x, ids[i])
		bc := b.ChildrenWithID(y, ids[i])

		if len(ac) != len(bc) {
			return false
		}

		for j := range ac {
			if !equalNodes(a, ac[j], b, bc[j]) {
				return false
			}
		}
	}

	return true
}

// String renders the tree with field ids, children sorted by field id.
func (r *Record) String() string {
	sb := &strings.Builder{}
	r.format(sb, Root)

	return sb.String()
}

func (r *Record) format(sb *strings.Builder, id NodeID) {
	if !r.IsObject(id) {
		sb.WriteString(r.Value(id).String())
		return
	}

	sb.WriteString("{")

	for i, fid := range r.FieldIDs(id) {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(sb, "%d: [", fid)

		for j, c := range r.ChildrenWithID(id, fid) {
			if j > 0 {
				sb.WriteString(", ")
			}
			r.format(sb, c)
		}

		sb.WriteString("]")
	}

	sb.WriteString("}")
}
