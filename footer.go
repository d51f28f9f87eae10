package cstable

import (
	"github.com/apache/thrift/lib/go/thrift"
)

// FileMetaData is the table footer.
//
//	struct FileMetaData {
//	  1: i32 version
//	  2: i64 num_rows
//	  3: i32 codec
//	  4: list<ColumnMeta> columns
//	  5: list<PageEntry> pages
//	  6: binary schema
//	}
type FileMetaData struct {
	Version int32
	NumRows int64
	Codec   int32
	Columns []*ColumnMeta
	Pages   []*PageEntry
	// Schema is the YAML definition of the table schema.
	Schema []byte
}

func (m *FileMetaData) Read(p thrift.TProtocol) error {
	return readStruct(p, "FileMetaData", func(typ thrift.TType, id int16) (handled bool, err error) {
		switch {
		case id == 1 && typ == thrift.I32:
			m.Version, err = p.ReadI32()
		case id == 2 && typ == thrift.I64:
			m.NumRows, err = p.ReadI64()
		case id == 3 && typ == thrift.I32:
			m.Codec, err = p.ReadI32()
		case id == 4 && typ == thrift.LIST:
			err = readList(p, thrift.STRUCT, func() error {
				c := &ColumnMeta{}
				m.Columns = append(m.Columns, c)

				return c.Read(p)
			})
		case id == 5 && typ == thrift.LIST:
			err = readList(p, thrift.STRUCT, func() error {
				e := &PageEntry{}
				m.Pages = append(m.Pages, e)

				return e.Read(p)
			})
		case id == 6 && typ == thrift.STRING:
			m.Schema, err = p.ReadBinary()
		default:
			return false, nil
		}

		return true, err
	})
}

func (m *FileMetaData) Write(p thrift.TProtocol) error {
	return writeStruct(p, "FileMetaData", func(w *fieldWriter) {
		w.i32("version", 1, m.Version)
		w.i64("num_rows", 2, m.NumRows)
		w.i32("codec", 3, m.Codec)
		w.list("columns", 4, len(m.Columns), func(i int) error {
			return m.Columns[i].Write(p)
		})
		w.list("pages", 5, len(m.Pages), func(i int) error {
			return m.Pages[i].Write(p)
		})
		w.binary("schema", 6, m.Schema)
	})
}

// ColumnMeta describes one leaf column.
//
//	struct ColumnMeta {
//	  1: i32 id
//	  2: string path
//	  3: i32 type
//	  4: i32 encoding
//	  5: i32 rlevel_max
//	  6: i32 dlevel_max
//	  7: i64 num_triples
//	  8: i64 body_offset
//	  9: i64 body_size
//	}
type ColumnMeta struct {
	ID         int32
	Path       string
	Type       int32
	Encoding   int32
	RLevelMax  int32
	DLevelMax  int32
	NumTriples int64
	BodyOffset int64
	BodySize   int64
}

func (c *ColumnMeta) Read(p thrift.TProtocol) error {
	i32 := map[int16]*int32{1: &c.ID, 3: &c.Type, 4: &c.Encoding, 5: &c.RLevelMax, 6: &c.DLevelMax}
	i64 := map[int16]*int64{7: &c.NumTriples, 8: &c.BodyOffset, 9: &c.BodySize}

	return readStruct(p, "ColumnMeta", func(typ thrift.TType, id int16) (handled bool, err error) {
		if v, ok := i32[id]; ok && typ == thrift.I32 {
			*v, err = p.ReadI32()
			return true, err
		}

		if v, ok := i64[id]; ok && typ == thrift.I64 {
			*v, err = p.ReadI64()
			return true, err
		}

		if id == 2 && typ == thrift.STRING {
			c.Path, err = p.ReadString()
			return true, err
		}

		return false, nil
	})
}

func (c *ColumnMeta) Write(p thrift.TProtocol) error {
	return writeStruct(p, "ColumnMeta", func(w *fieldWriter) {
		w.i32("id", 1, c.ID)
		w.str("path", 2, c.Path)
		w.i32("type", 3, c.Type)
		w.i32("encoding", 4, c.Encoding)
		w.i32("rlevel_max", 5, c.RLevelMax)
		w.i32("dlevel_max", 6, c.DLevelMax)
		w.i64("num_triples", 7, c.NumTriples)
		w.i64("body_offset", 8, c.BodyOffset)
		w.i64("body_size", 9, c.BodySize)
	})
}

// PageEntry is one page of the column index.
//
//	struct PageEntry {
//	  1: i32 column_id
//	  2: i32 kind
//	  3: i64 offset
//	  4: i32 size
//	}
type PageEntry struct {
	ColumnID int32
	Kind     int32
	Offset   int64
	Size     int32
}

func (e *PageEntry) Read(p thrift.TProtocol) error {
	return readStruct(p, "PageEntry", func(typ thrift.TType, id int16) (handled bool, err error) {
		switch {
		case id == 1 && typ == thrift.I32:
			e.ColumnID, err = p.ReadI32()
		case id == 2 && typ == thrift.I32:
			e.Kind, err = p.ReadI32()
		case id == 3 && typ == thrift.I64:
			e.Offset, err = p.ReadI64()
		case id == 4 && typ == thrift.I32:
			e.Size, err = p.ReadI32()
		default:
			return false, nil
		}

		return true, err
	})
}

func (e *PageEntry) Write(p thrift.TProtocol) error {
	return writeStruct(p, "PageEntry", func(w *fieldWriter) {
		w.i32("column_id", 1, e.ColumnID)
		w.i32("kind", 2, e.Kind)
		w.i64("offset", 3, e.Offset)
		w.i32("size", 4, e.Size)
	})
}
