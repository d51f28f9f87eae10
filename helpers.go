package cstable

import (
	"github.com/apache/thrift/lib/go/thrift"
	"github.com/hexbee-net/errors"
)

// readStruct reads the fields of a struct, handing each one to fn. Fields fn
// does not handle are skipped.
func readStruct(p thrift.TProtocol, name string, fn func(typ thrift.TType, id int16) (bool, error)) error {
	if _, err := p.ReadStructBegin(); err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}

	for {
		_, typ, id, err := p.ReadFieldBegin()
		if err != nil {
			return errors.Wrapf(err, "failed to read %s field", name)
		}

		if typ == thrift.STOP {
			break
		}

		handled, err := fn(typ, id)
		if err != nil {
			return errors.WithFields(
				errors.Wrapf(err, "failed to read %s field", name),
				errors.Fields{
					"field-id": id,
				})
		}

		if !handled {
			if err := p.Skip(typ); err != nil {
				return errors.Wrapf(err, "failed to skip %s field", name)
			}
		}

		if err := p.ReadFieldEnd(); err != nil {
			return errors.Wrapf(err, "failed to read %s field", name)
		}
	}

	return p.ReadStructEnd()
}

// readList calls fn once per element of a list of elemType.
func readList(p thrift.TProtocol, elemType thrift.TType, fn func() error) error {
	typ, size, err := p.ReadListBegin()
	if err != nil {
		return err
	}

	if typ != elemType && size > 0 {
		return errors.WithFields(
			errors.New("unexpected list element type"),
			errors.Fields{
				"expected": elemType.String(),
				"actual":   typ.String(),
			})
	}

	for i := 0; i < size; i++ {
		if err := fn(); err != nil {
			return err
		}
	}

	return p.ReadListEnd()
}

type fieldWriter struct {
	p   thrift.TProtocol
	err error
}

func (w *fieldWriter) field(name string, typ thrift.TType, id int16, fn func() error) {
	if w.err != nil {
		return
	}

	if w.err = w.p.WriteFieldBegin(name, typ, id); w.err != nil {
		return
	}

	if w.err = fn(); w.err != nil {
		w.err = errors.WithFields(
			w.err,
			errors.Fields{
				"field": name,
			})

		return
	}

	w.err = w.p.WriteFieldEnd()
}

func (w *fieldWriter) i32(name string, id int16, v int32) {
	w.field(name, thrift.I32, id, func() error { return w.p.WriteI32(v) })
}

func (w *fieldWriter) i64(name string, id int16, v int64) {
	w.field(name, thrift.I64, id, func() error { return w.p.WriteI64(v) })
}

func (w *fieldWriter) str(name string, id int16, v string) {
	w.field(name, thrift.STRING, id, func() error { return w.p.WriteString(v) })
}

func (w *fieldWriter) binary(name string, id int16, v []byte) {
	w.field(name, thrift.STRING, id, func() error { return w.p.WriteBinary(v) })
}

func (w *fieldWriter) list(name string, id int16, size int, fn func(i int) error) {
	w.field(name, thrift.LIST, id, func() error {
		if err := w.p.WriteListBegin(thrift.STRUCT, size); err != nil {
			return err
		}

		for i := 0; i < size; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}

		return w.p.WriteListEnd()
	})
}

func writeStruct(p thrift.TProtocol, name string, fn func(w *fieldWriter)) error {
	if err := p.WriteStructBegin(name); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}

	w := &fieldWriter{p: p}
	fn(w)

	if w.err != nil {
		return errors.Wrapf(w.err, "failed to write %s", name)
	}

	if err := p.WriteFieldStop(); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}

	return p.WriteStructEnd()
}
