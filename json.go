package cstable

import (
	"bytes"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/errors"
)

// MarshalRecordJSON renders rec as a JSON object keyed by field names.
// Repeated fields become arrays, DATETIME fields their microsecond count.
func MarshalRecordJSON(s *schema.Schema, rec *record.Record) ([]byte, error) {
	m, err := recordObject(rec, record.Root, s.Fields())
	if err != nil {
		return nil, err
	}

	return json.Marshal(m)
}

func recordObject(rec *record.Record, node record.NodeID, fields []*schema.Field) (map[string]interface{}, error) {
	if err := checkUnknown(rec, node, fields); err != nil {
		return nil, err
	}

	res := make(map[string]interface{}, len(fields))

	for _, f := range fields {
		children := rec.ChildrenWithID(node, f.ID)
		if len(children) == 0 {
			continue
		}

		values := make([]interface{}, 0, len(children))

		for _, c := range children {
			if f.IsObject() {
				obj, err := recordObject(rec, c, f.Fields)
				if err != nil {
					return nil, err
				}

				values = append(values, obj)

				continue
			}

			v := rec.Value(c)

			switch v.Kind() {
			case record.KindString:
				values = append(values, v.Str())
			case record.KindUInt:
				values = append(values, v.UInt())
			case record.KindBool:
				values = append(values, v.Bool())
			case record.KindFloat:
				values = append(values, v.Float())
			default:
				return nil, typeMismatch(f, v.Kind())
			}
		}

		if f.Repeated {
			res[f.Name] = values
		} else {
			res[f.Name] = values[0]
		}
	}

	return res, nil
}

// UnmarshalRecordJSON builds a record from a JSON object keyed by field names.
// Null members are treated as absent. DATETIME fields accept a microsecond
// count or an RFC 3339 string.
func UnmarshalRecordJSON(s *schema.Schema, data []byte) (*record.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]interface{}
	if err := dec.Decode(&obj); err != nil {
		return nil, errors.Wrap(err, "failed to decode json record")
	}

	rec := record.New()
	if err := fillObject(rec, record.Root, s.Fields(), obj); err != nil {
		return nil, err
	}

	return rec, nil
}

func fillObject(rec *record.Record, node record.NodeID, fields []*schema.Field, obj map[string]interface{}) error {
	for name := range obj {
		known := false

		for _, f := range fields {
			if f.Name == name {
				known = true
				break
			}
		}

		if !known {
			return errors.WithFields(
				errors.WithStack(schema.ErrUnknownField),
				errors.Fields{
					"name": name,
				})
		}
	}

	for _, f := range fields {
		raw, ok := obj[f.Name]
		if !ok || raw == nil {
			continue
		}

		items := []interface{}{raw}

		if f.Repeated {
			arr, ok := raw.([]interface{})
			if !ok {
				return typeMismatch(f, record.KindObject)
			}

			items = arr
		}

		for _, item := range items {
			if f.IsObject() {
				m, ok := item.(map[string]interface{})
				if !ok {
					return typeMismatch(f, record.KindObject)
				}

				if err := fillObject(rec, rec.AddObject(node, f.ID), f.Fields, m); err != nil {
					return err
				}

				continue
			}

			v, err := jsonScalar(f, item)
			if err != nil {
				return err
			}

			rec.AddValue(node, f.ID, v)
		}
	}

	return nil
}

func jsonScalar(f *schema.Field, item interface{}) (record.Value, error) {
	invalid := func(err error) (record.Value, error) {
		e := errors.WithFields(
			errors.WithStack(ErrTypeMismatch),
			errors.Fields{
				"id":       f.ID,
				"name":     f.Name,
				"expected": f.Type.String(),
			})

		if err != nil {
			e = errors.WithFields(e, errors.Fields{"cause": err.Error()})
		}

		return record.Value{}, e
	}

	switch f.Type {
	case schema.TypeString:
		if s, ok := item.(string); ok {
			return record.String(s), nil
		}

	case schema.TypeBoolean:
		if b, ok := item.(bool); ok {
			return record.Bool(b), nil
		}

	case schema.TypeFloat:
		if n, ok := item.(json.Number); ok {
			v, err := strconv.ParseFloat(string(n), 64)
			if err != nil {
				return invalid(err)
			}

			return record.Float(v), nil
		}

	case schema.TypeUnsignedInt, schema.TypeDateTime:
		switch n := item.(type) {
		case json.Number:
			v, err := strconv.ParseUint(string(n), 10, 64)
			if err != nil {
				return invalid(err)
			}

			return record.UInt(v), nil

		case string:
			if f.Type != schema.TypeDateTime {
				break
			}

			ts, err := time.Parse(time.RFC3339Nano, n)
			if err != nil {
				return invalid(err)
			}

			if ts.UnixMicro() < 0 {
				return invalid(nil)
			}

			return record.UInt(uint64(ts.UnixMicro())), nil
		}
	}

	return invalid(nil)
}
