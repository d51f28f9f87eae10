package layout

import (
	"io"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/hexbee-net/errors"
)

// Message is a structure serialized with the thrift compact protocol. Page
// headers and the table footer both implement it.
type Message interface {
	Read(thrift.TProtocol) error
	Write(thrift.TProtocol) error
}

// ReadThrift decodes m from r. The transport reads straight from r, so r is
// positioned right after the message on return as long as it is not buffered.
func ReadThrift(m Message, r io.Reader) error {
	if err := m.Read(thrift.NewTCompactProtocol(&thrift.StreamTransport{Reader: r})); err != nil {
		return errors.Wrap(err, "failed to decode thrift message")
	}

	return nil
}

// WriteThrift encodes m to w.
func WriteThrift(m Message, w io.Writer) error {
	if err := m.Write(thrift.NewTCompactProtocol(&thrift.StreamTransport{Writer: w})); err != nil {
		return errors.Wrap(err, "failed to encode thrift message")
	}

	return nil
}
