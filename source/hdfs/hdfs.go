package hdfs

import (
	"net/url"
	"strings"

	"github.com/colinmarc/hdfs/v2"
	"github.com/hexbee-net/errors"
)

// file is an HDFS path together with the client used to reach it.
type file struct {
	client    *hdfs.Client
	ownClient bool
	namenodes []string

	Path string
}

func newClient(namenodes []string, user string) (*hdfs.Client, error) {
	client, err := hdfs.NewClient(hdfs.ClientOptions{
		Addresses: namenodes,
		User:      user,
	})
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to create HDFS client"),
			errors.Fields{
				"namenodes": strings.Join(namenodes, ","),
				"user":      user,
			})
	}

	return client, nil
}

// Location returns the hdfs:// URL of the file. The host is the first
// namenode, if known.
func (f *file) Location() string {
	u := url.URL{Scheme: "hdfs", Path: f.Path}
	if len(f.namenodes) > 0 {
		u.Host = f.namenodes[0]
	}

	return u.String()
}

func (f *file) closeClient() error {
	if f.client == nil || !f.ownClient {
		return nil
	}

	err := f.client.Close()
	f.client = nil

	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to close HDFS client"),
			errors.Fields{
				"location": f.Location(),
			})
	}

	return nil
}
