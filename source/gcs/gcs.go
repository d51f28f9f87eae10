package gcs

import (
	"context"
	"net/url"

	"cloud.google.com/go/storage"
	"github.com/hexbee-net/errors"
	"google.golang.org/api/option"
)

const (
	errInstantiate   = errors.Error("failed to instantiate GCS client")
	errInvalidOffset = errors.Error("invalid offset")
)

// object is the GCS object backing a table segment. The client is closed with
// the object unless it was handed over by the caller.
type object struct {
	ctx       context.Context
	client    *storage.Client
	ownClient bool
	handle    *storage.ObjectHandle

	Bucket string
	Name   string
}

func newClient(ctx context.Context, projectID string) (*storage.Client, error) {
	var opts []option.ClientOption
	if projectID != "" {
		opts = append(opts, option.WithQuotaProject(projectID))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.WithFields(
			errors.WithStack(errInstantiate),
			errors.Fields{
				"project": projectID,
				"cause":   err.Error(),
			})
	}

	return client, nil
}

func newObject(ctx context.Context, client *storage.Client, ownClient bool, bucket, name string) object {
	return object{
		ctx:       ctx,
		client:    client,
		ownClient: ownClient,
		handle:    client.Bucket(bucket).Object(name),
		Bucket:    bucket,
		Name:      name,
	}
}

// Location returns the gs:// URL of the object.
func (o *object) Location() string {
	u := url.URL{Scheme: "gs", Host: o.Bucket, Path: "/" + o.Name}
	return u.String()
}

func (o *object) Close() error {
	if o.client == nil || !o.ownClient {
		return nil
	}

	err := o.client.Close()
	o.client = nil

	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to close GCS client"),
			errors.Fields{
				"location": o.Location(),
			})
	}

	return nil
}
