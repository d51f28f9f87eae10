package s3

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/hexbee-net/errors"
)

const errInvalidOffset = errors.Error("invalid offset")

// object is the S3 object backing a table segment.
type object struct {
	ctx    context.Context
	client s3iface.S3API

	Bucket string
	Key    string
}

// Location returns the s3:// URL of the object.
func (o *object) Location() string {
	u := url.URL{Scheme: "s3", Host: o.Bucket, Path: "/" + o.Key}
	return u.String()
}

func (o *object) fields() errors.Fields {
	return errors.Fields{
		"bucket": o.Bucket,
		"key":    o.Key,
	}
}

// byteRange formats an inclusive HTTP range.
func byteRange(first, last int64) *string {
	return aws.String(fmt.Sprintf("bytes=%d-%d", first, last))
}
