package main

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/hexbee-net/cstable/source"
	sourceazblob "github.com/hexbee-net/cstable/source/azblob"
	"github.com/hexbee-net/cstable/source/gcs"
	"github.com/hexbee-net/cstable/source/hdfs"
	sourcehttp "github.com/hexbee-net/cstable/source/http"
	"github.com/hexbee-net/cstable/source/local"
	"github.com/hexbee-net/cstable/source/s3"
	"github.com/hexbee-net/errors"
	"github.com/spf13/viper"
)

const (
	errUnsupportedScheme = errors.Error("unsupported storage scheme")
	errInvalidLocation   = errors.Error("invalid storage location")
	errReadOnlyScheme    = errors.Error("storage scheme is read-only")
)

// location is a parsed table address. Plain paths are local files.
type location struct {
	scheme string
	host   string
	path   string
	raw    string
}

func parseLocation(raw string) (*location, error) {
	if !strings.Contains(raw, "://") {
		if raw == "" {
			return nil, errors.WithStack(errInvalidLocation)
		}

		return &location{scheme: "file", path: raw, raw: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to parse location"),
			errors.Fields{
				"location": raw,
			})
	}

	loc := &location{
		scheme: strings.ToLower(u.Scheme),
		host:   u.Host,
		path:   strings.TrimPrefix(u.Path, "/"),
		raw:    raw,
	}

	switch loc.scheme {
	case "file":
		loc.path = u.Host + u.Path
	case "s3", "gs", "azblob":
		if loc.host == "" || loc.path == "" {
			return nil, errors.WithFields(
				errors.WithStack(errInvalidLocation),
				errors.Fields{
					"location": raw,
				})
		}
	case "hdfs":
		loc.path = u.Path
	case "http", "https":
	default:
		return nil, errors.WithFields(
			errors.WithStack(errUnsupportedScheme),
			errors.Fields{
				"scheme": loc.scheme,
			})
	}

	return loc, nil
}

// blobURL maps azblob://account/container/blob to the blob endpoint.
func (l *location) blobURL() string {
	return "https://" + l.host + ".blob.core.windows.net/" + l.path
}

func reader[T source.Reader](r T, err error) (source.Reader, error) {
	if err != nil {
		return nil, err
	}

	return r, nil
}

func writer[T source.Writer](w T, err error) (source.Writer, error) {
	if err != nil {
		return nil, err
	}

	return w, nil
}

type storage struct {
	conf *viper.Viper
}

func (s *storage) awsSession() (*session.Session, error) {
	cfg := aws.NewConfig()
	if region := s.conf.GetString("aws.region"); region != "" {
		cfg = cfg.WithRegion(region)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create aws session")
	}

	return sess, nil
}

func (s *storage) azureCredential() (azblob.Credential, error) {
	account, key := s.conf.GetString("azure.account"), s.conf.GetString("azure.key")
	if account == "" || key == "" {
		return azblob.NewAnonymousCredential(), nil
	}

	cred, err := azblob.NewSharedKeyCredential(account, key)
	if err != nil {
		return nil, errors.Wrap(err, "invalid azure credentials")
	}

	return cred, nil
}

func (s *storage) hdfsHosts(l *location) []string {
	if l.host != "" {
		return []string{l.host}
	}

	return s.conf.GetStringSlice("hdfs.namenodes")
}

// openReader opens a committed table segment for positioned reads.
func (s *storage) openReader(ctx context.Context, raw string) (source.Reader, error) {
	l, err := parseLocation(raw)
	if err != nil {
		return nil, err
	}

	switch l.scheme {
	case "file":
		return reader(local.NewReader(l.path))

	case "s3":
		sess, err := s.awsSession()
		if err != nil {
			return nil, err
		}

		return reader(s3.NewReader(ctx, l.host, l.path, sess))

	case "gs":
		return reader(gcs.NewReader(ctx, s.conf.GetString("gcs.project"), l.host, l.path))

	case "azblob":
		cred, err := s.azureCredential()
		if err != nil {
			return nil, err
		}

		return reader(sourceazblob.NewReader(ctx, l.blobURL(), cred, sourceazblob.BlobOptions{}))

	case "hdfs":
		return reader(hdfs.NewReader(s.hdfsHosts(l), s.conf.GetString("hdfs.user"), l.path))

	default:
		return reader(sourcehttp.NewReader(ctx, &http.Client{Timeout: s.conf.GetDuration("http.timeout")}, l.raw))
	}
}

// openWriter opens a streaming sink used to publish a sealed segment.
func (s *storage) openWriter(ctx context.Context, raw string) (source.Writer, error) {
	l, err := parseLocation(raw)
	if err != nil {
		return nil, err
	}

	switch l.scheme {
	case "file":
		return writer(local.NewWriter(l.path))

	case "s3":
		sess, err := s.awsSession()
		if err != nil {
			return nil, err
		}

		return writer(s3.NewWriter(ctx, l.host, l.path, nil, sess))

	case "gs":
		return writer(gcs.NewWriter(ctx, s.conf.GetString("gcs.project"), l.host, l.path))

	case "azblob":
		cred, err := s.azureCredential()
		if err != nil {
			return nil, err
		}

		return writer(sourceazblob.NewWriter(ctx, l.blobURL(), cred, sourceazblob.WriterOptions{}))

	case "hdfs":
		return writer(hdfs.NewWriter(s.hdfsHosts(l), s.conf.GetString("hdfs.user"), l.path))

	default:
		return nil, errors.WithFields(
			errors.WithStack(errReadOnlyScheme),
			errors.Fields{
				"scheme": l.scheme,
			})
	}
}
