package azblob

import (
	"context"
	"net/url"
	"time"

	"github.com/Azure/azure-pipeline-go/pipeline"
	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/hexbee-net/errors"
)

const (
	errInvalidOffset = errors.Error("invalid offset")
	errURLNotOpened  = errors.Error("url not opened")

	defaultTryTimeout = time.Minute
)

// BlobOptions configures the pipeline used to reach the blob.
type BlobOptions struct {
	// HTTPSender replaces the default HTTP client.
	HTTPSender pipeline.Factory
	// RetryOptions configures the retry policy. A zero TryTimeout is set to a
	// minute, ranged page downloads being small.
	RetryOptions azblob.RetryOptions
	Log          pipeline.LogOptions
}

// blob is the block blob backing a table segment.
type blob struct {
	ctx context.Context
	url *azblob.BlockBlobURL

	URL *url.URL
}

func openBlob(ctx context.Context, rawURL string, credential azblob.Credential, options BlobOptions) (blob, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return blob{}, errors.WithFields(
			errors.Wrap(err, "failed to parse blob URL"),
			errors.Fields{
				"url": rawURL,
			})
	}

	retry := options.RetryOptions
	if retry.TryTimeout == 0 {
		retry.TryTimeout = defaultTryTimeout
	}

	p := azblob.NewPipeline(credential, azblob.PipelineOptions{
		HTTPSender: options.HTTPSender,
		Retry:      retry,
		Log:        options.Log,
	})

	blobURL := azblob.NewBlockBlobURL(*u, p)

	return blob{ctx: ctx, url: &blobURL, URL: u}, nil
}

// Location returns the blob endpoint URL.
func (b *blob) Location() string {
	if b.URL == nil {
		return ""
	}

	return b.URL.String()
}
