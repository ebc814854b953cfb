package fetch

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/hpungsan/verso/internal/errors"
)

// BundleRetriever reads locations from a local bundle filesystem.
type BundleRetriever struct {
	fsys fs.FS
}

// NewBundleRetriever wraps fsys, typically os.DirFS(bundleDir).
func NewBundleRetriever(fsys fs.FS) *BundleRetriever {
	return &BundleRetriever{fsys: fsys}
}

// Retrieve reads the file at location (a slash path relative to the bundle root).
func (b *BundleRetriever) Retrieve(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewUnavailable("bundle:"+location, err)
	}
	if !fs.ValidPath(location) {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid bundle path %q", location))
	}
	data, err := fs.ReadFile(b.fsys, location)
	if err != nil {
		return nil, errors.NewUnavailable("bundle:"+location, err)
	}
	if len(data) > MaxBodyBytes {
		return nil, errors.NewMalformedResponse("bundle:"+location, "file exceeds size limit")
	}
	return data, nil
}
