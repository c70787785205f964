package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Asset storage errors. Store failures abort the enclosing entity
// write; delete failures are best-effort and only ever logged by the
// asset store itself.
var (
	ErrStorageWrite  = errors.New("asset store write failed")
	ErrStorageDelete = errors.New("asset store delete failed")
	ErrAssetNotFound = errors.New("asset not found")
)

func NewStorageWriteError(namespace string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageWrite,
		Details:    fmt.Sprintf("Failed to store asset under %q", namespace),
		Cause:      cause,
		Field:      "storage",
	}
}

func NewStorageDeleteError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageDelete,
		Details:    fmt.Sprintf("Failed to delete asset %q", path),
		Cause:      cause,
		Field:      "storage",
	}
}

func NewAssetNotFoundError(path string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrAssetNotFound,
		Details:    fmt.Sprintf("Asset %q does not exist", path),
		Field:      "storage",
	}
}

func IsStorageWriteError(err error) bool {
	return errors.Is(err, ErrStorageWrite)
}

func IsStorageDeleteError(err error) bool {
	return errors.Is(err, ErrStorageDelete)
}

func IsAssetNotFoundError(err error) bool {
	return errors.Is(err, ErrAssetNotFound)
}
