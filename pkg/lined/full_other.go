//go:build !unix

package lined

import "errors"

const fullAvailable = false

func newFull(BackendSpec) (Backend, error) {
	return nil, errors.New("the full backend is only available on Unix")
}
