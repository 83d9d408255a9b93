package errutil

import (
	"errors"
	"testing"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	if Multi() != nil {
		t.Errorf("got non-nil for no arguments")
	}
	if Multi(nil, nil) != nil {
		t.Errorf("got non-nil for all nil arguments")
	}
	if err := Multi(nil, err1, nil); err != err1 {
		t.Errorf("got %v for one non-nil argument, want %v", err, err1)
	}

	err := Multi(err1, Multi(err2, err3))
	want := "multiple errors: error 1; error 2; error 3"
	if err.Error() != want {
		t.Errorf("got message %q, want %q", err.Error(), want)
	}
}
