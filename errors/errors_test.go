package errors

import (
	"fmt"
	"testing"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind  *Error
		err   error
		match bool
	}{
		"instance of the same root": {
			kind:  ErrNotFound,
			err:   ErrNotFound.New("project"),
			match: true,
		},
		"wrapped several times": {
			kind:  ErrAmount,
			err:   Wrap(Wrap(ErrAmount, "inner"), "outer"),
			match: true,
		},
		"different root": {
			kind:  ErrNotFound,
			err:   ErrAmount.New("too little"),
			match: false,
		},
		"stdlib error": {
			kind:  ErrNotFound,
			err:   fmt.Errorf("not found"),
			match: false,
		},
		"nil kind matches nil error": {
			kind:  nil,
			err:   nil,
			match: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.match {
				t.Fatalf("want %v, got %v", tc.match, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "description"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %v", err)
	}
}

func TestWrapPreservesMessage(t *testing.T) {
	err := Wrap(ErrState, "tracker out of sync")
	const want = "tracker out of sync: invalid state"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(2, "conflicting with ErrUnauthorized")
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("boom")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want ErrPanic, got %+v", err)
	}
}
