package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation",
			err:  NewValidationError("count", "must be >= 1"),
			want: "validation",
		},
		{
			name: "unsupported backend",
			err:  NewUnsupportedBackendError("ray"),
			want: "unsupported_backend",
		},
		{
			name: "corrupt state",
			err:  NewCorruptStateError("/tmp/services.yaml", stderrors.New("bad yaml")),
			want: "corrupt_state",
		},
		{
			name: "io",
			err:  NewIoError("write", "/tmp/services.yaml", fs.ErrPermission),
			want: "io",
		},
		{
			name: "wrapped",
			err:  fmt.Errorf("register classifier: %w", NewValidationError("memory", "missing")),
			want: "validation",
		},
		{
			name: "unknown",
			err:  stderrors.New("something else"),
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fs.ErrPermission

	if !stderrors.Is(NewIoError("mkdir", "/srv", cause), fs.ErrPermission) {
		t.Error("IoError must unwrap to its cause")
	}
	if !stderrors.Is(NewCorruptStateError("/srv/services.yaml", cause), fs.ErrPermission) {
		t.Error("CorruptStateError must unwrap to its cause")
	}
}
