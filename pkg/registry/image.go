package registry

import (
	stderrors "errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okik-ml/okik/pkg/config"
	"github.com/okik-ml/okik/pkg/errors"
)

// LoadImageRecord reads the build record written by the container build
// step. The record is optional: a missing file returns (nil, nil) and the
// generator substitutes a placeholder image reference.
func LoadImageRecord(path string) (*config.ImageRecord, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewIoError("read", path, err)
	}
	var rec config.ImageRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, errors.NewCorruptStateError(path, err)
	}
	return &rec, nil
}
