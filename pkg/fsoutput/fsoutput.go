package fsoutput

import (
	"os"
	"path/filepath"
)

// FilesystemOutput writes diagnostic artifacts (ex. the last fetched page)
// into a directory, overwriting previous artifacts with the same id.
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Path(id string) string {
	return filepath.Join(o.directory, id)
}

func (o FilesystemOutput) Write(id string, contents string) error {
	return os.WriteFile(o.Path(id), []byte(contents), 0o600)
}
