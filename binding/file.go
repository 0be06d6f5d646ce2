// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package binding

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// File is an uploaded multipart file.
type File struct {
	// Name is the client-supplied file name, reduced to its base name.
	Name string

	// Size is the file size in bytes.
	Size int64

	// ContentType is the client-supplied media type.
	ContentType string

	header *multipart.FileHeader
}

// NewFile wraps a multipart file header.
func NewFile(fh *multipart.FileHeader) *File {
	return &File{
		Name:        filepath.Base(fh.Filename),
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		header:      fh,
	}
}

// Open opens the uploaded file for reading.
func (f *File) Open() (multipart.File, error) {
	if f.header == nil {
		return nil, fmt.Errorf("%w: %q has no content", ErrFileNotFound, f.Name)
	}
	return f.header.Open()
}

// Bytes reads the whole file into memory.
func (f *File) Bytes() ([]byte, error) {
	src, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

// Save copies the file to dst, creating parent directories as needed.
func (f *File) Save(dst string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err = os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("binding: create directory for %q: %w", dst, err)
	}
	out, err := os.Create(dst) //nolint:gosec // destination chosen by the caller
	if err != nil {
		return fmt.Errorf("binding: create %q: %w", dst, err)
	}
	if _, err = io.Copy(out, src); err != nil {
		_ = out.Close()
		return fmt.Errorf("binding: write %q: %w", dst, err)
	}
	return out.Close()
}
