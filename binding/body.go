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
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// Body is a decoded request body.
type Body struct {
	// Source is the format the body was decoded from.
	Source Source

	// Fields holds the decoded top-level fields. Form fields with a single
	// value are strings, repeated fields (or "name[]" fields) are []string.
	Fields map[string]any

	// Files holds uploaded files keyed by form field name.
	Files map[string][]*File
}

// File returns the first uploaded file for the given field name.
// Returns [ErrFileNotFound] if no file exists for the field.
func (b *Body) File(name string) (*File, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}
	files := b.Files[name]
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}
	return files[0], nil
}

// Decode decodes the body of r according to its Content-Type.
//
// Requests without a body or with a media type that has no decoder yield an
// empty Body. Bodies larger than the configured limit return [ErrBodyTooLarge].
// After decoding a non-form body, r.Body is replaced so it can be read again.
func Decode(r *http.Request, opts ...Option) (*Body, error) {
	cfg := newConfig(opts)
	out := &Body{
		Fields: make(map[string]any),
		Files:  make(map[string][]*File),
	}
	if r.Body == nil || r.Body == http.NoBody {
		return out, nil
	}

	mediaType := contentType(r)
	switch mediaType {
	case "application/x-www-form-urlencoded":
		return decodeForm(r, cfg, out)
	case "multipart/form-data":
		return decodeMultipart(r, cfg, out)
	}

	var (
		source  = SourceUnknown
		decoder Decoder
	)
	if d, ok := cfg.decoders[mediaType]; ok {
		decoder = d
	} else if b, ok := builtins[mediaType]; ok {
		source, decoder = b.source, b.decoder
	}
	if decoder == nil {
		if cfg.strict && mediaType != "" {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, mediaType)
		}
		return out, nil
	}

	data, err := readBody(r, cfg.maxBodySize)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		out.Source = source
		return out, nil
	}

	fields, err := decoder.Decode(data)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	out.Source = source
	out.Fields = fields
	return out, nil
}

func contentType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}
	return mediaType
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	reader := io.Reader(r.Body)
	if limit > 0 {
		reader = io.LimitReader(r.Body, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("binding: read body: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, limit)
	}
	r.Body = io.NopCloser(bytes.NewReader(data))
	return data, nil
}

func decodeForm(r *http.Request, cfg *config, out *Body) (*Body, error) {
	if cfg.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxBodySize)
	}
	if err := r.ParseForm(); err != nil {
		return nil, formError(SourceForm, err)
	}
	out.Source = SourceForm
	out.Fields = Values(r.PostForm)
	return out, nil
}

func decodeMultipart(r *http.Request, cfg *config, out *Body) (*Body, error) {
	if cfg.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxBodySize)
	}
	if err := r.ParseMultipartForm(cfg.maxMemory); err != nil {
		return nil, formError(SourceMultipart, err)
	}
	out.Source = SourceMultipart
	if r.MultipartForm == nil {
		return out, nil
	}
	out.Fields = Values(r.MultipartForm.Value)
	for name, headers := range r.MultipartForm.File {
		files := make([]*File, 0, len(headers))
		for _, fh := range headers {
			files = append(files, NewFile(fh))
		}
		out.Files[strings.TrimSuffix(name, "[]")] = files
	}
	return out, nil
}

func formError(source Source, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
	}
	return &DecodeError{Source: source, Err: err}
}

// Values flattens url.Values into a field map. Keys written in bracket notation
// ("tags[]") always produce a slice under the bare key. A plain key repeated
// keeps its last value, so "id=1&id=2" yields "2".
func Values(values url.Values) map[string]any {
	fields := make(map[string]any, len(values))
	for key, vals := range values {
		if name, ok := strings.CutSuffix(key, "[]"); ok {
			fields[name] = append([]string(nil), vals...)
			continue
		}
		if len(vals) == 0 {
			fields[key] = ""
			continue
		}
		fields[key] = vals[len(vals)-1]
	}
	return fields
}
