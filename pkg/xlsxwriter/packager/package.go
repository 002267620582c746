// Package packager assembles generated XML parts into an OPC ZIP container.
package packager

import (
	"archive/zip"
	"bufio"
	"compress/flate"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.alis.build/alog"
)

// ContentTypesPart is the name of the content type manifest.
const ContentTypesPart = "[Content_Types].xml"

// Part is a named byte stream inside the package.
type Part struct {
	Name string
	Data []byte
}

// WriteError reports a failure while writing a part or the container.
type WriteError struct {
	Part string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("write package: %v", e.Err)
	}
	return fmt.Sprintf("write package part %q: %v", e.Part, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Package is an ordered set of parts. Parts are written in the order they
// were added.
type Package struct {
	parts []Part
	names map[string]struct{}

	// Modified is stamped on every ZIP entry. The zero value uses the
	// earliest DOS time so that output is reproducible.
	Modified time.Time
	// Level is the deflate compression level.
	Level int
}

// New creates an empty package using default compression.
func New() *Package {
	return &Package{
		names: make(map[string]struct{}),
		Level: flate.DefaultCompression,
	}
}

// Add appends a part. Part names must be unique.
func (p *Package) Add(name string, data []byte) error {
	if _, ok := p.names[name]; ok {
		return fmt.Errorf("duplicate part %q", name)
	}
	p.names[name] = struct{}{}
	p.parts = append(p.parts, Part{Name: name, Data: data})
	return nil
}

// Has reports whether a part with the given name exists.
func (p *Package) Has(name string) bool {
	_, ok := p.names[name]
	return ok
}

// Parts returns the parts in write order.
func (p *Package) Parts() []Part {
	out := make([]Part, len(p.parts))
	copy(out, p.parts)
	return out
}

// Size returns the total uncompressed size of all parts.
func (p *Package) Size() int {
	n := 0
	for _, part := range p.parts {
		n += len(part.Data)
	}
	return n
}

// Write streams the package as a ZIP archive to w.
func (p *Package) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	level := p.Level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	modified := p.Modified
	if modified.IsZero() {
		modified = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	for _, part := range p.parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.Name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return &WriteError{Part: part.Name, Err: err}
		}
		if _, err := fw.Write(part.Data); err != nil {
			return &WriteError{Part: part.Name, Err: err}
		}
	}

	if err := zw.Close(); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// WriteFile creates (or truncates) path and writes the package to it.
// A failure part way through leaves whatever bytes were already flushed.
func (p *Package) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Err: err}
	}

	bw := bufio.NewWriter(f)
	if err := p.Write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return &WriteError{Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Err: err}
	}

	alog.Debugf(context.Background(), "wrote %d parts (%d bytes uncompressed) to %s", len(p.parts), p.Size(), path)
	return nil
}
