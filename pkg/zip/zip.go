package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// File is a single archive member.
type File struct {
	Name     string
	Modified time.Time
	Data     []byte
}

// Archive packs files into an in-memory zip archive, deflating each member.
func Archive(files []File) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, file := range files {
		hdr := &zip.FileHeader{Name: file.Name, Method: zip.Deflate}
		if !file.Modified.IsZero() {
			hdr.Modified = file.Modified
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", file.Name, err)
		}
		if _, err := w.Write(file.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", file.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
