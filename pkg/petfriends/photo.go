package petfriends

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/petfriends-qa/petfriends-api-tests/pkg/httpclient"
)

const photoParam = "pet_photo"

// ErrEmptyPhoto is returned when a photo file has no content.
var ErrEmptyPhoto = errors.New("photo file is empty")

// Photo is a file to upload as a pet photo. The content type is sniffed from
// the data, so a text file is sent as text and left for the service to reject.
type Photo struct {
	FileName    string
	ContentType string
	Data        []byte
}

// NewPhoto builds a Photo from in-memory data.
func NewPhoto(fileName string, data []byte) (*Photo, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPhoto
	}
	return &Photo{
		FileName:    fileName,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// LoadPhoto reads a photo from disk.
func LoadPhoto(path string) (*Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read photo %s: %w", path, err)
	}
	p, err := NewPhoto(filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func (p *Photo) file() httpclient.File {
	return httpclient.File{
		Param:       photoParam,
		FileName:    p.FileName,
		ContentType: p.ContentType,
		Reader:      bytes.NewReader(p.Data),
	}
}
