package mascota

import (
	"encoding/base64"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageBytes is the largest image accepted by the intake form (5 MiB).
const MaxImageBytes int64 = 5 * 1024 * 1024

const (
	MsgImageTooLarge   = "La imagen no debe superar los 5MB"
	MsgImageWrongType  = "Por favor selecciona un archivo de imagen válido"
	MsgImageUnreadable = "No se pudo leer la imagen seleccionada"
)

// ImageFile is a file handed over by a picker or a drop. Size and ContentType
// are what the client declared; either may be zero.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Image is a validated image held in memory until it is uploaded.
type Image struct {
	name        string
	contentType string
	data        []byte
}

// ReadImage validates and reads an image file. When the declared content type
// is empty it is sniffed from the bytes.
func ReadImage(f ImageFile) (*Image, error) {
	if f.Size > MaxImageBytes {
		return nil, NewValidationError("imagen", MsgImageTooLarge)
	}
	declared := strings.TrimSpace(f.ContentType)
	if declared != "" && !isImageType(declared) {
		return nil, NewValidationError("imagen", MsgImageWrongType)
	}
	if f.Content == nil {
		return nil, NewValidationError("imagen", MsgImageUnreadable)
	}

	data, err := io.ReadAll(io.LimitReader(f.Content, MaxImageBytes+1))
	if err != nil {
		return nil, NewValidationError("imagen", MsgImageUnreadable)
	}
	if int64(len(data)) > MaxImageBytes {
		return nil, NewValidationError("imagen", MsgImageTooLarge)
	}

	contentType := declared
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
		if !isImageType(contentType) {
			return nil, NewValidationError("imagen", MsgImageWrongType)
		}
	}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		name = "imagen"
		if m := mimetype.Lookup(contentType); m != nil {
			name += m.Extension()
		}
	}

	return &Image{name: name, contentType: contentType, data: data}, nil
}

func isImageType(ct string) bool {
	return strings.HasPrefix(strings.ToLower(ct), "image/")
}

// Name returns the file name sent with the upload.
func (i *Image) Name() string { return i.name }

// ContentType returns the declared or sniffed MIME type.
func (i *Image) ContentType() string { return i.contentType }

// Size returns the content length in bytes.
func (i *Image) Size() int64 { return int64(len(i.data)) }

// Bytes returns the image content. Callers must not modify it.
func (i *Image) Bytes() []byte { return i.data }

// DataURL renders the image inline for the preview.
func (i *Image) DataURL() string {
	return "data:" + i.contentType + ";base64," + base64.StdEncoding.EncodeToString(i.data)
}
