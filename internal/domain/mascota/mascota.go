package mascota

import (
	"strconv"
	"strings"
)

// Species represents the kind of animal the shelter accepts.
type Species string

const (
	SpeciesDog   Species = "perro"
	SpeciesCat   Species = "gato"
	SpeciesOther Species = "otro"
)

// IsValid returns true if the species is recognized.
func (s Species) IsValid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	}
	return false
}

// Icon returns the glyph shown next to a pet of this species.
func (s Species) Icon() string {
	switch s {
	case SpeciesDog:
		return "🐕"
	case SpeciesCat:
		return "🐱"
	default:
		return "🐾"
	}
}

// Size represents the pet size bucket.
type Size string

const (
	SizeSmall  Size = "pequeño"
	SizeMedium Size = "mediano"
	SizeLarge  Size = "grande"
)

// IsValid returns true if the size is recognized.
func (s Size) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Gender represents the pet gender.
type Gender string

const (
	GenderMale   Gender = "macho"
	GenderFemale Gender = "hembra"
)

// IsValid returns true if the gender is recognized.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Status represents the adoption state of a record.
type Status string

const (
	StatusAvailable Status = "disponible"
	StatusAdopted   Status = "adoptado"
)

// Field limits enforced by the shelter API.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxContactNameLength = 100
	MaxPhoneLength       = 20
	MaxAge               = 30
)

// Draft is the in-memory pet listing built from form values right before it
// is sent to the shelter API. Optional fields marshal as null when unset.
type Draft struct {
	Name         string  `json:"nombre"`
	Species      Species `json:"especie"`
	Age          *int    `json:"edad"`
	Description  string  `json:"descripcion"`
	Size         *Size   `json:"tamaño"`
	Gender       *Gender `json:"genero"`
	ContactName  *string `json:"contacto_nombre"`
	ContactPhone *string `json:"contacto_telefono"`
	Status       Status  `json:"estado"`
	ImageURL     *string `json:"imagen_url"`
}

// WithImageURL returns a copy of the draft referencing an uploaded image.
func (d Draft) WithImageURL(url string) Draft {
	d.ImageURL = &url
	return d
}

// FormValues holds the raw text of the registration form fields.
type FormValues struct {
	Name         string `json:"nombre"`
	Species      string `json:"especie"`
	Age          string `json:"edad"`
	Description  string `json:"descripcion"`
	Size         string `json:"tamano"`
	Gender       string `json:"genero"`
	ContactName  string `json:"contacto_nombre"`
	ContactPhone string `json:"contacto_telefono"`
}

// NewDraft validates form values and builds an available Draft from them.
// The image reference is never set here.
func NewDraft(v FormValues) (Draft, error) {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		return Draft{}, NewValidationError("nombre", "El nombre es obligatorio")
	}
	if len([]rune(name)) > MaxNameLength {
		return Draft{}, NewValidationError("nombre", "El nombre no debe superar los 100 caracteres")
	}

	species := Species(strings.TrimSpace(v.Species))
	if !species.IsValid() {
		return Draft{}, NewValidationError("especie", "Selecciona una especie válida")
	}

	d := Draft{
		Name:        name,
		Species:     species,
		Description: strings.TrimSpace(v.Description),
		Status:      StatusAvailable,
	}
	if len([]rune(d.Description)) > MaxDescriptionLength {
		return Draft{}, NewValidationError("descripcion", "La descripción no debe superar los 500 caracteres")
	}

	if raw := strings.TrimSpace(v.Age); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil || age < 0 || age > MaxAge {
			return Draft{}, NewValidationError("edad", "La edad debe ser un número entre 0 y 30")
		}
		d.Age = &age
	}

	if raw := strings.TrimSpace(v.Size); raw != "" {
		size := Size(raw)
		if !size.IsValid() {
			return Draft{}, NewValidationError("tamano", "Selecciona un tamaño válido")
		}
		d.Size = &size
	}

	if raw := strings.TrimSpace(v.Gender); raw != "" {
		gender := Gender(raw)
		if !gender.IsValid() {
			return Draft{}, NewValidationError("genero", "Selecciona un género válido")
		}
		d.Gender = &gender
	}

	d.ContactName = optional(v.ContactName)
	if d.ContactName != nil && len([]rune(*d.ContactName)) > MaxContactNameLength {
		return Draft{}, NewValidationError("contacto_nombre", "El nombre de contacto no debe superar los 100 caracteres")
	}
	d.ContactPhone = optional(v.ContactPhone)
	if d.ContactPhone != nil && len([]rune(*d.ContactPhone)) > MaxPhoneLength {
		return Draft{}, NewValidationError("contacto_telefono", "El teléfono no debe superar los 20 caracteres")
	}

	return d, nil
}

// Mascota is a pet record as returned by the shelter API listing. CreatedAt
// is kept verbatim since the API emits naive timestamps.
type Mascota struct {
	ID           int64   `json:"id"`
	Name         string  `json:"nombre"`
	Species      Species `json:"especie"`
	Age          *int    `json:"edad"`
	Description  string  `json:"descripcion"`
	Size         *Size   `json:"tamaño"`
	Gender       *Gender `json:"genero"`
	ContactName  *string `json:"contacto_nombre"`
	ContactPhone *string `json:"contacto_telefono"`
	Status       Status  `json:"estado"`
	ImageURL     *string `json:"imagen_url"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

// SaveResult is the acknowledgement returned by create and update calls.
type SaveResult struct {
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
