package mascota

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft_MinimalFields(t *testing.T) {
	d, err := NewDraft(FormValues{Name: " Rex ", Species: "perro"})
	require.NoError(t, err)

	assert.Equal(t, "Rex", d.Name)
	assert.Equal(t, SpeciesDog, d.Species)
	assert.Equal(t, StatusAvailable, d.Status)
	assert.Nil(t, d.Age)
	assert.Nil(t, d.Size)
	assert.Nil(t, d.Gender)
	assert.Nil(t, d.ContactName)
	assert.Nil(t, d.ImageURL)
	assert.Equal(t, "", d.Description)
}

func TestNewDraft_AllFields(t *testing.T) {
	d, err := NewDraft(FormValues{
		Name:         "Luna",
		Species:      "gato",
		Age:          "3",
		Description:  "Muy cariñosa",
		Size:         "pequeño",
		Gender:       "hembra",
		ContactName:  "Ana",
		ContactPhone: "555-1234",
	})
	require.NoError(t, err)

	require.NotNil(t, d.Age)
	assert.Equal(t, 3, *d.Age)
	assert.Equal(t, SizeSmall, *d.Size)
	assert.Equal(t, GenderFemale, *d.Gender)
	assert.Equal(t, "Ana", *d.ContactName)
	assert.Equal(t, "555-1234", *d.ContactPhone)
}

func TestNewDraft_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		in    FormValues
		field string
	}{
		{"missing name", FormValues{Species: "perro"}, "nombre"},
		{"unknown species", FormValues{Name: "Rex", Species: "dragon"}, "especie"},
		{"negative age", FormValues{Name: "Rex", Species: "perro", Age: "-1"}, "edad"},
		{"age not a number", FormValues{Name: "Rex", Species: "perro", Age: "two"}, "edad"},
		{"age too high", FormValues{Name: "Rex", Species: "perro", Age: "31"}, "edad"},
		{"unknown size", FormValues{Name: "Rex", Species: "perro", Size: "enorme"}, "tamano"},
		{"unknown gender", FormValues{Name: "Rex", Species: "perro", Gender: "x"}, "genero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDraft(tt.in)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDraft_JSONSendsNullForBlankOptionals(t *testing.T) {
	d, err := NewDraft(FormValues{Name: "Rex", Species: "perro"})
	require.NoError(t, err)

	raw, err := json.Marshal(d.WithImageURL("/uploads/a.jpg"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Nil(t, got["edad"])
	assert.Contains(t, got, "edad")
	assert.Contains(t, got, "tamaño")
	assert.Equal(t, "disponible", got["estado"])
	assert.Equal(t, "/uploads/a.jpg", got["imagen_url"])
}

func TestSpecies_Icon(t *testing.T) {
	assert.Equal(t, "🐕", SpeciesDog.Icon())
	assert.Equal(t, "🐱", SpeciesCat.Icon())
	assert.Equal(t, "🐾", SpeciesOther.Icon())
	assert.Equal(t, "🐾", Species("conejo").Icon())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Mascota no encontrada", UserMessage(&SubmitError{StatusCode: 404, Detail: "Mascota no encontrada"}))
	assert.Equal(t, MsgUnknownError, UserMessage(&SubmitError{StatusCode: 500}))
	assert.Equal(t, MsgConnectionError, UserMessage(&SubmitError{Err: errors.New("dial tcp: refused")}))
	assert.Equal(t, "Error al subir imagen: 413 - too big", UserMessage(&UploadError{StatusCode: 413, Body: "too big"}))
	assert.Equal(t, MsgImageTooLarge, UserMessage(NewValidationError("imagen", MsgImageTooLarge)))
	assert.Equal(t, MsgConnectionError, UserMessage(errors.New("boom")))
}
