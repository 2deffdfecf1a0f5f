package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLanguage(language.AmericanEnglish)

	assert.Equal("label l12 missing", From("label %v missing", "l12"))
	assert.Equal("alignment 3 is not a power of two", From("alignment %d is not a power of two", 3))
	assert.NotNil(Printer())
}

func TestSetLanguage(t *testing.T) {
	assert := assert.New(t)

	message.SetString(language.German, "region %v unknown", "Region %v unbekannt")

	SetLanguage(language.AmericanEnglish)
	before := From("region %v unknown", "_q")
	assert.Equal("region _q unknown", before)

	SetLanguage(language.German)
	defer SetLanguage(language.AmericanEnglish)

	assert.Equal("Region _q unbekannt", From("region %v unknown", "_q"))
	// Text rendered earlier is not re-rendered.
	assert.Equal("region _q unknown", before)
}
