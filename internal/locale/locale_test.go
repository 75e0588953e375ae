package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestTexts_PortugueseDefault(t *testing.T) {
	texts, err := New("", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, language.BrazilianPortuguese, texts.Language())
	assert.Contains(t, texts.OutOfHoursNotice("09:00", "18:00"), "das 09:00 às 18:00")
	assert.NotEmpty(t, texts.DefaultWelcome())

	ts := time.Date(2024, 3, 4, 15, 7, 9, 0, time.UTC)
	assert.Equal(t, "04/03/2024, 15:07:09", texts.DateTime(ts))
}

func TestTexts_English(t *testing.T) {
	texts, err := New("en-US", time.UTC)
	require.NoError(t, err)

	assert.Contains(t, texts.OutOfHoursNotice("08:00", "17:30"), "from 08:00 to 17:30")
	ts := time.Date(2024, 3, 4, 15, 7, 9, 0, time.UTC)
	assert.Equal(t, "3/4/2024, 3:07:09 PM", texts.DateTime(ts))
}

func TestTexts_DateTimeUsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	texts, err := New("pt-BR", loc)
	require.NoError(t, err)

	ts := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "04/03/2024, 09:00:00", texts.DateTime(ts))
}

func TestNew_InvalidLocale(t *testing.T) {
	_, err := New("not a locale!", time.UTC)
	assert.Error(t, err)
}
