package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiutctl/pkg/config"
	"wiutctl/pkg/timetable"
)

const savedPage = `<html><body><table>
<tr><th></th><th>9:00</th><th>10:00</th></tr>
<tr><td>Monday</td><td>ATB 305<br>Econ101_lec_1<br>Dr. Smith</td><td>ATB 305<br>Econ101_lec_1<br>Dr. Smith</td></tr>
<tr><td>Tuesday</td><td>Databases_w_2<br>Ms. Lee</td><td>IB 204<br>Databases_w_2<br>Ms. Lee<br>extra</td></tr>
</table></body></html>`

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(savedPage), 0644))
	return path
}

func TestParseFile_Strict(t *testing.T) {
	_, err := parseFile(writePage(t), builder(&config.AppConfig{}, false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, timetable.ErrMalformedCell))
}

func TestParseFile_Lenient(t *testing.T) {
	week, err := parseFile(writePage(t), builder(&config.AppConfig{}, true))
	require.NoError(t, err)

	require.Len(t, week.Monday, 1)
	assert.Equal(t, timetable.Hours(2), week.Monday[0].Length)

	// The two-fragment cell gets a TBA room, the four-fragment one is dropped
	require.Len(t, week.Tuesday, 1)
	assert.Equal(t, timetable.UnknownLocation, week.Tuesday[0].Location)
	assert.Equal(t, "Databases", week.Tuesday[0].Name)
}

func TestBuilder_ConfigLenient(t *testing.T) {
	assert.True(t, builder(&config.AppConfig{Lenient: true}, false).Lenient)
	assert.False(t, builder(&config.AppConfig{}, false).Lenient)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := parseFile(filepath.Join(t.TempDir(), "nope.html"), builder(&config.AppConfig{}, false))
	require.Error(t, err)
}
