package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeLabel(t *testing.T) {
	tests := []struct {
		label  string
		name   string
		format Format
	}{
		{"Econ101_lec_extra", "Econ101", Lecture},
		{"Econ101_w_2", "Econ101", Workshop},
		{"Econ101_sem_2", "Econ101", Seminar},
		{"Online_Econ101_lec_1", "Econ101", OnlineLecture},
		{"online / Econ101_w_1", "Econ101", OnlineWorkshop},
		{"ONLINE_Econ101_3", "Econ101", OnlineSeminar},
		{" Organisational Beha_lec_1", "Organisational Behaviour", Lecture},
		{"Organisational Behaviour_lec_1", "Organisational Behaviour", Lecture},
		{"\n  Online_Maths_lec_1", "Maths", OnlineLecture},
		{"  online / Maths_w_1 ", "Maths", OnlineWorkshop},
		{"Consultation", "Consultation", Seminar},
		{"", "", Seminar},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			name, format := DecodeLabel(tt.label)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestDecodeLabel_LectureWinsOverWorkshop(t *testing.T) {
	// "lec_" is checked before "w_"
	_, format := DecodeLabel("Law_w_lec_1")
	assert.Equal(t, Lecture, format)
}

func TestDecodeLabel_OnlinePrefixesEveryFormat(t *testing.T) {
	for _, rest := range []string{"lec_1", "w_1", "sem_1"} {
		_, plain := DecodeLabel("Maths_" + rest)
		_, online := DecodeLabel("Online_Maths_" + rest)
		assert.Equal(t, "online "+plain, online)
		assert.True(t, online.Online())
		assert.False(t, plain.Online())
	}
}

func TestDecodeLabel_Pure(t *testing.T) {
	label := "online / Fundamentals of Beha_lec_2"
	name1, format1 := DecodeLabel(label)
	name2, format2 := DecodeLabel(label)
	assert.Equal(t, name1, name2)
	assert.Equal(t, format1, format2)
	assert.Equal(t, "Fundamentals of Behaviour", name1)
}
