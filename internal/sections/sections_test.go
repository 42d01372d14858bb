package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-analyzer/internal/types"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.SectionMap
	}{
		{
			name: "empty text",
			text: "",
			want: types.SectionMap{},
		},
		{
			name: "all sections",
			text: "Email: a@b.c\nEDUCATION\nWork Experience\nTechnical Skills",
			want: types.SectionMap{Contact: true, Education: true, Experience: true, Skills: true},
		},
		{
			name: "case insensitive",
			text: "eXpErIeNcE",
			want: types.SectionMap{Experience: true},
		},
		{
			name: "contact by phone",
			text: "Phone: 555-0100",
			want: types.SectionMap{Contact: true},
		},
		{
			name: "contact by address",
			text: "Mailing ADDRESS: 1 Main St",
			want: types.SectionMap{Contact: true},
		},
		{
			name: "substring inside another word counts",
			text: "experienced engineer",
			want: types.SectionMap{Experience: true},
		},
		{
			name: "plural skills only",
			text: "skill",
			want: types.SectionMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}

func TestDetect_Count(t *testing.T) {
	found := Detect("education and skills")
	assert.Equal(t, 2, found.Count())
	assert.Equal(t, map[string]bool{
		"contact":    false,
		"education":  true,
		"experience": false,
		"skills":     true,
	}, found.AsMap())
}
