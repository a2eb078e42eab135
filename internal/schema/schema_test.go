package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-export-service/internal/model"
)

func TestLookup(t *testing.T) {
	et, err := Lookup("participants")
	require.NoError(t, err)
	assert.Equal(t, "participants", et.Name)
	assert.Equal(t, "participants", et.Table)

	_, err = Lookup("bogus_type")
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
}

func TestTemplateResolution(t *testing.T) {
	et, err := Lookup("participants")
	require.NoError(t, err)

	tests := []struct {
		name     string
		template string
		wantName string
		wantErr  bool
	}{
		{name: "empty falls back to default", template: "", wantName: "standard"},
		{name: "detailed", template: "detailed", wantName: "detailed"},
		{name: "summary", template: "summary", wantName: "summary"},
		{name: "unknown is rejected", template: "fancy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := et.Template(tt.template)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, model.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, tmpl.Name)
			assert.NotEmpty(t, tmpl.Columns)
			assert.Len(t, tmpl.Headers(), len(tmpl.Columns))
		})
	}
}

func TestFilterColumn(t *testing.T) {
	et, err := Lookup("participants")
	require.NoError(t, err)

	col, ok := et.FilterColumn("program_id")
	assert.True(t, ok)
	assert.Equal(t, "program_id", col)

	_, ok = et.FilterColumn("bogus_field")
	assert.False(t, ok)
}
