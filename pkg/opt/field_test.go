package opt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchDoc struct {
	Notes   Field[*string] `json:"notes"`
	Company Field[string]  `json:"company"`
}

func TestField_UnmarshalPresence(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		notesSet    bool
		notesNil    bool
		companySet  bool
		companyWant string
	}{
		{name: "omitted", body: `{}`},
		{name: "explicit null", body: `{"notes":null}`, notesSet: true, notesNil: true},
		{name: "value", body: `{"notes":"x","company":"Acme"}`, notesSet: true, companySet: true, companyWant: "Acme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc patchDoc
			require.NoError(t, json.Unmarshal([]byte(tt.body), &doc))
			assert.Equal(t, tt.notesSet, doc.Notes.Set)
			if tt.notesSet {
				assert.Equal(t, tt.notesNil, doc.Notes.Value == nil)
			}
			assert.Equal(t, tt.companySet, doc.Company.Set)
			assert.Equal(t, tt.companyWant, doc.Company.Value)
		})
	}
}

func TestMap(t *testing.T) {
	double := func(n int) int { return n * 2 }

	assert.Equal(t, Some(4), Map(Some(2), double))
	assert.False(t, Map(None[int](), double).Set)
}
