package todolist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/model"
)

func TestCSVEmptyCollection(t *testing.T) {
	data := New().CSV()
	assert.Equal(t, "Id,Description,Done\n", string(data))

	got, err := ParseCSV(data)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, uint32(0), got.NextID())
}

func TestCSVRows(t *testing.T) {
	c := sample(t)
	assert.Equal(t, "Id,Description,Done\n0,buy milk,false\n1,walk dog,true\n", string(c.CSV()))
}

func TestCSVRoundTrip(t *testing.T) {
	c := New()
	for _, d := range []string{"a", "b", "c", "d"} {
		require.True(t, c.Insert(d))
	}
	_, _ = c.UpdateByID(2)
	_, _ = c.RemoveByID(3)
	_, _ = c.RemoveByID(0)

	got, err := ParseCSV(c.CSV())
	require.NoError(t, err)
	assert.Equal(t, c.Items(), got.Items())
	// next id is rebuilt from the largest surviving id, not carried over
	assert.Equal(t, uint32(3), got.NextID())
	assert.Equal(t, uint32(4), c.NextID())

	it, ok := got.FindByID(2)
	require.True(t, ok)
	assert.True(t, it.Done)
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		items  []model.Item
		nextID uint32
	}{
		{
			name:  "empty input",
			input: "",
		},
		{
			name:  "header only without newline",
			input: "Id,Description,Done",
		},
		{
			name:   "crlf and blank lines",
			input:  "Id,Description,Done\r\n5,Water plants,true\r\n\r\n2,pay rent,false\r\n",
			items:  []model.Item{{ID: 2, Description: "pay rent"}, {ID: 5, Description: "water plants", Done: true}},
			nextID: 6,
		},
		{
			name:   "id with spaces",
			input:  "Id,Description,Done\n 7 ,x,true\n",
			items:  []model.Item{{ID: 7, Description: "x", Done: true}},
			nextID: 8,
		},
		{
			name:   "done must be exactly true",
			input:  "Id,Description,Done\n0,a,True\n1,b,yes\n",
			items:  []model.Item{{ID: 0, Description: "a"}, {ID: 1, Description: "b"}},
			nextID: 2,
		},
		{
			name:   "embedded comma misparses",
			input:  "Id,Description,Done\n0,milk, eggs,true\n",
			items:  []model.Item{{ID: 0, Description: "milk"}},
			nextID: 1,
		},
		{
			name:   "header line is not checked",
			input:  "whatever\n0,a,false\n",
			items:  []model.Item{{ID: 0, Description: "a"}},
			nextID: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV([]byte(tt.input))
			require.NoError(t, err)
			want := tt.items
			if want == nil {
				want = []model.Item{}
			}
			assert.Equal(t, want, got.Items())
			assert.Equal(t, tt.nextID, got.NextID())
		})
	}
}

func TestParseCSVMalformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"too few fields", "Id,Description,Done\n0,a,false\n1,b\n", 3},
		{"one field", "Id,Description,Done\njust text\n", 2},
		{"non numeric id", "Id,Description,Done\nx,a,false\n", 2},
		{"negative id", "Id,Description,Done\n-1,a,false\n", 2},
		{"id too large", "Id,Description,Done\n4294967296,a,false\n", 2},
		{"max id", "Id,Description,Done\n4294967295,a,false\n", 2},
		{"duplicate description", "Id,Description,Done\n0,a,false\n1,A,true\n", 3},
		{"duplicate id", "Id,Description,Done\n0,a,false\n0,b,true\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrMalformedStorage)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "csv", pe.Format)
			assert.Equal(t, tt.wantLine, pe.Line)
		})
	}
}
