package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Ref
		wantErr bool
	}{
		{name: "string", input: `"u1"`, want: "u1"},
		{name: "number", input: `12345678901234567890`, want: "12345678901234567890"},
		{name: "object with id", input: `{"id":"abc"}`, want: "abc"},
		{name: "object with _id", input: `{"_id":"abc"}`, want: "abc"},
		{name: "nested oid", input: `{"_id":{"$oid":"64b7f0c2"}}`, want: "64b7f0c2"},
		{name: "null", input: `null`, want: ""},
		{name: "object without id", input: `{"name":"x"}`, wantErr: true},
		{name: "array", input: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Ref
			err := json.Unmarshal([]byte(tt.input), &r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestRef_Equal(t *testing.T) {
	assert.True(t, Ref("abc").Equal(" abc "))
	assert.False(t, Ref("ABC").Equal("abc"))
	assert.False(t, Ref("abc").Equal("abd"))
	assert.False(t, Ref("").Equal(""))
}

func TestItem_DecodesLooseJSON(t *testing.T) {
	raw := `[
		{"id":"1","owner":42,"itemType":"Lost ","name":"Wallet","location":"Main St","date":"2024-03-05"},
		{"id":"2","userId":{"$oid":"u1"},"itemType":"found","name":"Keys","location":{"lat":51.50735,"lng":-0.12776}}
	]`

	var items []Item
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	require.Len(t, items, 2)

	assert.Equal(t, Ref("42"), items[0].OwnerRef())
	text, ok := items[0].Location.Text()
	assert.True(t, ok)
	assert.Equal(t, "Main St", text)

	assert.Equal(t, Ref("u1"), items[1].OwnerRef())
	lat, lng, ok := items[1].Location.Coordinates()
	assert.True(t, ok)
	assert.InDelta(t, 51.50735, lat, 1e-9)
	assert.InDelta(t, -0.12776, lng, 1e-9)
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "Central Park", TextLocation("Central Park").String())
	assert.Equal(t, "Lat: 40.7829, Lng: -73.9654", CoordinatesLocation(40.78291, -73.96541).String())
	assert.Equal(t, "", Location{}.String())
}

func TestLocation_JSONRoundTrip(t *testing.T) {
	for _, loc := range []Location{TextLocation("Station"), CoordinatesLocation(1.5, -2.25)} {
		data, err := json.Marshal(loc)
		require.NoError(t, err)

		var got Location
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, loc, got)
	}
}

func TestLocation_UnmarshalJSON_Invalid(t *testing.T) {
	var l Location
	assert.Error(t, json.Unmarshal([]byte(`{"lat":1}`), &l))
	assert.Error(t, json.Unmarshal([]byte(`true`), &l))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "2024-03-05", want: "3/5/2024"},
		{input: "2024-12-31T23:00:00Z", want: "12/31/2024"},
		{input: "2024-01-02T10:11:12.123456789+02:00", want: "1/2/2024"},
		{input: "", want: "N/A"},
		{input: "   ", want: "N/A"},
		{input: "yesterday", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.input))
		})
	}
}
