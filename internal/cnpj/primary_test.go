package cnpj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOffice_ActivityConventions(t *testing.T) {
	tests := map[string]struct {
		body       string
		convention activityConvention
		mainLabel  string
		sideCount  int
	}{
		"camel case": {
			body:       `{"company":{"name":"A"},"mainActivity":{"id":4711302,"text":"Supermercados"},"sideActivities":[{"id":"4712100","text":"Minimercados"}]}`,
			convention: conventionCamel,
			mainLabel:  "4711302 - Supermercados",
			sideCount:  1,
		},
		"snake case": {
			body:       `{"company":{"name":"A"},"main_activity":{"code":"4711-3/02","text":"Supermercados"},"side_activities":[]}`,
			convention: conventionSnake,
			mainLabel:  "4711-3/02 - Supermercados",
		},
		"only side activities": {
			body:       `{"company":{"name":"A"},"side_activities":[{"id":1,"text":"x"},{"id":2,"text":"y"}]}`,
			convention: conventionSnake,
			sideCount:  2,
		},
		"absent": {
			body:       `{"company":{"name":"A"}}`,
			convention: conventionNone,
		},
	}

	m := &mapper{region: defaultPhoneRegion}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			office, err := decodeOffice([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.convention, office.Acts.Convention)

			record := m.fromOffice("11222333000181", office)
			assert.Equal(t, tt.mainLabel, record.PrimaryActivityLabel)
			assert.Len(t, record.SecondaryActivities, tt.sideCount)
		})
	}
}

func TestDecodeOffice_NestedCoordinates(t *testing.T) {
	body := `{"company":{"name":"A"},"address":{"coordinates":{"latitude":"-22.9","longitude":-43.2}}}`
	office, err := decodeOffice([]byte(body))
	require.NoError(t, err)

	lat, lng := office.Address.coordinates()
	require.NotNil(t, lat)
	require.NotNil(t, lng)
	assert.InDelta(t, -22.9, *lat, 1e-9)
	assert.InDelta(t, -43.2, *lng, 1e-9)
}

func TestDecodeOffice_PartialCoordinatesAreDropped(t *testing.T) {
	office, err := decodeOffice([]byte(`{"company":{"name":"A"},"address":{"latitude":-22.9}}`))
	require.NoError(t, err)

	lat, lng := office.Address.coordinates()
	assert.Nil(t, lat)
	assert.Nil(t, lng)
}

func TestDecodeOffice_BlankCoordinatesAreAbsent(t *testing.T) {
	tests := map[string]string{
		"blank latitude":      `{"company":{"name":"ACME"},"address":{"latitude":"","longitude":null}}`,
		"blank both":          `{"company":{"name":"ACME"},"address":{"latitude":" ","longitude":""}}`,
		"blank nested values": `{"company":{"name":"ACME"},"address":{"coordinates":{"latitude":"","longitude":"-43.2"}}}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			office, err := decodeOffice([]byte(body))
			require.NoError(t, err)

			lat, lng := office.Address.coordinates()
			assert.Nil(t, lat)
			assert.Nil(t, lng)
		})
	}

	// a blank top-level value still lets the nested pair through
	office, err := decodeOffice([]byte(`{"company":{"name":"ACME"},"address":{"latitude":"","coordinates":{"latitude":-22.9,"longitude":-43.2}}}`))
	require.NoError(t, err)
	lat, lng := office.Address.coordinates()
	require.NotNil(t, lat)
	require.NotNil(t, lng)
	assert.InDelta(t, -22.9, *lat, 1e-9)
}

func TestDecodeOffice_MalformedCoordinateFails(t *testing.T) {
	_, err := decodeOffice([]byte(`{"company":{"name":"ACME"},"address":{"latitude":"north"}}`))
	assert.Error(t, err)
}

func TestMapperPhone(t *testing.T) {
	m := &mapper{region: defaultPhoneRegion}

	assert.Nil(t, m.phone(""))
	assert.Nil(t, m.phone("() -"))

	formatted := m.phone("(21) 2233-4455")
	require.NotNil(t, formatted)
	assert.Equal(t, "+552122334455", *formatted)

	raw := m.phone("12")
	require.NotNil(t, raw)
	assert.Equal(t, "12", *raw)
}

func TestLookupErrorIs(t *testing.T) {
	err := newLookupError(KindAuth, "cnpja", 401, "api key invalid or expired", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindAuth, KindOf(err))
	assert.Equal(t, KindUpstream, KindOf(assert.AnError))
	assert.Contains(t, err.Error(), "status 401")
}
