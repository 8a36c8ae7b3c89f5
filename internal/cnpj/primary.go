package cnpj

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/octobees/sales-routes/api/internal/entity"
)

// officePayload is the subset of the CNPJá office document the record is built from.
type officePayload struct {
	TaxID   string          `json:"taxId"`
	Alias   *string         `json:"alias"`
	Company officeCompany   `json:"company"`
	Address officeAddress   `json:"address"`
	Phones  []officePhone   `json:"phones"`
	Status  *officeStatus   `json:"status"`
	Acts    activityPayload `json:"-"`
}

type officeCompany struct {
	Name string `json:"name"`
}

type officeAddress struct {
	Street      string            `json:"street"`
	Number      string            `json:"number"`
	Details     *string           `json:"details"`
	District    string            `json:"district"`
	Zip         string            `json:"zip"`
	City        string            `json:"city"`
	State       string            `json:"state"`
	Latitude    flexFloat         `json:"latitude"`
	Longitude   flexFloat         `json:"longitude"`
	Coordinates *officeCoordinate `json:"coordinates"`
}

type officeCoordinate struct {
	Latitude  flexFloat `json:"latitude"`
	Longitude flexFloat `json:"longitude"`
}

type officePhone struct {
	Type   string `json:"type"`
	Area   string `json:"area"`
	Number string `json:"number"`
}

type officeStatus struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type officeActivity struct {
	ID   flexString `json:"id"`
	Code flexString `json:"code"`
	Text string     `json:"text"`
}

func (a officeActivity) toEntity() entity.Activity {
	code := string(a.ID)
	if code == "" {
		code = string(a.Code)
	}
	return entity.Activity{Code: code, Description: strings.TrimSpace(a.Text)}
}

// activityConvention names the two field-naming conventions the office endpoint uses for activities.
type activityConvention string

const (
	conventionNone  activityConvention = ""
	conventionCamel activityConvention = "camelCase"
	conventionSnake activityConvention = "snake_case"
)

// activityPayload is a tagged union: Convention says which pair of keys was present.
type activityPayload struct {
	Convention activityConvention
	Main       *officeActivity
	Side       []officeActivity
}

type camelActivities struct {
	Main *officeActivity  `json:"mainActivity"`
	Side []officeActivity `json:"sideActivities"`
}

type snakeActivities struct {
	Main *officeActivity  `json:"main_activity"`
	Side []officeActivity `json:"side_activities"`
}

// UnmarshalJSON selects the variant by key presence before decoding it.
func (p *activityPayload) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	_, camelMain := keys["mainActivity"]
	_, camelSide := keys["sideActivities"]
	_, snakeMain := keys["main_activity"]
	_, snakeSide := keys["side_activities"]

	switch {
	case camelMain || camelSide:
		var v camelActivities
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("decode camelCase activities: %w", err)
		}
		*p = activityPayload{Convention: conventionCamel, Main: v.Main, Side: v.Side}
	case snakeMain || snakeSide:
		var v snakeActivities
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("decode snake_case activities: %w", err)
		}
		*p = activityPayload{Convention: conventionSnake, Main: v.Main, Side: v.Side}
	default:
		*p = activityPayload{Convention: conventionNone}
	}
	return nil
}

func decodeOffice(body []byte) (*officePayload, error) {
	var office officePayload
	if err := json.Unmarshal(body, &office); err != nil {
		return nil, fmt.Errorf("decode office: %w", err)
	}
	if err := json.Unmarshal(body, &office.Acts); err != nil {
		return nil, err
	}
	if strings.TrimSpace(office.Company.Name) == "" {
		return nil, fmt.Errorf("decode office: company name missing")
	}
	return &office, nil
}

func (m *mapper) fromOffice(cnpj string, office *officePayload) *entity.RegistryRecord {
	legalName := strings.TrimSpace(office.Company.Name)
	tradeName := legalName
	if office.Alias != nil && strings.TrimSpace(*office.Alias) != "" {
		tradeName = strings.TrimSpace(*office.Alias)
	}

	record := &entity.RegistryRecord{
		CNPJ:      cnpj,
		LegalName: legalName,
		TradeName: tradeName,
		Address: entity.Address{
			Street:     office.Address.Street,
			Number:     office.Address.Number,
			Complement: derefString(office.Address.Details),
			District:   office.Address.District,
			PostalCode: office.Address.Zip,
			City:       office.Address.City,
			State:      office.Address.State,
		},
		SecondaryActivities: []entity.Activity{},
		Source:              entity.SourceCNPJA,
	}

	record.Latitude, record.Longitude = office.Address.coordinates()

	if len(office.Phones) > 0 {
		record.Phone = m.phone(office.Phones[0].Area + office.Phones[0].Number)
	}

	if office.Acts.Main != nil {
		record.PrimaryActivity = office.Acts.Main.toEntity()
	}
	record.PrimaryActivityLabel = record.PrimaryActivity.Label()
	for _, side := range office.Acts.Side {
		record.SecondaryActivities = append(record.SecondaryActivities, side.toEntity())
	}

	if office.Status != nil && office.Status.Text != "" {
		status := office.Status.Text
		record.Status = &status
	}

	return record
}

func (a officeAddress) coordinates() (*float64, *float64) {
	lat, lng := a.Latitude, a.Longitude
	if a.Coordinates != nil {
		if !lat.valid {
			lat = a.Coordinates.Latitude
		}
		if !lng.valid {
			lng = a.Coordinates.Longitude
		}
	}
	if !lat.valid || !lng.valid {
		return nil, nil
	}
	latVal, lngVal := lat.value, lng.value
	return &latVal, &lngVal
}

// flexString accepts either a JSON string or a JSON number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(strings.TrimSpace(v))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexFloat accepts either a JSON number or a numeric string. Null and blank
// strings leave it unset.
type flexFloat struct {
	value float64
	valid bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	if s == "" {
		*f = flexFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", string(s), err)
	}
	*f = flexFloat{value: v, valid: true}
	return nil
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
