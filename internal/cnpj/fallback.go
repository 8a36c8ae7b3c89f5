package cnpj

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/octobees/sales-routes/api/internal/entity"
)

// brasilAPIPayload mirrors the flat snake_case document served by BrasilAPI.
type brasilAPIPayload struct {
	CNPJ                string              `json:"cnpj"`
	RazaoSocial         string              `json:"razao_social"`
	NomeFantasia        *string             `json:"nome_fantasia"`
	TipoLogradouro      *string             `json:"descricao_tipo_de_logradouro"`
	Logradouro          string              `json:"logradouro"`
	Numero              flexString          `json:"numero"`
	Complemento         *string             `json:"complemento"`
	Bairro              string              `json:"bairro"`
	CEP                 flexString          `json:"cep"`
	Municipio           string              `json:"municipio"`
	UF                  string              `json:"uf"`
	Telefone            *string             `json:"ddd_telefone_1"`
	CNAEFiscal          flexString          `json:"cnae_fiscal"`
	CNAEFiscalDescricao string              `json:"cnae_fiscal_descricao"`
	CNAEsSecundarios    []brasilAPIActivity `json:"cnaes_secundarios"`
	SituacaoCadastral   *string             `json:"descricao_situacao_cadastral"`
}

type brasilAPIActivity struct {
	Codigo    flexString `json:"codigo"`
	Descricao string     `json:"descricao"`
}

func decodeBrasilAPI(body []byte) (*brasilAPIPayload, error) {
	var payload brasilAPIPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode brasilapi company: %w", err)
	}
	if strings.TrimSpace(payload.RazaoSocial) == "" {
		return nil, fmt.Errorf("decode brasilapi company: razao_social missing")
	}
	return &payload, nil
}

func (m *mapper) fromBrasilAPI(cnpj string, payload *brasilAPIPayload) *entity.RegistryRecord {
	legalName := strings.TrimSpace(payload.RazaoSocial)
	tradeName := legalName
	if alias := derefString(payload.NomeFantasia); alias != "" {
		tradeName = alias
	}

	street := strings.TrimSpace(payload.Logradouro)
	if kind := derefString(payload.TipoLogradouro); kind != "" && street != "" {
		street = kind + " " + street
	}

	record := &entity.RegistryRecord{
		CNPJ:      cnpj,
		LegalName: legalName,
		TradeName: tradeName,
		Address: entity.Address{
			Street:     street,
			Number:     string(payload.Numero),
			Complement: derefString(payload.Complemento),
			District:   strings.TrimSpace(payload.Bairro),
			PostalCode: string(payload.CEP),
			City:       strings.TrimSpace(payload.Municipio),
			State:      strings.TrimSpace(payload.UF),
		},
		PrimaryActivity: entity.Activity{
			Code:        string(payload.CNAEFiscal),
			Description: strings.TrimSpace(payload.CNAEFiscalDescricao),
		},
		SecondaryActivities: []entity.Activity{},
		Source:              entity.SourceBrasilAPI,
	}
	record.PrimaryActivityLabel = record.PrimaryActivity.Label()

	if phone := derefString(payload.Telefone); phone != "" {
		record.Phone = m.phone(phone)
	}

	for _, activity := range payload.CNAEsSecundarios {
		code := string(activity.Codigo)
		// BrasilAPI reports "no secondary activity" as a zero code.
		if code == "" || code == "0" {
			continue
		}
		record.SecondaryActivities = append(record.SecondaryActivities, entity.Activity{
			Code:        code,
			Description: strings.TrimSpace(activity.Descricao),
		})
	}

	if status := derefString(payload.SituacaoCadastral); status != "" {
		record.Status = &status
	}

	return record
}
