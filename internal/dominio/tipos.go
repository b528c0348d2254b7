package dominio

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// valores monetários saem como número no JSON, não como string
	decimal.MarshalJSONWithoutQuotes = true
}

// ListaUUID guarda referências a pedidos numa coluna jsonb.
type ListaUUID []uuid.UUID

func (l *ListaUUID) Scan(value interface{}) error {
	if value == nil {
		*l = ListaUUID{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("falha ao ler ListaUUID: %v", value)
	}

	return json.Unmarshal(bytes, l)
}

func (l ListaUUID) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l ListaUUID) Contem(id uuid.UUID) bool {
	for _, atual := range l {
		if atual == id {
			return true
		}
	}
	return false
}

func (l ListaUUID) Copia() ListaUUID {
	if l == nil {
		return ListaUUID{}
	}
	out := make(ListaUUID, len(l))
	copy(out, l)
	return out
}

// Arredondar normaliza valores monetários em duas casas.
func Arredondar(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
