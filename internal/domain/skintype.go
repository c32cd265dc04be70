package domain

import (
	"fmt"
	"strings"
)

// SkinType es uno de los cinco arquetipos de piel que maneja el sistema.
type SkinType string

const (
	SkinTypeDry         SkinType = "DS" // piel seca / deshidratada
	SkinTypeOilyBlemish SkinType = "OB" // piel grasa con tendencia acneica
	SkinTypeSensitive   SkinType = "HS" // piel hipersensible / reactiva
	SkinTypeCombination SkinType = "CC" // piel mixta, default ante perfiles ambiguos
	SkinTypeSlowRenewal SkinType = "SC" // piel madura / renovacion celular lenta
)

// SkinTypeOrder fija el orden canonico de los arquetipos. Se usa para
// iterar mapas de scores de forma estable y como ultimo desempate.
var SkinTypeOrder = [5]SkinType{
	SkinTypeDry,
	SkinTypeOilyBlemish,
	SkinTypeSensitive,
	SkinTypeCombination,
	SkinTypeSlowRenewal,
}

// ParseSkinType valida un codigo de arquetipo recibido desde afuera.
func ParseSkinType(code string) (SkinType, error) {
	st := SkinType(strings.ToUpper(strings.TrimSpace(code)))
	for _, known := range SkinTypeOrder {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown skin type %q", code)
}

// IsValid reporta si el valor pertenece al enum.
func (t SkinType) IsValid() bool {
	for _, known := range SkinTypeOrder {
		if t == known {
			return true
		}
	}
	return false
}
