package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CaracteristicaItem es un par clave/valor tal como llega en el body
type CaracteristicaItem struct {
	Caracteristica string `json:"caracteristica"`
	Valor          string `json:"valor"`
}

// ListaCaracteristicas acepta dos formas en el JSON:
//
//	{"Pileta": "Sí", "Cochera": "2"}                   (se respeta el orden enviado)
//	[{"caracteristica": "Cochera", "valor": "1"}, ...] (se permiten repetidas)
//
// null, false, 0 y "" se toman como valor vacío.
type ListaCaracteristicas []CaracteristicaItem

func (l *ListaCaracteristicas) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	switch data[0] {
	case '[':
		var items []struct {
			Caracteristica string          `json:"caracteristica"`
			Valor          json.RawMessage `json:"valor"`
		}
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("caracteristicas: %w", err)
		}
		res := make(ListaCaracteristicas, 0, len(items))
		for _, it := range items {
			v, err := valorComoTexto(it.Valor)
			if err != nil {
				return err
			}
			res = append(res, CaracteristicaItem{Caracteristica: it.Caracteristica, Valor: v})
		}
		*l = res
		return nil

	case '{':
		// json.Unmarshal a un map pierde el orden; se recorre con tokens
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("caracteristicas: %w", err)
		}
		res := ListaCaracteristicas{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("caracteristicas: %w", err)
			}
			clave, ok := tok.(string)
			if !ok {
				return fmt.Errorf("caracteristicas: clave inválida %v", tok)
			}
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return fmt.Errorf("caracteristicas: %w", err)
			}
			v, err := valorComoTexto(raw)
			if err != nil {
				return err
			}
			res = append(res, CaracteristicaItem{Caracteristica: clave, Valor: v})
		}
		*l = res
		return nil
	}

	return fmt.Errorf("caracteristicas: se esperaba un objeto o una lista")
}

func valorComoTexto(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("caracteristicas: %w", err)
		}
		return s, nil
	case 'n', 'f':
		// null, false
		return "", nil
	case 't':
		return "true", nil
	case '{', '[':
		return "", fmt.Errorf("caracteristicas: el valor debe ser texto, número o booleano")
	}
	// número
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("caracteristicas: %w", err)
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		return "", nil
	}
	return strings.TrimSpace(n.String()), nil
}
