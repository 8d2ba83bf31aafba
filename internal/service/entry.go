package service

import (
	"encoding/json"
	"strconv"
	"strings"
)

// LooseFloat decodes a JSON number, numeric string, or null. Anything that
// cannot be coerced degrades to null instead of failing the batch.
type LooseFloat struct {
	Value   *float64
	Present bool
}

// UnmarshalJSON never returns an error: bad input means a null value.
func (f *LooseFloat) UnmarshalJSON(data []byte) error {
	f.Present = true
	f.Value = nil

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		f.Value = &num
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			f.Value = &parsed
			return nil
		}
	}
	return nil
}

// LooseString decodes a JSON string or number (numbers are rendered without
// a trailing ".0"). Null or undecodable input yields the empty string.
type LooseString struct {
	Value string
}

// UnmarshalJSON never returns an error.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	s.Value = ""

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Value = str
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		s.Value = strconv.FormatFloat(num, 'f', -1, 64)
	}
	return nil
}

// TransmitterEntry is one transmitter reading as submitted by the client.
type TransmitterEntry struct {
	Circuit         LooseString `json:"num_circuito"`
	Code            LooseString `json:"num_transmissor"`
	Vout            LooseFloat  `json:"vout"`
	Pout            LooseFloat  `json:"pout"`
	Tap             LooseString `json:"tap"`
	TxType          LooseString `json:"tipo_transmissor"`
	CollectionTime  *string     `json:"horario_coleta"`
	TempCelsius     LooseFloat  `json:"temp_celsius"`
	LocalTemp       LooseFloat  `json:"temperatura_local"`
	MaintenanceType LooseString `json:"tipo_manutencao"`
}

// ReceiverEntry is one receiver reading as submitted by the client.
type ReceiverEntry struct {
	Circuit         LooseString `json:"num_circuito"`
	Code            LooseString `json:"num_receptor"`
	IAV             LooseFloat  `json:"iav"`
	ITH             LooseFloat  `json:"ith"`
	Ratio           LooseFloat  `json:"relacao"`
	CollectionTime  *string     `json:"horario_coleta"`
	TempCelsius     LooseFloat  `json:"temp_celsius"`
	LocalTemp       LooseFloat  `json:"temperatura_local"`
	MaintenanceType LooseString `json:"tipo_manutencao"`
}

// Batch is the body of a reading submission.
type Batch struct {
	Station      string             `json:"estacao"`
	Transmitters []TransmitterEntry `json:"transmissores"`
	Receivers    []ReceiverEntry    `json:"receptores"`
}

// temperature picks the explicit field when the client sent it (even as
// null), falling back to the legacy alias otherwise.
func temperature(explicit, legacy LooseFloat) *float64 {
	if explicit.Present {
		return explicit.Value
	}
	return legacy.Value
}

// collectionTime treats an empty string the same as an absent time.
func collectionTime(raw *string) *string {
	if raw == nil {
		return nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil
	}
	return &v
}
