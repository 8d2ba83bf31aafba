package models

import "time"

// Transmitter is a single transmitter maintenance reading.
type Transmitter struct {
	ID              int64           `db:"id" json:"id"`
	StationID       int64           `db:"station_id" json:"estacao_id"`
	Circuit         string          `db:"circuit" json:"num_circuito"`
	Code            string          `db:"code" json:"num_transmissor"`
	Vout            *float64        `db:"vout" json:"vout"`
	Pout            *float64        `db:"pout" json:"pout"`
	Tap             string          `db:"tap" json:"tap"`
	TxType          string          `db:"tx_type" json:"tipo_transmissor"`
	MaintenanceAt   time.Time       `db:"maintenance_at" json:"data_manutencao"`
	CollectionTime  *string         `db:"collection_time" json:"horario_coleta"`
	TempCelsius     *float64        `db:"temp_celsius" json:"temp_celsius"`
	MaintenanceType MaintenanceType `db:"maintenance_type" json:"tipo_manutencao"`
}

// Receiver is a single receiver maintenance reading. Ratio carries the
// ITH/IAV percentage preformatted as "NN.NN%".
type Receiver struct {
	ID              int64           `db:"id" json:"id"`
	StationID       int64           `db:"station_id" json:"estacao_id"`
	Circuit         string          `db:"circuit" json:"num_circuito"`
	Code            string          `db:"code" json:"num_receptor"`
	IAV             *float64        `db:"iav" json:"iav"`
	ITH             *float64        `db:"ith" json:"ith"`
	Ratio           *string         `db:"ratio" json:"relacao"`
	MaintenanceAt   time.Time       `db:"maintenance_at" json:"data_manutencao"`
	CollectionTime  *string         `db:"collection_time" json:"horario_coleta"`
	TempCelsius     *float64        `db:"temp_celsius" json:"temp_celsius"`
	MaintenanceType MaintenanceType `db:"maintenance_type" json:"tipo_manutencao"`
}
