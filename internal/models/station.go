package models

// Station groups the transmitter and receiver equipment of one site.
type Station struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"nome"`
}
