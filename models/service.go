package models

// Service describes a bookable offering. Duration is counted in 15-minute
// units and fixes how many contiguous slots a booking occupies.
type Service struct {
	ID       string  `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Duration int     `bson:"duration" json:"duration"`
	Price    float64 `bson:"price,omitempty" json:"price,omitempty"`
	Active   bool    `bson:"active" json:"active"`
}
