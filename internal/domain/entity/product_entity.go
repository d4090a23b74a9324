package entity

// Product is a catalog item. Carts embed copies of it, never references.
type Product struct {
	ID       string  `json:"_id" bson:"_id"`
	Name     string  `json:"name" bson:"name"`
	Category string  `json:"category" bson:"category"`
	Cost     float64 `json:"cost" bson:"cost"`
	Rating   int     `json:"rating" bson:"rating"`
	Image    string  `json:"image" bson:"image"`
}
