package models

// CarListing is owned by the user referenced by OwnerUsername. ImageURLs keeps
// the upload order, which is also the display order.
type CarListing struct {
	CarName       string   `json:"car_name" bson:"car_name"`
	Price         float64  `json:"price" bson:"price"`
	Rent          bool     `json:"rent" bson:"rent"`
	ImageURLs     []string `json:"image_urls" bson:"image_urls"`
	OwnerUsername string   `json:"owner_username" bson:"owner_username"`
}
