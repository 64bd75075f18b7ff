package models

type WebsiteType struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

type Technology struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

type Feature struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

type TimelineMultiplier struct {
	Range      string  `json:"range" bson:"range"`
	Multiplier float64 `json:"multiplier" bson:"multiplier"`
}

// Pricing is the singleton estimator configuration.
type Pricing struct {
	ID                  string               `json:"id" bson:"id"`
	WebsiteTypes        []WebsiteType        `json:"website_types" bson:"website_types"`
	Technologies        []Technology         `json:"technologies" bson:"technologies"`
	Features            []Feature            `json:"features" bson:"features"`
	TimelineMultipliers []TimelineMultiplier `json:"timeline_multipliers" bson:"timeline_multipliers"`
	Currency            string               `json:"currency" bson:"currency"`
	CurrencySymbol      string               `json:"currency_symbol" bson:"currency_symbol"`
	UpdatedAt           string               `json:"updated_at" bson:"updated_at"`
}
