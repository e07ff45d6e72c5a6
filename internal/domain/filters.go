package domain

// PropertyFilter holds the optional listing criteria / Contient les critères optionnels de recherche
// Absent criteria stay at their zero value and are omitted from the store predicate.
type PropertyFilter struct {
	Name     string // Case-insensitive substring / Sous-chaîne insensible à la casse
	Address  string // Case-insensitive substring / Sous-chaîne insensible à la casse
	MinPrice *int64 // Inclusive lower bound / Borne inférieure incluse
	MaxPrice *int64 // Inclusive upper bound / Borne supérieure incluse
	OwnerID  string // Exact owner id match / Correspondance exacte de l'id propriétaire
}

// OwnerFilter holds the optional owner criteria / Contient les critères optionnels de propriétaire
type OwnerFilter struct {
	Name    string
	Address string
}

// ImageFilter holds the optional image criteria / Contient les critères optionnels d'image
type ImageFilter struct {
	PropertyID string
	Enabled    *bool
}

// TraceFilter holds the optional sale trace criteria / Contient les critères optionnels de trace de vente
type TraceFilter struct {
	PropertyID string
}
