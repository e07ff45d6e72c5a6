package dto

// PageMeta carries pagination metadata for list responses / Porte les métadonnées de pagination des listes
type PageMeta struct {
	Page     int64 `json:"page"`
	Limit    int64 `json:"limit"`
	Total    int64 `json:"total"`
	LastPage int64 `json:"lastPage"`
}

// Page is the envelope returned by every list endpoint / Est l'enveloppe retournée par chaque endpoint de liste
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}
