package service

const (
	defaultLimit = 10
	maxLimit     = 100
)

// clampPage normalizes the requested page number / Normalise le numéro de page demandé
func clampPage(page int64) int64 {
	if page < 1 {
		return 1
	}
	return page
}

// clampLimit normalizes the requested page size / Normalise la taille de page demandée
func clampLimit(limit int64) int64 {
	if limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// lastPage computes the index of the final page. An empty result set has no
// pages at all, so the last page is 0 rather than 1.
func lastPage(total, limit int64) int64 {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// skipFor converts a page number into a store offset / Convertit un numéro de page en décalage de store
func skipFor(page, limit int64) int64 {
	return (page - 1) * limit
}
