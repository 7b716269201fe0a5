package entity

import "time"

// Stock representa la cantidad actual de un producto en una sucursal.
// Par (ProductID, BranchID) único; CurrentQuantity nunca puede ser negativa.
// Se crea una sola vez por par; todos los cambios posteriores son updates.
type Stock struct {
	ProductID       string
	BranchID        string
	CurrentQuantity int64
	LastUpdated     time.Time
}
