package entity

import "time"

// Company empresa dueña de socios, productos y gastos fijos.
// El nombre es único; borrarla elimina en cascada a sus hijos.
type Company struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
