package middleware

import (
	"time"
)

// Updater es lo que el endpoint de estado necesita del actualizador en segundo plano
type Updater interface {
	IsRunning() bool
	GetLastUpdated() time.Time
}

// Variable global para almacenar la instancia del actualizador de movers
var moversUpdaterInstance Updater

// SetMoversUpdater establece la instancia del actualizador de movers
func SetMoversUpdater(updater Updater) {
	moversUpdaterInstance = updater
}

// GetMoversUpdater obtiene la instancia del actualizador de movers
func GetMoversUpdater() Updater {
	return moversUpdaterInstance
}
