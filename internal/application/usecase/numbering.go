package usecase

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// intentos ante colisión del sufijo aleatorio (UNIQUE en la base de datos)
const numberAttempts = 5

const (
	certificatePrefix = "CERT"
	schedulePrefix    = "TRAT"
)

// generateNumber arma PREFIJO-YYYYMMDD-NNN con un sufijo aleatorio de tres dígitos.
func generateNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, now.Format("20060102"), rand.IntN(1000))
}
