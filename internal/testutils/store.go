// Package testutils repositorios en memoria para tests de casos de uso y handlers.
package testutils

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// Store estado compartido por los repositorios en memoria. Los nombres de
// atribución (registered_by_name, etc.) se resuelven al leer, como el JOIN en SQL.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users        map[string]*entity.User
	chemicals    map[string]*entity.ChemicalItem
	certificates map[string]*entity.Certificate
	treatments   map[string]*entity.TreatmentSchedule

	// FailCreate hace que el siguiente Create de certificados/programaciones devuelva este error.
	FailCreate []error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:        map[string]*entity.User{},
		chemicals:    map[string]*entity.ChemicalItem{},
		certificates: map[string]*entity.Certificate{},
		treatments:   map[string]*entity.TreatmentSchedule{},
	}
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Chemicals repositorio del inventario.
func (s *Store) Chemicals() *ChemicalRepo { return &ChemicalRepo{s: s} }

// Certificates repositorio de certificados.
func (s *Store) Certificates() *CertificateRepo { return &CertificateRepo{s: s} }

// Treatments repositorio de programaciones.
func (s *Store) Treatments() *TreatmentRepo { return &TreatmentRepo{s: s} }

// RunTreatments serializa las transacciones; no hay rollback en memoria.
func (s *Store) RunTreatments(ctx context.Context, fn func(repo repository.TreatmentRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.Treatments())
}

func (s *Store) popFailure() error {
	if len(s.FailCreate) == 0 {
		return nil
	}
	err := s.FailCreate[0]
	s.FailCreate = s.FailCreate[1:]
	return err
}

func (s *Store) nameOf(userID string) string {
	if u, ok := s.users[userID]; ok {
		return u.FullName
	}
	return ""
}

func containsFold(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return slices.ContainsFunc(fields, func(f string) bool {
		return strings.Contains(strings.ToLower(f), q)
	})
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
